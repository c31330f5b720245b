package domain

// KeyPrefix namespaces every key ragtrial writes to the store.
const KeyPrefix = "ragtrial:"

// Payload carries the optional attributes of an indexed chunk.
// Unset fields are omitted from storage and serialization by construction.
type Payload struct {
	Lang    string `json:"lang,omitempty"`
	URL     string `json:"url,omitempty"`
	Section string `json:"section,omitempty"`
}

// Fields returns only the attributes that are actually set.
func (p Payload) Fields() map[string]string {
	m := make(map[string]string, 3)
	if p.Lang != "" {
		m["lang"] = p.Lang
	}
	if p.URL != "" {
		m["url"] = p.URL
	}
	if p.Section != "" {
		m["section"] = p.Section
	}
	return m
}

// Document is one indexed chunk of text.
// ID is content-addressed: identical text always maps to the same id, so
// re-ingestion overwrites instead of duplicating.
type Document struct {
	ID      int64
	Text    string
	Vector  []float32
	Payload Payload
}

// Context is one retrieved passage with its similarity score.
type Context struct {
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
	Lang    string  `json:"lang,omitempty"`
	URL     string  `json:"url,omitempty"`
	Section string  `json:"section,omitempty"`
}
