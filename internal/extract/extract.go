// Package extract turns raw ingested bytes into plain text, rejecting
// content that cannot plausibly be indexed.
package extract

import (
	"fmt"
	"mime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

// minPrintableRatio is the fraction of printable runes below which extracted
// text is treated as binary garbage.
const minPrintableRatio = 0.5

// Text converts body into plain text according to the declared content type.
// Returns a categorized rejection: ErrEmptyBody, ErrUnsupportedContentType
// or ErrUnreadableContent. Nothing is written to the store on rejection.
func Text(body []byte, contentType string) (string, error) {
	if len(body) == 0 {
		return "", domain.ErrEmptyBody
	}

	if !typeSupported(contentType) {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, contentType)
	}

	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: not valid UTF-8", domain.ErrUnreadableContent)
	}

	text := string(body)
	if ratio := printableRatio(text); ratio < minPrintableRatio {
		return "", fmt.Errorf(
			"%w: printable ratio %.2f below threshold %.2f",
			domain.ErrUnreadableContent, ratio, minPrintableRatio,
		)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrEmptyBody
	}
	return text, nil
}

// typeSupported accepts text/* and untyped bodies; everything else (PDF and
// friends) needs an external extractor and is rejected here.
func typeSupported(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/octet-stream":
		// Best effort: callers that do not know the type still get the
		// UTF-8 and printable-ratio checks.
		return true
	default:
		return false
	}
}

func printableRatio(s string) float64 {
	var printable, total int
	for _, r := range s {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(printable) / float64(total)
}
