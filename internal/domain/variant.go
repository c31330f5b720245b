package domain

import "fmt"

// Variant names one of the two live experiment arms.
type Variant string

const (
	// VariantA retrieves exactly top_k contexts and answers by concatenation.
	VariantA Variant = "A"
	// VariantB over-fetches 2x top_k contexts, trims to top_k, and answers
	// via the generation collaborator.
	VariantB Variant = "B"
)

// ParseVariant validates a variant token at the boundary.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantA:
		return VariantA, nil
	case VariantB:
		return VariantB, nil
	default:
		return "", fmt.Errorf("%w: %q (must be 'A' or 'B')", ErrUnknownVariant, s)
	}
}

// FetchLimit returns how many candidates the arm fetches from the store.
// Variant B fetches double and trims after retrieval. The extra candidates
// are currently discarded without reranking; the over-fetch is an extension
// point, kept as-is.
func (v Variant) FetchLimit(topK int) int {
	if v == VariantB {
		return topK * 2
	}
	return topK
}
