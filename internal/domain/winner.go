package domain

import "fmt"

// Winner is a recorded feedback outcome.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "tie"
)

// ParseWinner validates a feedback outcome token at the boundary.
func ParseWinner(s string) (Winner, error) {
	switch Winner(s) {
	case WinnerA, WinnerB, WinnerTie:
		return Winner(s), nil
	default:
		return "", fmt.Errorf("%w: %q (must be 'A', 'B' or 'tie')", ErrUnknownWinner, s)
	}
}

// Counts are the process-wide feedback counters.
// Invariant: Total == A + B + Tie after every accepted feedback event.
type Counts struct {
	A     int64 `json:"A"`
	B     int64 `json:"B"`
	Tie   int64 `json:"tie"`
	Total int64 `json:"total"`
}

// WinRate holds per-outcome win-rate fractions. All zero when no feedback
// has been recorded yet.
type WinRate struct {
	A   float64 `json:"A"`
	B   float64 `json:"B"`
	Tie float64 `json:"tie"`
}

// Stats is the externally visible feedback summary.
type Stats struct {
	Counts  Counts  `json:"counts"`
	WinRate WinRate `json:"win_rate"`
}
