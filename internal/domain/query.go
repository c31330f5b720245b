package domain

import "time"

// QueryRecord is the immutable outcome of one served query.
// Created once by the orchestrator, never mutated afterwards, read later by
// feedback submissions referencing its ID.
type QueryRecord struct {
	ID        string
	Variant   Variant
	Question  string
	Contexts  []Context
	Answer    string
	LatencyMS int64
	CreatedAt time.Time
}
