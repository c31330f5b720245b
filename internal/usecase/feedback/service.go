// Package feedback aggregates per-query experiment outcomes into
// process-wide win-rate statistics.
package feedback

import (
	"fmt"
	"sync"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/metrics"
)

// Aggregator counts declared winners. One mutex guards all counters so the
// total always equals the sum of the per-outcome counts, even under
// concurrent submissions.
type Aggregator struct {
	queries QueryReader

	mu     sync.Mutex
	counts domain.Counts
}

// New creates a feedback aggregator.
func New(queries QueryReader) *Aggregator {
	return &Aggregator{queries: queries}
}

// Record accepts one feedback event. The query id must reference a served
// query and the winner must be a valid outcome token; rejected events leave
// the counters untouched. Duplicate submissions for the same query each
// count: deliberately no dedup.
func (a *Aggregator) Record(queryID, winner string) error {
	w, err := domain.ParseWinner(winner)
	if err != nil {
		return err
	}

	if _, err := a.queries.Get(queryID); err != nil {
		return fmt.Errorf("resolve feedback query: %w", err)
	}

	a.mu.Lock()
	switch w {
	case domain.WinnerA:
		a.counts.A++
	case domain.WinnerB:
		a.counts.B++
	case domain.WinnerTie:
		a.counts.Tie++
	}
	a.counts.Total++
	a.mu.Unlock()

	metrics.FeedbackTotal.WithLabelValues(string(w)).Inc()
	return nil
}

// Stats returns a consistent snapshot of counts and win rates. Rates are
// all zero until the first feedback event arrives.
func (a *Aggregator) Stats() domain.Stats {
	a.mu.Lock()
	counts := a.counts
	a.mu.Unlock()

	stats := domain.Stats{Counts: counts}
	if counts.Total > 0 {
		total := float64(counts.Total)
		stats.WinRate = domain.WinRate{
			A:   float64(counts.A) / total,
			B:   float64(counts.B) / total,
			Tie: float64(counts.Tie) / total,
		}
	}
	return stats
}
