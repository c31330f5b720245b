package feedback

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

// knownQueries resolves a fixed set of query ids.
type knownQueries map[string]bool

func (k knownQueries) Get(id string) (domain.QueryRecord, error) {
	if !k[id] {
		return domain.QueryRecord{}, fmt.Errorf("%w: %q", domain.ErrUnknownQueryID, id)
	}
	return domain.QueryRecord{ID: id}, nil
}

func TestRecordCountsWinners(t *testing.T) {
	agg := New(knownQueries{"q1": true, "q2": true, "q3": true})

	for _, f := range []struct{ id, winner string }{
		{"q1", "A"}, {"q2", "B"}, {"q3", "tie"}, {"q1", "B"},
	} {
		if err := agg.Record(f.id, f.winner); err != nil {
			t.Fatalf("Record(%s, %s): %v", f.id, f.winner, err)
		}
	}

	stats := agg.Stats()
	if stats.Counts.A != 1 || stats.Counts.B != 2 || stats.Counts.Tie != 1 {
		t.Errorf("counts = %+v", stats.Counts)
	}
	if stats.Counts.Total != stats.Counts.A+stats.Counts.B+stats.Counts.Tie {
		t.Errorf("total %d != sum of counts", stats.Counts.Total)
	}
	if stats.WinRate.B != 0.5 {
		t.Errorf("win rate B = %v, want 0.5", stats.WinRate.B)
	}
}

func TestRecordDuplicateFeedbackCounts(t *testing.T) {
	agg := New(knownQueries{"q1": true})

	if err := agg.Record("q1", "B"); err != nil {
		t.Fatal(err)
	}
	if err := agg.Record("q1", "B"); err != nil {
		t.Fatal(err)
	}

	if got := agg.Stats().Counts.B; got != 2 {
		t.Errorf("counts.B = %d, want 2 (no dedup)", got)
	}
}

func TestRecordRejectsUnknownWinner(t *testing.T) {
	agg := New(knownQueries{"q1": true})

	err := agg.Record("q1", "C")
	if !errors.Is(err, domain.ErrUnknownWinner) {
		t.Fatalf("want ErrUnknownWinner, got %v", err)
	}
	if agg.Stats().Counts.Total != 0 {
		t.Error("rejected feedback must not touch the counters")
	}
}

func TestRecordRejectsUnknownQueryID(t *testing.T) {
	agg := New(knownQueries{})

	err := agg.Record("nope", "A")
	if !errors.Is(err, domain.ErrUnknownQueryID) {
		t.Fatalf("want ErrUnknownQueryID, got %v", err)
	}
	if agg.Stats().Counts.Total != 0 {
		t.Error("rejected feedback must not touch the counters")
	}
}

func TestStatsZeroGuard(t *testing.T) {
	agg := New(knownQueries{})

	stats := agg.Stats()
	if stats.WinRate.A != 0 || stats.WinRate.B != 0 || stats.WinRate.Tie != 0 {
		t.Errorf("win rates must be zero with no feedback, got %+v", stats.WinRate)
	}
}

func TestRecordConcurrentInvariant(t *testing.T) {
	agg := New(knownQueries{"q1": true})

	var wg sync.WaitGroup
	winners := []string{"A", "B", "tie"}
	for i := 0; i < 90; i++ {
		wg.Add(1)
		go func(w string) {
			defer wg.Done()
			if err := agg.Record("q1", w); err != nil {
				t.Error(err)
			}
		}(winners[i%3])
	}
	wg.Wait()

	stats := agg.Stats()
	if stats.Counts.Total != 90 {
		t.Errorf("total = %d, want 90", stats.Counts.Total)
	}
	if stats.Counts.Total != stats.Counts.A+stats.Counts.B+stats.Counts.Tie {
		t.Errorf("total %d != sum of counts %+v", stats.Counts.Total, stats.Counts)
	}
}
