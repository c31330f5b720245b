// Package health aggregates component liveness for the healthz endpoint.
package health

import "context"

// Status is the aggregated health outcome.
type Status string

const (
	Healthy  Status = "ok"
	Degraded Status = "degraded"
)

// Report lists per-component check results next to the rollup.
type Report struct {
	Status Status
	Checks map[string]string
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil.
func New(db DBPinger, embedding EmbeddingChecker) *Service {
	return &Service{db: db, embedding: embedding}
}

// Check probes the vector store and, when configured, the embedding
// provider. Any failing probe degrades the rollup.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]string)
	checks["store"] = outcome(s.db.Ping(ctx))

	if s.embedding != nil {
		checks["embedding"] = outcome(s.embedding.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v != "ok" {
			status = Degraded
			break
		}
	}
	return Report{Status: status, Checks: checks}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
