package feedback

import "github.com/kailas-cloud/ragtrial/internal/domain"

// QueryReader resolves query ids submitted with feedback.
type QueryReader interface {
	Get(id string) (domain.QueryRecord, error)
}
