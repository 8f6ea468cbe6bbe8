// Package health reports service readiness: collection reachability and
// the number of indexed products. A failing dependency degrades the
// report, it never fails the endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the index is reachable.
	Healthy Status = "ok"
	// Unhealthy indicates the index could not be reached.
	Unhealthy Status = "error"
)

// Report is the health snapshot served to callers.
type Report struct {
	Status          Status
	Collection      string
	ProductsIndexed int
	Model           string
	Message         string
}

// Service coordinates health checks.
type Service struct {
	index      IndexCounter
	collection string
	model      string
}

// New creates a health service. model is the embedding model name shown
// in the report.
func New(index IndexCounter, collection, model string) *Service {
	return &Service{index: index, collection: collection, model: model}
}

// Check returns the current health snapshot. Index failures degrade the
// status instead of propagating.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:     Healthy,
		Collection: s.collection,
		Model:      s.model,
	}

	count, err := s.index.Count(ctx)
	if err != nil {
		report.Status = Unhealthy
		report.Message = err.Error()
		return report
	}

	report.ProductsIndexed = count
	return report
}
