package health

import "context"

// IndexCounter reports how many documents the vector index holds.
type IndexCounter interface {
	Count(ctx context.Context) (int, error)
}
