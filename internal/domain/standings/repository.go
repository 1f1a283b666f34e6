package standings

import "context"

// Source returns the raw standings document for one poll.
type Source interface {
	FetchTable(ctx context.Context) ([]byte, error)
}
