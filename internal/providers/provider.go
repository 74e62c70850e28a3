package providers

import "context"

// CollectionProvider fetches a raw collection export from an upstream catalog.
// Implementations return the final response body; interpreting it is left to the caller.
type CollectionProvider interface {
	FetchCollection(ctx context.Context) ([]byte, error)
}
