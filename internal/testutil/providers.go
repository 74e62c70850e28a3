package testutil

import (
	"context"
	"sync"
)

// StaticProvider returns Body (or Err) from every fetch and counts calls.
type StaticProvider struct {
	Body []byte
	Err  error

	mu    sync.Mutex
	calls int
}

func (p *StaticProvider) FetchCollection(ctx context.Context) ([]byte, error) {
	_ = ctx
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Body, nil
}

// Calls returns how many fetches were made.
func (p *StaticProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
