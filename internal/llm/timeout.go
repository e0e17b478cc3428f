package llm

import (
	"context"
	"iter"
	"time"
)

// TimeoutProvider bounds every request with a deadline. For Stream the
// deadline covers the whole reply, not each fragment.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-request deadline. A zero or
// negative timeout returns p unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		for chunk, err := range t.inner.Stream(ctx, req) {
			if !yield(chunk, err) || err != nil {
				return
			}
		}
	}
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
