// Package embeddings provides the text embedding backends behind the
// semantic index.
package embeddings

import "context"

// Embedder turns text into a fixed-dimension vector. Ping reports whether
// the backing service is reachable; callers degrade instead of failing when
// it is not.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Ping(ctx context.Context) error
}
