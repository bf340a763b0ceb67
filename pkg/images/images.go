// Package images generates cover art from text prompts.
package images

import "context"

// Generator turns a prompt into encoded image bytes.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
