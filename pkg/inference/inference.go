// Package inference wraps text-generation vendors behind one interface and
// the retry policy every caller goes through.
package inference

import (
	"context"

	"github.com/openai/openai-go/v3"
)

// Inferencer is a single completion call against one vendor. Implementations
// surface throttling as *RateLimitError so the retry layer can honor advised
// waits.
type Inferencer interface {
	Complete(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}
