package inference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/segmentio/ksuid"
)

// RateLimitError reports that the vendor throttled a call. Wait is the pause
// the vendor advised, zero when it gave none.
type RateLimitError struct {
	Wait time.Duration
	Err  error
}

func (e *RateLimitError) Error() string {
	if e.Wait > 0 {
		return fmt.Sprintf("rate limited, retry advised in %s: %v", e.Wait, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// TransientError reports an exhausted attempt budget. Last is the final
// vendor error.
type TransientError struct {
	Attempts int
	Last     error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *TransientError) Unwrap() error { return e.Last }

const (
	DefaultAttempts = 5

	baseBackoff      = time.Second
	rateLimitCushion = time.Second
)

// Client retries an Inferencer under two separate policies: ordinary
// failures consume the attempt budget with exponential backoff, while a rate
// limit carrying an advised wait sleeps it out (plus a cushion) without
// consuming an attempt. Advised waits are bounded only by the context.
type Client struct {
	inf      Inferencer
	attempts int
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewClient(inf Inferencer) *Client {
	return &Client{inf: inf, attempts: DefaultAttempts, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) Complete(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	call := ksuid.New().String()
	var last error
	for attempt := 1; attempt <= c.attempts; {
		out, err := c.inf.Complete(ctx, params, system, user)
		if err == nil {
			return out, nil
		}
		last = err

		var limited *RateLimitError
		if errors.As(err, &limited) && limited.Wait > 0 {
			wait := limited.Wait + rateLimitCushion
			log.Warn("rate limited, honoring advised wait", "call", call, "wait", wait)
			if serr := c.sleep(ctx, wait); serr != nil {
				return "", serr
			}
			continue
		}

		if attempt == c.attempts {
			break
		}
		backoff := baseBackoff << (attempt - 1)
		log.Warn("generation attempt failed", "call", call, "attempt", attempt, "backoff", backoff, "error", err)
		if serr := c.sleep(ctx, backoff); serr != nil {
			return "", serr
		}
		attempt++
	}
	return "", &TransientError{Attempts: c.attempts, Last: last}
}
