package author

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"fable/pkg/book"
	"fable/pkg/images"
	"fable/pkg/queue"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
)

// Cover produces the project's cover image: it needs a blurb (generated on
// demand), turns it into an image prompt, renders the image through q and
// writes cover.png. Metadata is only touched once the image is on disk.
func (a *Author) Cover(ctx context.Context, p *book.Project, q queue.Queue) (string, error) {
	m := p.Memory
	if m.Metadata.Blurb == "" {
		if _, err := a.Blurb(ctx, p); err != nil {
			return "", err
		}
	}

	prompt := m.Metadata.CoverPrompt
	if prompt == "" {
		raw, err := a.inf.Complete(ctx, &openai.ChatCompletionNewParams{}, coverSystem, buildCoverPrompt(m))
		if err != nil {
			return "", fmt.Errorf("generate cover prompt: %w", err)
		}
		prompt = strings.TrimSpace(raw)
		if prompt == "" {
			return "", errors.New("generate cover prompt: empty response")
		}
	}

	data, err := renderCover(ctx, q, prompt)
	if err != nil {
		return "", err
	}
	data, err = images.EnsurePNG(data)
	if err != nil {
		return "", fmt.Errorf("convert cover: %w", err)
	}
	if err := os.WriteFile(p.CoverPath(), data, 0o644); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}

	m.Metadata.CoverPrompt = prompt
	m.Metadata.CoverPath = "cover.png"
	if err := p.Save(); err != nil {
		return "", err
	}
	log.Info("cover generated", "project", p.Name, "bytes", len(data))
	return p.CoverPath(), nil
}

// renderCover pushes the prompt through the queue and waits for whichever
// channel delivers.
func renderCover(ctx context.Context, q queue.Queue, prompt string) ([]byte, error) {
	respCh, errCh, err := q.Add(prompt)
	if err != nil {
		return nil, fmt.Errorf("queue cover: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("render cover: %w", err)
		}
		return waitData(ctx, respCh)
	case data := <-respCh:
		if data == nil {
			if err := <-errCh; err != nil {
				return nil, fmt.Errorf("render cover: %w", err)
			}
			return nil, errors.New("render cover: empty response")
		}
		return data, nil
	}
}

func waitData(ctx context.Context, respCh chan []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case data := <-respCh:
		if len(data) == 0 {
			return nil, errors.New("render cover: empty response")
		}
		return data, nil
	}
}
