package author

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fable/pkg/book"
	"fable/pkg/utils"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
)

// Blurb writes a back-cover blurb from the outline and stores it in the
// project's metadata. An existing blurb is replaced.
func (a *Author) Blurb(ctx context.Context, p *book.Project) (string, error) {
	m := p.Memory
	if !m.HasOutline() {
		return "", book.ErrNoOutline
	}

	params := &openai.ChatCompletionNewParams{
		Temperature: openai.Float(0.8),
	}
	raw, err := a.inf.Complete(ctx, params, blurbSystem, buildBlurbPrompt(m))
	if err != nil {
		return "", fmt.Errorf("generate blurb: %w", err)
	}

	blurb := strings.TrimSpace(utils.CleanJSON(raw))
	if blurb == "" {
		return "", errors.New("generate blurb: empty response")
	}

	m.Metadata.Blurb = blurb
	if err := p.Save(); err != nil {
		return "", err
	}
	log.Info("blurb generated", "project", p.Name, "words", len(strings.Fields(blurb)))
	return blurb, nil
}
