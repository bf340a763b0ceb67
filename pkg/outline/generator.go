// Package outline turns a premise into the book's structural plan: world,
// character roster, and chapter-by-chapter outline.
package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"fable/pkg/inference"
	"fable/pkg/schema"
	"fable/pkg/styles"
	"fable/pkg/utils"
	"fable/pkg/validate"
)

// DefaultPagesEstimate backs chapters the model left unsized.
const DefaultPagesEstimate = 12

// ParseError reports a response that was not valid JSON. Excerpt carries up
// to 500 characters of the raw response.
type ParseError struct {
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("outline response is not valid JSON: %v (response: %s)", e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError reports a parsed outline that violates the structural
// contract. Nothing gets committed.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string { return "invalid outline: " + e.Reason }

type Input struct {
	Premise      string
	Chapters     int
	Themes       []string
	AuthorStyles []string
	Style        styles.Profile
}

type Generator struct {
	inf inference.Inferencer
}

func NewGenerator(inf inference.Inferencer) *Generator {
	return &Generator{inf: inf}
}

// Generate validates the input, requests a structured outline and returns
// the finalized draft. The caller applies it to a project separately.
func (g *Generator) Generate(ctx context.Context, in Input) (*schema.OutlineDraft, error) {
	if err := validate.Premise(in.Premise); err != nil {
		return nil, err
	}
	if err := validate.ChapterCount(in.Chapters); err != nil {
		return nil, err
	}
	if err := validate.Themes(in.Themes); err != nil {
		return nil, err
	}

	params := &openai.ChatCompletionNewParams{
		ResponseFormat:      schema.OutlineResponseFormat(),
		MaxCompletionTokens: openai.Int(8192),
	}
	raw, err := g.inf.Complete(ctx, params, outlineSystem, buildOutlinePrompt(in))
	if err != nil {
		return nil, err
	}

	draft, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := Validate(draft, in.Chapters); err != nil {
		return nil, err
	}
	Finalize(draft)
	log.Debug("outline generated", "chapters", len(draft.Plot.Outline), "draft", utils.PrettyJSON(draft))
	return draft, nil
}

// Parse strips code fences and decodes the draft.
func Parse(raw string) (*schema.OutlineDraft, error) {
	cleaned := utils.CleanJSON(raw)
	var draft schema.OutlineDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, &ParseError{Excerpt: utils.LimitStr(raw, 500), Err: err}
	}
	return &draft, nil
}

// Validate enforces the structural contract: world anchors present, at least
// one character, exactly the requested number of chapters numbered 1..N,
// and every chapter carrying a title, summary and key events. Pages
// estimates are deliberately not structural; Finalize defaults them.
func Validate(draft *schema.OutlineDraft, chapters int) error {
	if strings.TrimSpace(draft.World.Setting) == "" {
		return &StructureError{Reason: "world.setting is empty"}
	}
	if strings.TrimSpace(draft.World.TimePeriod) == "" {
		return &StructureError{Reason: "world.time_period is empty"}
	}
	if len(draft.Characters) == 0 {
		return &StructureError{Reason: "no characters"}
	}
	for i, c := range draft.Characters {
		if strings.TrimSpace(c.Name) == "" {
			return &StructureError{Reason: fmt.Sprintf("character at position %d has no name", i+1)}
		}
	}
	if len(draft.Plot.Outline) != chapters {
		return &StructureError{Reason: fmt.Sprintf("expected %d chapters, got %d", chapters, len(draft.Plot.Outline))}
	}
	for i, ch := range draft.Plot.Outline {
		if ch.Number != i+1 {
			return &StructureError{Reason: fmt.Sprintf("chapter at position %d is numbered %d", i+1, ch.Number)}
		}
		if strings.TrimSpace(ch.Title) == "" {
			return &StructureError{Reason: fmt.Sprintf("chapter %d has no title", ch.Number)}
		}
		if strings.TrimSpace(ch.Summary) == "" {
			return &StructureError{Reason: fmt.Sprintf("chapter %d has no summary", ch.Number)}
		}
		if len(ch.KeyEvents) == 0 {
			return &StructureError{Reason: fmt.Sprintf("chapter %d has no key events", ch.Number)}
		}
	}
	return nil
}

// Finalize trims strings and fills the defaults validation leaves open.
func Finalize(draft *schema.OutlineDraft) {
	for i := range draft.Plot.Outline {
		ch := &draft.Plot.Outline[i]
		ch.Title = strings.TrimSpace(ch.Title)
		ch.Summary = strings.TrimSpace(ch.Summary)
		if ch.PagesEstimate <= 0 {
			ch.PagesEstimate = DefaultPagesEstimate
		}
		if ch.CharacterFocus == nil {
			ch.CharacterFocus = []string{}
		}
	}
}
