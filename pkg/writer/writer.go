// Package writer drives page-by-page manuscript generation. Each call
// assembles context, writes one page, and advances the project's progress,
// completing chapters as their page budgets fill.
package writer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"fable/pkg/book"
	"fable/pkg/inference"
	"fable/pkg/semantic"
	"fable/pkg/utils"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
)

// State is where a project stands in its writing lifecycle.
type State string

const (
	StateAwaitingOutline State = "awaiting_outline"
	StateWriting         State = "writing"
	StateCompleted       State = "completed"
)

// StateOf derives the write state from memory.
func StateOf(m *book.Memory) State {
	switch {
	case !m.HasOutline():
		return StateAwaitingOutline
	case m.Completed():
		return StateCompleted
	default:
		return StateWriting
	}
}

// EmptyPageError reports a generation that post-processed down to nothing.
type EmptyPageError struct {
	Excerpt string
}

func (e *EmptyPageError) Error() string {
	return fmt.Sprintf("generated page is empty after cleanup (response: %s)", e.Excerpt)
}

// PageResult reports one GeneratePage call.
type PageResult struct {
	State       State   `json:"state"`
	Chapter     int     `json:"chapter,omitempty"`
	Page        int     `json:"page,omitempty"`
	Text        string  `json:"text,omitempty"`
	Quality     Quality `json:"quality,omitzero"`
	ChapterDone bool    `json:"chapter_done,omitempty"`
	Done        bool    `json:"done,omitempty"`
}

// Engine writes pages through an Inferencer.
type Engine struct {
	inf inference.Inferencer
}

func NewEngine(inf inference.Inferencer) *Engine {
	return &Engine{inf: inf}
}

// GeneratePage writes the next page of p and persists the result. Without
// an outline, or once the book is complete, it reports that and does
// nothing. On a generation failure the project is untouched, memory and
// manuscript both, so the same page can simply be retried.
func (e *Engine) GeneratePage(ctx context.Context, p *book.Project, ix *semantic.Indexer) (PageResult, error) {
	m := p.Memory
	switch StateOf(m) {
	case StateAwaitingOutline:
		return PageResult{State: StateAwaitingOutline}, nil
	case StateCompleted:
		return PageResult{State: StateCompleted, Done: true}, nil
	}

	plan, _ := m.CurrentChapter()
	page := m.Progress.PageInChapter + 1

	manuscript, err := p.Manuscript()
	if err != nil {
		return PageResult{}, err
	}

	pc := BuildPageContext(ctx, m, manuscript, plan, page, ix)
	raw, err := e.inf.Complete(ctx, &openai.ChatCompletionNewParams{}, pc.System, pc.User)
	if err != nil {
		return PageResult{}, fmt.Errorf("write chapter %d page %d: %w", plan.Number, page, err)
	}

	text := postProcessPage(raw)
	if text == "" {
		return PageResult{}, &EmptyPageError{Excerpt: utils.LimitStr(raw, 500)}
	}

	var chunk strings.Builder
	if page == 1 {
		fmt.Fprintf(&chunk, "## Chapter %d: %s\n\n", plan.Number, plan.Title)
	}
	chunk.WriteString(text)
	chunk.WriteString("\n\n")

	start, end, err := p.AppendManuscript(chunk.String())
	if err != nil {
		return PageResult{}, err
	}
	if page == 1 {
		m.Progress.ChapterStart = start
	}

	result := PageResult{
		State:   StateWriting,
		Chapter: plan.Number,
		Page:    page,
		Text:    text,
		Quality: Analyze(text),
	}

	if page >= plan.PagesEstimate {
		e.completeChapter(ctx, p, ix, plan, end)
		result.ChapterDone = true
		if m.Completed() {
			result.State = StateCompleted
			result.Done = true
		}
	} else {
		m.Progress.PageInChapter = page
	}

	if err := p.Save(); err != nil {
		return PageResult{}, fmt.Errorf("save memory after page: %w", err)
	}

	log.Info("page written",
		"project", p.Name,
		"chapter", plan.Number,
		"page", page,
		"words", result.Quality.Words,
		"length", result.Quality.Length)
	return result, nil
}

// completeChapter runs end-of-chapter bookkeeping. Indexing and character
// state updates are best-effort: once the page landed, the chapter advance
// and the summary record never block on them.
func (e *Engine) completeChapter(ctx context.Context, p *book.Project, ix *semantic.Indexer, plan book.ChapterPlan, end int) {
	m := p.Memory

	chapterText := ""
	if manuscript, err := p.Manuscript(); err == nil {
		start := min(m.Progress.ChapterStart, len(manuscript))
		stop := min(end, len(manuscript))
		if start > stop {
			start = stop
		}
		chapterText = manuscript[start:stop]
	} else {
		log.Warn("could not reread manuscript for chapter completion", "chapter", plan.Number, "error", err)
	}

	if chapterText != "" {
		if err := ix.IndexChapter(ctx, plan.Number, chapterText); err != nil {
			log.Warn("chapter indexing failed", "chapter", plan.Number, "error", err)
		}
		e.updateCharacterStates(ctx, m, chapterText)
	}

	m.ChaptersSummary = append(m.ChaptersSummary, book.ChapterRecord{
		Number:  plan.Number,
		Title:   plan.Title,
		Summary: plan.Summary,
		Start:   m.Progress.ChapterStart,
		End:     end,
	})
	m.Progress = book.Progress{ChapterIndex: m.Progress.ChapterIndex + 1}

	log.Info("chapter complete", "project", p.Name, "chapter", plan.Number, "title", plan.Title)
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// postProcessPage strips the wrappers models like to add (code fences,
// their own chapter headings) and normalizes paragraph breaks.
func postProcessPage(raw string) string {
	text := utils.CleanJSON(raw)
	var keep []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		keep = append(keep, line)
	}
	text = strings.Join(keep, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
