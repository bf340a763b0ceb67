package writer

import (
	"context"
	"fmt"
	"strings"

	"fable/pkg/book"
	"fable/pkg/semantic"
	"fable/pkg/styles"
	"fable/pkg/utils"

	"github.com/charmbracelet/log"
)

const (
	// tailRunes is how much of the manuscript's end rides along verbatim.
	tailRunes = 1500
	// recentChapters is how many finished-chapter summaries the brief keeps.
	recentChapters = 3
	// contextTokenBudget only gates a warning; the model call is not cut.
	contextTokenBudget = 6000
)

// PageContext is the prompt pair for one page generation.
type PageContext struct {
	System string
	User   string
}

// BuildPageContext assembles everything the model needs for one page: the
// chapter brief, focus character profiles, the manuscript tail, retrieved
// long-term context and length guidance. The system half carries the
// book-level frame and style directives.
func BuildPageContext(ctx context.Context, m *book.Memory, manuscript string, plan book.ChapterPlan, page int, ix *semantic.Indexer) PageContext {
	profile, ok := styles.Lookup(m.Metadata.StyleProfile)
	if !ok {
		profile = styles.Default()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are writing chapter %d of %d.\n", plan.Number, len(m.Plot.Outline))
	fmt.Fprintf(&b, "Chapter %d: %s\n", plan.Number, plan.Title)
	fmt.Fprintf(&b, "Chapter summary: %s\n", plan.Summary)
	if len(plan.KeyEvents) > 0 {
		fmt.Fprintf(&b, "Key events to cover across this chapter: %s\n", strings.Join(plan.KeyEvents, "; "))
	}

	if recap := recentSummaries(m); recap != "" {
		b.WriteString("\nPreviously:\n")
		b.WriteString(recap)
	}

	if profiles := focusProfiles(m, plan.CharacterFocus); profiles != "" {
		b.WriteString("\nCharacters in focus:\n")
		b.WriteString(profiles)
	}

	tail := tailOf(manuscript, tailRunes)
	if strings.TrimSpace(tail) != "" {
		b.WriteString("\nThe story so far (most recent text):\n")
		b.WriteString(tail)
		b.WriteString("\n")
	}

	query := tail
	if strings.TrimSpace(query) == "" {
		query = plan.Summary
	}
	b.WriteString("\nRelevant earlier context:\n")
	b.WriteString(ix.Search(ctx, query, semantic.DefaultTopK))
	b.WriteString("\n")

	lo, hi := profile.WordBand()
	fmt.Fprintf(&b, "\nWrite page %d of %d for this chapter, %d-%d words.\n", page, plan.PagesEstimate, lo, hi)
	switch {
	case page == 1:
		b.WriteString("This is the chapter's first page: establish the scene it opens on.\n")
	case page >= plan.PagesEstimate:
		b.WriteString("This is the chapter's final page: bring its events to a close.\n")
	case float64(page) > 0.7*float64(plan.PagesEstimate):
		b.WriteString("The chapter is near its end: build toward its climax.\n")
	}
	b.WriteString(pageRules)
	b.WriteString("\n")

	pc := PageContext{System: buildSystem(m, profile), User: b.String()}
	if n, err := utils.CountTokens(pc.System + pc.User); err == nil {
		log.Debug("page context assembled", "chapter", plan.Number, "page", page, "tokens", n)
		if n > contextTokenBudget {
			log.Warn("page context is over budget", "tokens", n, "budget", contextTokenBudget)
		}
	}
	return pc
}

func buildSystem(m *book.Memory, profile styles.Profile) string {
	var b strings.Builder
	b.WriteString(pagePersona)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "The book is %q", m.Metadata.Title)
	if len(m.Metadata.AuthorStyles) > 0 {
		fmt.Fprintf(&b, ", written in the combined style of %s", strings.Join(m.Metadata.AuthorStyles, ", "))
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Setting: %s (%s)\n", m.World.Setting, m.World.TimePeriod)
	if len(m.Metadata.Themes) > 0 {
		fmt.Fprintf(&b, "Themes: %s\n", strings.Join(m.Metadata.Themes, ", "))
	}
	if len(m.World.Rules) > 0 {
		b.WriteString("World rules:\n")
		for _, r := range m.World.Rules {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	if len(m.ConsistencyRules) > 0 {
		b.WriteString("Never contradict these facts:\n")
		for _, r := range m.ConsistencyRules {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	if lines := profile.Directives(); len(lines) > 0 {
		b.WriteString("Style:\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}
	return b.String()
}

// recentSummaries lists the last few finished chapters, oldest first.
func recentSummaries(m *book.Memory) string {
	recs := m.ChaptersSummary
	if len(recs) > recentChapters {
		recs = recs[len(recs)-recentChapters:]
	}
	var b strings.Builder
	for _, r := range recs {
		fmt.Fprintf(&b, "- Chapter %d (%s): %s\n", r.Number, r.Title, r.Summary)
	}
	return b.String()
}

// focusProfiles renders the chapter's focus characters. Names the outline
// mentions but never profiled are skipped.
func focusProfiles(m *book.Memory, focus []string) string {
	var b strings.Builder
	for _, name := range focus {
		ch, ok := m.Characters[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s Currently: %s\n", name, ch.Description, ch.CurrentState)
	}
	return b.String()
}

// tailOf returns the last n runes of s.
func tailOf(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
