package book

import (
	"fmt"
	"slices"
)

// Memory is the full narrative state persisted as memory.json.
type Memory struct {
	Metadata         Metadata              `json:"metadata"`
	World            World                 `json:"world"`
	Characters       map[string]*Character `json:"characters"`
	Plot             Plot                  `json:"plot"`
	ChaptersSummary  []ChapterRecord       `json:"chapters_summary"`
	Progress         Progress              `json:"writing_progress"`
	ConsistencyRules []string              `json:"consistency_rules,omitempty"`
}

func (m *Memory) normalize() {
	if m.Characters == nil {
		m.Characters = map[string]*Character{}
	}
	for i := range m.Plot.Outline {
		if m.Plot.Outline[i].CharacterFocus == nil {
			m.Plot.Outline[i].CharacterFocus = []string{}
		}
	}
}

func (m *Memory) HasOutline() bool {
	return len(m.Plot.Outline) > 0
}

// Completed reports whether every planned chapter has been written.
func (m *Memory) Completed() bool {
	return m.HasOutline() && m.Progress.ChapterIndex >= len(m.Plot.Outline)
}

// CurrentChapter returns the plan the writer is positioned on.
func (m *Memory) CurrentChapter() (ChapterPlan, bool) {
	if !m.HasOutline() || m.Completed() {
		return ChapterPlan{}, false
	}
	return m.Plot.Outline[m.Progress.ChapterIndex], true
}

// TotalPages is the planned length of the book.
func (m *Memory) TotalPages() int {
	total := 0
	for _, ch := range m.Plot.Outline {
		total += ch.PagesEstimate
	}
	return total
}

// PagesWritten counts full chapters behind the cursor plus pages in the
// current one.
func (m *Memory) PagesWritten() int {
	n := 0
	for i, ch := range m.Plot.Outline {
		if i < m.Progress.ChapterIndex {
			n += ch.PagesEstimate
		}
	}
	return n + m.Progress.PageInChapter
}

// CharacterNames returns all character names, sorted.
func (m *Memory) CharacterNames() []string {
	names := make([]string, 0, len(m.Characters))
	for name := range m.Characters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetCharacterState is the only mutation allowed on a character after the
// outline is applied.
func (m *Memory) SetCharacterState(name, state string) error {
	ch, ok := m.Characters[name]
	if !ok {
		return fmt.Errorf("unknown character %q", name)
	}
	ch.CurrentState = state
	return nil
}

// CharacterStates snapshots name → current_state.
func (m *Memory) CharacterStates() map[string]string {
	out := make(map[string]string, len(m.Characters))
	for name, ch := range m.Characters {
		out[name] = ch.CurrentState
	}
	return out
}
