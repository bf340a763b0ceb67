package outline

import (
	"errors"
	"strings"

	"fable/pkg/book"
	"fable/pkg/schema"
	"fable/pkg/validate"
)

// initialState stamps every character before a single page exists.
const initialState = "At the start of the story."

// ErrOutlineExists refuses re-outlining, the world is immutable once set.
var ErrOutlineExists = errors.New("project already has an outline")

// Apply converts a finalized draft into the project's memory and persists
// it. World and character roster never change after this, so a project that
// already has an outline refuses a second one.
func Apply(p *book.Project, draft *schema.OutlineDraft, in Input) error {
	m := p.Memory
	if m.HasOutline() {
		return ErrOutlineExists
	}

	locations := make(map[string]string, len(draft.World.Locations))
	for _, loc := range draft.World.Locations {
		if name := strings.TrimSpace(loc.Name); name != "" {
			locations[name] = loc.Description
		}
	}
	m.World = book.World{
		Setting:    strings.TrimSpace(draft.World.Setting),
		TimePeriod: strings.TrimSpace(draft.World.TimePeriod),
		Locations:  locations,
		Rules:      draft.World.Rules,
	}

	m.Characters = make(map[string]*book.Character, len(draft.Characters))
	for _, c := range draft.Characters {
		m.Characters[strings.TrimSpace(c.Name)] = &book.Character{
			Description:   c.Description,
			Personality:   c.Personality,
			StoryArc:      c.StoryArc,
			Relationships: c.Relationships,
			CurrentState:  initialState,
		}
	}

	plans := make([]book.ChapterPlan, len(draft.Plot.Outline))
	for i, ch := range draft.Plot.Outline {
		plans[i] = book.ChapterPlan{
			Number:         ch.Number,
			Title:          ch.Title,
			Summary:        ch.Summary,
			KeyEvents:      ch.KeyEvents,
			CharacterFocus: ch.CharacterFocus,
			PagesEstimate:  ch.PagesEstimate,
		}
	}
	m.Plot.Outline = plans
	m.ChaptersSummary = nil
	m.Progress = book.Progress{}
	m.ConsistencyRules = draft.ConsistencyRules
	m.Metadata.Premise = strings.TrimSpace(in.Premise)
	m.Metadata.Themes = validate.SanitizeThemes(in.Themes)

	return p.Save()
}
