package book

import "time"

// Metadata describes the project itself. Blurb, CoverPrompt and CoverPath
// stay empty until the matching generation step runs.
type Metadata struct {
	Title        string    `json:"title"`
	AuthorStyles []string  `json:"author_styles"`
	StyleProfile string    `json:"style_profile"`
	Model        string    `json:"model,omitempty"`
	Premise      string    `json:"premise,omitempty"`
	Themes       []string  `json:"themes,omitempty"`
	Blurb        string    `json:"blurb,omitempty"`
	CoverPrompt  string    `json:"cover_prompt,omitempty"`
	CoverPath    string    `json:"cover_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// World is written once when an outline is applied and read-only after that.
type World struct {
	Setting    string            `json:"setting"`
	TimePeriod string            `json:"time_period"`
	Locations  map[string]string `json:"locations,omitempty"`
	Rules      []string          `json:"rules,omitempty"`
}

// Character profiles are fixed at outline time except CurrentState, which
// only the chapter-completion state update may touch.
type Character struct {
	Description   string `json:"description"`
	Personality   string `json:"personality"`
	StoryArc      string `json:"story_arc"`
	Relationships string `json:"relationships,omitempty"`
	CurrentState  string `json:"current_state"`
}

// ChapterPlan is one outline entry. Number and PagesEstimate never change
// once the outline is applied.
type ChapterPlan struct {
	Number         int      `json:"number"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	KeyEvents      []string `json:"key_events"`
	CharacterFocus []string `json:"character_focus"`
	PagesEstimate  int      `json:"pages_estimate"`
}

// ChapterRecord is appended once per finished chapter. Start and End are
// byte offsets of the chapter (heading included) in the manuscript file.
type ChapterRecord struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Progress tracks the write position. ChapterIndex is 0-based into the
// outline; PageInChapter counts pages already written in that chapter;
// ChapterStart is the manuscript offset of the in-flight chapter's heading.
type Progress struct {
	ChapterIndex  int `json:"current_chapter_index"`
	PageInChapter int `json:"current_page_in_chapter"`
	ChapterStart  int `json:"current_chapter_start"`
}

type Plot struct {
	Outline []ChapterPlan `json:"outline"`
}
