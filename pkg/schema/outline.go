package schema

// OutlineDraft is the model-facing outline shape. Strict structured outputs
// reject maps, so named collections are arrays here and converted to the
// memory layout after validation.
type OutlineDraft struct {
	World            WorldDraft       `json:"world" jsonschema_description:"The story world shared by every chapter"`
	Characters       []CharacterDraft `json:"characters" jsonschema_description:"Every named character the outline relies on"`
	Plot             PlotDraft        `json:"plot" jsonschema_description:"The chapter-by-chapter plan"`
	ConsistencyRules []string         `json:"consistency_rules" jsonschema_description:"Hard facts the narrative must never contradict"`
}

type WorldDraft struct {
	Setting    string          `json:"setting" jsonschema_description:"Where the story takes place, in one or two sentences"`
	TimePeriod string          `json:"time_period" jsonschema_description:"When the story takes place (era, year, or season)"`
	Locations  []LocationDraft `json:"locations" jsonschema_description:"Recurring places with a short description each"`
	Rules      []string        `json:"rules" jsonschema_description:"Laws of the world that bind the plot (physics, magic, society)"`
}

type LocationDraft struct {
	Name        string `json:"name" jsonschema_description:"Location name"`
	Description string `json:"description" jsonschema_description:"What the location is and why it matters"`
}

type CharacterDraft struct {
	Name          string `json:"name" jsonschema_description:"Canonical character name"`
	Description   string `json:"description" jsonschema_description:"Who the character is, in one or two sentences"`
	Personality   string `json:"personality" jsonschema_description:"Key personality traits"`
	StoryArc      string `json:"story_arc" jsonschema_description:"How the character changes across the book"`
	Relationships string `json:"relationships" jsonschema_description:"Relationships to other named characters"`
}

type PlotDraft struct {
	Outline []ChapterDraft `json:"outline" jsonschema_description:"One entry per chapter, in reading order"`
}

type ChapterDraft struct {
	Number         int      `json:"number" jsonschema_description:"Chapter number starting at 1, strictly sequential"`
	Title          string   `json:"title" jsonschema_description:"Chapter title"`
	Summary        string   `json:"summary" jsonschema_description:"What happens in the chapter, in two or three sentences"`
	KeyEvents      []string `json:"key_events" jsonschema_description:"The events the chapter must contain"`
	CharacterFocus []string `json:"character_focus" jsonschema_description:"Names of characters the chapter centers on"`
	PagesEstimate  int      `json:"pages_estimate" jsonschema_description:"Planned length in pages (roughly 400-550 words each)"`
}
