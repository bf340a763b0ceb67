package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fable/pkg/book"
	"fable/pkg/schema"
	"fable/pkg/styles"
	"fable/pkg/validate"
)

const testPremise = "A lighthouse keeper discovers the beam wakes something sleeping under the bay, and must decide who to warn."

func testInput(chapters int) Input {
	return Input{
		Premise:      testPremise,
		Chapters:     chapters,
		Themes:       []string{"Isolation", "Duty"},
		AuthorStyles: []string{"Shirley Jackson"},
		Style:        styles.Default(),
	}
}

func draftFor(chapters int) *schema.OutlineDraft {
	d := &schema.OutlineDraft{
		World: schema.WorldDraft{
			Setting:    "A fogbound island town",
			TimePeriod: "1952",
			Locations:  []schema.LocationDraft{{Name: "The Light", Description: "the lighthouse itself"}},
			Rules:      []string{"the beam only wakes it at spring tide"},
		},
		Characters: []schema.CharacterDraft{
			{Name: "Edith", Description: "the keeper", Personality: "stubborn", StoryArc: "learns to ask for help"},
		},
		ConsistencyRules: []string{"Edith has kept the light for 31 years"},
	}
	for i := 1; i <= chapters; i++ {
		d.Plot.Outline = append(d.Plot.Outline, schema.ChapterDraft{
			Number:         i,
			Title:          fmt.Sprintf("Chapter Title %d", i),
			Summary:        "Something happens and matters.",
			KeyEvents:      []string{"an event"},
			CharacterFocus: []string{"Edith"},
			PagesEstimate:  3,
		})
	}
	return d
}

// canned implements inference.Inferencer with a fixed response.
type canned struct {
	response string
	err      error
	calls    int
}

func (c *canned) Complete(context.Context, *openai.ChatCompletionNewParams, string, string) (string, error) {
	c.calls++
	return c.response, c.err
}

func jsonBody(t *testing.T, d *schema.OutlineDraft) string {
	t.Helper()
	b, err := json.Marshal(d)
	require.NoError(t, err)
	return string(b)
}

func TestGenerateShape(t *testing.T) {
	inf := &canned{response: jsonBody(t, draftFor(3))}
	g := NewGenerator(inf)

	draft, err := g.Generate(context.Background(), testInput(3))
	require.NoError(t, err)
	require.Len(t, draft.Plot.Outline, 3)
	for i, ch := range draft.Plot.Outline {
		assert.Equal(t, i+1, ch.Number)
		assert.NotEmpty(t, ch.Title)
		assert.NotEmpty(t, ch.Summary)
		assert.NotEmpty(t, ch.KeyEvents)
	}
}

func TestGenerateStripsFences(t *testing.T) {
	body := "```json\n" + jsonBody(t, draftFor(3)) + "\n```"
	g := NewGenerator(&canned{response: body})

	draft, err := g.Generate(context.Background(), testInput(3))
	require.NoError(t, err)
	assert.Len(t, draft.Plot.Outline, 3)
}

func TestGenerateRejectsBadInputBeforeCalling(t *testing.T) {
	inf := &canned{response: jsonBody(t, draftFor(3))}
	g := NewGenerator(inf)

	var verr *validate.Error

	in := testInput(3)
	in.Premise = "too short"
	_, err := g.Generate(context.Background(), in)
	require.ErrorAs(t, err, &verr)

	in = testInput(2)
	_, err = g.Generate(context.Background(), in)
	require.ErrorAs(t, err, &verr)

	in = testInput(3)
	in.Themes = nil
	_, err = g.Generate(context.Background(), in)
	require.ErrorAs(t, err, &verr)

	assert.Zero(t, inf.calls, "invalid input never reaches the model")
}

func TestParseGarbage(t *testing.T) {
	raw := "I'm sorry, here is your outline: {broken" + strings.Repeat("x", 600)
	_, err := Parse(raw)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.LessOrEqual(t, len(perr.Excerpt), 503, "500 characters plus ellipsis")
	assert.True(t, strings.HasPrefix(raw, strings.TrimSuffix(perr.Excerpt, "...")))
}

func TestValidateStructure(t *testing.T) {
	base := func() *schema.OutlineDraft { return draftFor(3) }

	good := base()
	assert.NoError(t, Validate(good, 3))

	miscounted := base()
	miscounted.Plot.Outline = miscounted.Plot.Outline[:2]
	assertStructureError(t, Validate(miscounted, 3), "expected 3 chapters")

	misnumbered := base()
	misnumbered.Plot.Outline[1].Number = 5
	assertStructureError(t, Validate(misnumbered, 3), "numbered 5")

	noSetting := base()
	noSetting.World.Setting = "  "
	assertStructureError(t, Validate(noSetting, 3), "setting")

	noPeriod := base()
	noPeriod.World.TimePeriod = ""
	assertStructureError(t, Validate(noPeriod, 3), "time_period")

	noCharacters := base()
	noCharacters.Characters = nil
	assertStructureError(t, Validate(noCharacters, 3), "no characters")

	unnamed := base()
	unnamed.Characters[0].Name = " "
	assertStructureError(t, Validate(unnamed, 3), "no name")

	noEvents := base()
	noEvents.Plot.Outline[2].KeyEvents = nil
	assertStructureError(t, Validate(noEvents, 3), "key events")

	untitled := base()
	untitled.Plot.Outline[0].Title = ""
	assertStructureError(t, Validate(untitled, 3), "no title")
}

func assertStructureError(t *testing.T, err error, fragment string) {
	t.Helper()
	var serr *StructureError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Reason, fragment)
}

func TestValidateAllowsMissingPagesEstimate(t *testing.T) {
	d := draftFor(3)
	d.Plot.Outline[1].PagesEstimate = 0
	assert.NoError(t, Validate(d, 3), "pages estimate is not structural")
}

func TestFinalizeDefaults(t *testing.T) {
	d := draftFor(3)
	d.Plot.Outline[0].PagesEstimate = 0
	d.Plot.Outline[1].PagesEstimate = -2
	d.Plot.Outline[2].CharacterFocus = nil
	d.Plot.Outline[2].Title = "  Trimmed  "

	Finalize(d)

	assert.Equal(t, DefaultPagesEstimate, d.Plot.Outline[0].PagesEstimate)
	assert.Equal(t, DefaultPagesEstimate, d.Plot.Outline[1].PagesEstimate)
	assert.NotNil(t, d.Plot.Outline[2].CharacterFocus)
	assert.Equal(t, "Trimmed", d.Plot.Outline[2].Title)
}

func TestApply(t *testing.T) {
	root := t.TempDir()
	p, err := book.Create(root, "Apply Test", []string{"Shirley Jackson"}, "")
	require.NoError(t, err)

	d := draftFor(3)
	Finalize(d)
	in := testInput(3)
	in.Themes = []string{" isolation "}
	require.NoError(t, Apply(p, d, in))

	m := p.Memory
	assert.Equal(t, "A fogbound island town", m.World.Setting)
	assert.Equal(t, "the lighthouse itself", m.World.Locations["The Light"])
	require.Contains(t, m.Characters, "Edith")
	assert.Equal(t, "At the start of the story.", m.Characters["Edith"].CurrentState)
	assert.Len(t, m.Plot.Outline, 3)
	assert.Zero(t, m.Progress.ChapterIndex)
	assert.Equal(t, testPremise, m.Metadata.Premise)
	assert.Equal(t, []string{"Isolation"}, m.Metadata.Themes)
	assert.Equal(t, []string{"Edith has kept the light for 31 years"}, m.ConsistencyRules)

	// persisted
	reopened, err := book.Open(root, "Apply Test")
	require.NoError(t, err)
	assert.True(t, reopened.Memory.HasOutline())
}

func TestApplyRefusesSecondOutline(t *testing.T) {
	root := t.TempDir()
	p, err := book.Create(root, "Apply Twice", []string{"x"}, "")
	require.NoError(t, err)

	d := draftFor(3)
	Finalize(d)
	require.NoError(t, Apply(p, d, testInput(3)))
	assert.Error(t, Apply(p, d, testInput(3)))
}
