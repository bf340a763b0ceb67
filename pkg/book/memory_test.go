package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outlined() *Memory {
	return &Memory{
		Characters: map[string]*Character{
			"Mara": {Description: "a tideworn cartographer", CurrentState: "At the start of the story."},
			"Oleg": {Description: "her estranged brother", CurrentState: "At the start of the story."},
		},
		Plot: Plot{Outline: []ChapterPlan{
			{Number: 1, Title: "Low Tide", Summary: "The map arrives.", KeyEvents: []string{"map arrives"}, CharacterFocus: []string{"Mara"}, PagesEstimate: 3},
			{Number: 2, Title: "Undertow", Summary: "Oleg returns.", KeyEvents: []string{"reunion"}, CharacterFocus: []string{"Mara", "Oleg"}, PagesEstimate: 4},
			{Number: 3, Title: "Spring Line", Summary: "The crossing.", KeyEvents: []string{"crossing"}, CharacterFocus: []string{}, PagesEstimate: 5},
		}},
	}
}

func TestTotalPages(t *testing.T) {
	m := outlined()
	assert.Equal(t, 12, m.TotalPages())
	assert.Equal(t, 0, (&Memory{}).TotalPages())
}

func TestPagesWritten(t *testing.T) {
	m := outlined()
	assert.Equal(t, 0, m.PagesWritten())

	m.Progress = Progress{ChapterIndex: 1, PageInChapter: 2}
	assert.Equal(t, 5, m.PagesWritten(), "chapter one complete plus two pages")

	m.Progress = Progress{ChapterIndex: 3}
	assert.Equal(t, 12, m.PagesWritten())
}

func TestCompleted(t *testing.T) {
	m := outlined()
	assert.False(t, m.Completed())

	m.Progress.ChapterIndex = 3
	assert.True(t, m.Completed())

	assert.False(t, (&Memory{}).Completed(), "no outline is never complete")
}

func TestCurrentChapter(t *testing.T) {
	m := outlined()
	plan, ok := m.CurrentChapter()
	require.True(t, ok)
	assert.Equal(t, 1, plan.Number)

	m.Progress.ChapterIndex = 2
	plan, ok = m.CurrentChapter()
	require.True(t, ok)
	assert.Equal(t, "Spring Line", plan.Title)

	m.Progress.ChapterIndex = 3
	_, ok = m.CurrentChapter()
	assert.False(t, ok)
}

func TestSetCharacterState(t *testing.T) {
	m := outlined()
	require.NoError(t, m.SetCharacterState("Mara", "Holding the map at the quay."))
	assert.Equal(t, "Holding the map at the quay.", m.Characters["Mara"].CurrentState)

	assert.Error(t, m.SetCharacterState("Nobody", "lost"))
}

func TestCharacterNamesSorted(t *testing.T) {
	m := outlined()
	assert.Equal(t, []string{"Mara", "Oleg"}, m.CharacterNames())
}

func TestNormalize(t *testing.T) {
	m := &Memory{Plot: Plot{Outline: []ChapterPlan{{Number: 1}}}}
	m.normalize()
	assert.NotNil(t, m.Characters)
	assert.NotNil(t, m.Plot.Outline[0].CharacterFocus)
}
