package writer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fable/pkg/book"
	"fable/pkg/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterCompletionUpdatesStates(t *testing.T) {
	p := testProject(t, 1, 1)
	fake := &scripted{replies: []reply{
		{text: samplePage},
		{text: updatesReply},
	}}

	res, err := NewEngine(fake).GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)
	assert.True(t, res.ChapterDone)

	assert.Equal(t, "Standing at the breakwater, resolved to leave.", p.Memory.Characters["Mara"].CurrentState)
	assert.Equal(t, "At the start of the story.", p.Memory.Characters["Oleg"].CurrentState)

	require.Equal(t, 2, fake.calls)
	updParams := fake.params[1]
	assert.NotNil(t, updParams.ResponseFormat.OfJSONSchema)
	assert.Equal(t, 0.3, updParams.Temperature.Value)

	updPrompt := fake.users[1]
	assert.Contains(t, updPrompt, "- Mara")
	assert.Contains(t, updPrompt, "- Oleg")
	assert.Contains(t, updPrompt, "Mara counted the bells")
}

func TestStateUpdateFailureKeepsStates(t *testing.T) {
	cases := map[string]reply{
		"call error":    {err: errors.New("model unavailable")},
		"parse failure": {text: "not json at all"},
	}
	for name, upd := range cases {
		t.Run(name, func(t *testing.T) {
			p := testProject(t, 1)
			fake := &scripted{replies: []reply{{text: samplePage}, upd}}

			res, err := NewEngine(fake).GeneratePage(context.Background(), p, nil)

			require.NoError(t, err)
			assert.True(t, res.ChapterDone, "the chapter still advances")
			assert.Equal(t, "At the start of the story.", p.Memory.Characters["Mara"].CurrentState)
			assert.Equal(t, "At the start of the story.", p.Memory.Characters["Oleg"].CurrentState)
		})
	}
}

func TestApplyStateUpdates(t *testing.T) {
	p := testProject(t, 1)
	m := p.Memory
	m.Characters["Captain Ruiz"] = &book.Character{
		Description:  "Harbor master.",
		CurrentState: "At the start of the story.",
	}

	n := applyStateUpdates(m, []schema.CharacterUpdate{
		{Name: "Mara", State: "Rowing out past the breakwater."},
		{Name: "oleg", State: "Asleep in the lamp room."},
		{Name: "Captain Ruis", State: "Arguing with the customs office."},
		{Name: "Nobody", State: "A character that does not exist."},
		{Name: "Mara", State: "tiny"},
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, "Rowing out past the breakwater.", m.Characters["Mara"].CurrentState)
	assert.Equal(t, "Asleep in the lamp room.", m.Characters["Oleg"].CurrentState)
	assert.Equal(t, "Arguing with the customs office.", m.Characters["Captain Ruiz"].CurrentState)
}

func TestApplyStateUpdatesTruncatesLongStates(t *testing.T) {
	p := testProject(t, 1)
	long := strings.Repeat("a", 250)

	n := applyStateUpdates(p.Memory, []schema.CharacterUpdate{{Name: "Mara", State: long}})

	require.Equal(t, 1, n)
	got := p.Memory.Characters["Mara"].CurrentState
	assert.Len(t, got, maxStateLen)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", maxStateLen-3), strings.TrimSuffix(got, "..."))
}

func TestApplyStateUpdatesSkipsNoops(t *testing.T) {
	p := testProject(t, 1)

	n := applyStateUpdates(p.Memory, []schema.CharacterUpdate{
		{Name: "Mara", State: "At the start of the story."},
	})

	assert.Zero(t, n)
}

func TestMatchName(t *testing.T) {
	p := testProject(t, 1)
	m := p.Memory
	m.Characters["Captain Ruiz"] = &book.Character{Description: "Harbor master."}

	assert.Equal(t, "Mara", matchName(m, "Mara"))
	assert.Equal(t, "Mara", matchName(m, "mara"))
	assert.Equal(t, "Captain Ruiz", matchName(m, "Captain Ruis"))
	assert.Equal(t, "", matchName(m, "Marra"))
	assert.Equal(t, "", matchName(m, ""))
	assert.Equal(t, "", matchName(m, "Someone Entirely Else"))
}
