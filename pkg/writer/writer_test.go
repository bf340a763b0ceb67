package writer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fable/pkg/book"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `The tide pulled back from the pilings and left the harbor mud shining. Mara counted the bells twice before she trusted the count, then went down the ladder with the lantern hooded.`

const updatesReply = `{"updates":[{"name":"Mara","state":"Standing at the breakwater, resolved to leave."}]}`

type reply struct {
	text string
	err  error
}

// scripted replays canned completions in order, repeating the last one, and
// records everything it was asked.
type scripted struct {
	replies []reply
	calls   int
	params  []*openai.ChatCompletionNewParams
	systems []string
	users   []string
}

func (s *scripted) Complete(_ context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	i := min(s.calls, len(s.replies)-1)
	s.calls++
	s.params = append(s.params, params)
	s.systems = append(s.systems, system)
	s.users = append(s.users, user)
	r := s.replies[i]
	return r.text, r.err
}

// testProject builds an outlined project with one chapter per estimate.
func testProject(t *testing.T, estimates ...int) *book.Project {
	t.Helper()
	p, err := book.Create(t.TempDir(), "Writer Test", []string{"test author"}, "")
	require.NoError(t, err)

	p.Memory.Metadata.Title = "The Hollow Coast"
	p.Memory.World = book.World{Setting: "A drowned fishing coast", TimePeriod: "1890s"}
	p.Memory.Characters = map[string]*book.Character{
		"Mara": {Description: "A tide-reader.", CurrentState: "At the start of the story."},
		"Oleg": {Description: "A lighthouse keeper.", CurrentState: "At the start of the story."},
	}
	for i, n := range estimates {
		p.Memory.Plot.Outline = append(p.Memory.Plot.Outline, book.ChapterPlan{
			Number:         i + 1,
			Title:          fmt.Sprintf("Chapter Title %d", i+1),
			Summary:        fmt.Sprintf("Summary of chapter %d.", i+1),
			KeyEvents:      []string{"an event"},
			CharacterFocus: []string{"Mara"},
			PagesEstimate:  n,
		})
	}
	require.NoError(t, p.Save())
	return p
}

func TestStateOf(t *testing.T) {
	p := testProject(t, 1)
	assert.Equal(t, StateWriting, StateOf(p.Memory))

	p.Memory.Progress.ChapterIndex = 1
	assert.Equal(t, StateCompleted, StateOf(p.Memory))

	p.Memory.Plot.Outline = nil
	assert.Equal(t, StateAwaitingOutline, StateOf(p.Memory))
}

func TestGeneratePageWithoutOutline(t *testing.T) {
	root := t.TempDir()
	p, err := book.Create(root, "No Outline", []string{"test author"}, "")
	require.NoError(t, err)

	fake := &scripted{replies: []reply{{text: samplePage}}}
	res, err := NewEngine(fake).GeneratePage(context.Background(), p, nil)

	require.NoError(t, err)
	assert.Equal(t, StateAwaitingOutline, res.State)
	assert.Zero(t, fake.calls)
	assert.NoFileExists(t, p.ManuscriptPath())
}

func TestGeneratePageWritesHeadingOncePerChapter(t *testing.T) {
	p := testProject(t, 2, 3)
	fake := &scripted{replies: []reply{
		{text: "First page prose."},
		{text: "Second page prose."},
		{text: updatesReply},
	}}
	eng := NewEngine(fake)

	r1, err := eng.GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Page)
	assert.Equal(t, 1, r1.Chapter)
	assert.False(t, r1.ChapterDone)

	r2, err := eng.GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r2.Page)
	assert.True(t, r2.ChapterDone)
	assert.False(t, r2.Done)

	got, err := os.ReadFile(p.ManuscriptPath())
	require.NoError(t, err)
	text := string(got)
	assert.Equal(t, 1, strings.Count(text, "## Chapter 1: Chapter Title 1"))
	assert.Equal(t,
		"## Chapter 1: Chapter Title 1\n\nFirst page prose.\n\nSecond page prose.\n\n",
		text)

	require.Len(t, p.Memory.ChaptersSummary, 1)
	rec := p.Memory.ChaptersSummary[0]
	assert.Equal(t, 0, rec.Start)
	assert.Equal(t, len(text), rec.End)
	assert.Equal(t, 1, p.Memory.Progress.ChapterIndex)
	assert.Equal(t, 0, p.Memory.Progress.PageInChapter)
}

func TestGeneratePageFailureLeavesProjectUntouched(t *testing.T) {
	p := testProject(t, 2)
	eng := NewEngine(&scripted{replies: []reply{{text: samplePage}}})
	_, err := eng.GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)

	memBefore, err := os.ReadFile(p.MemoryPath())
	require.NoError(t, err)
	bookBefore, err := os.ReadFile(p.ManuscriptPath())
	require.NoError(t, err)

	failing := NewEngine(&scripted{replies: []reply{{err: errors.New("model unavailable")}}})
	_, err = failing.GeneratePage(context.Background(), p, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "write chapter 1 page 2")

	memAfter, err := os.ReadFile(p.MemoryPath())
	require.NoError(t, err)
	bookAfter, err := os.ReadFile(p.ManuscriptPath())
	require.NoError(t, err)

	assert.Equal(t, memBefore, memAfter)
	assert.Equal(t, bookBefore, bookAfter)
	assert.Equal(t, 1, p.Memory.Progress.PageInChapter)
}

func TestGeneratePageEmptyAfterCleanup(t *testing.T) {
	p := testProject(t, 2)
	fake := &scripted{replies: []reply{{text: "```\n## Chapter 1: Chapter Title 1\n\n```"}}}

	_, err := NewEngine(fake).GeneratePage(context.Background(), p, nil)

	var emptyErr *EmptyPageError
	require.ErrorAs(t, err, &emptyErr)
	assert.NoFileExists(t, p.ManuscriptPath())
	assert.Equal(t, 0, p.Memory.Progress.PageInChapter)
}

func TestWriteThroughCompletion(t *testing.T) {
	p := testProject(t, 1, 2)
	fake := &scripted{replies: []reply{
		{text: "Chapter one, only page."},
		{text: updatesReply},
		{text: "Chapter two, page one."},
		{text: "Chapter two, page two."},
		{text: updatesReply},
	}}
	eng := NewEngine(fake)

	r, err := eng.GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)
	assert.True(t, r.ChapterDone)
	assert.False(t, r.Done)

	r, err = eng.GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)
	assert.False(t, r.ChapterDone)

	r, err = eng.GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)
	assert.True(t, r.Done)
	assert.Equal(t, StateCompleted, r.State)

	callsAtEnd := fake.calls
	r, err = eng.GeneratePage(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, r.State)
	assert.Equal(t, callsAtEnd, fake.calls)

	manuscript, err := p.Manuscript()
	require.NoError(t, err)
	require.Len(t, p.Memory.ChaptersSummary, 2)
	for _, rec := range p.Memory.ChaptersSummary {
		part := manuscript[rec.Start:rec.End]
		assert.True(t, strings.HasPrefix(part, fmt.Sprintf("## Chapter %d:", rec.Number)),
			"record %d should start at its own heading", rec.Number)
	}
	assert.Equal(t, len(manuscript), p.Memory.ChaptersSummary[1].End)

	reopened, err := book.Open(filepath.Dir(p.Dir), p.Name)
	require.NoError(t, err)
	assert.True(t, reopened.Memory.Completed())
}

func TestPostProcessPage(t *testing.T) {
	raw := "```\n## Chapter 3: Whatever\n\nThe prose begins.\n\n\n\nIt continues.\n```"
	assert.Equal(t, "The prose begins.\n\nIt continues.", postProcessPage(raw))
	assert.Equal(t, "", postProcessPage("   \n\n"))
	assert.Equal(t, "Plain text.", postProcessPage("Plain text."))
	assert.Equal(t, "Kept line.", postProcessPage("# A heading\nKept line.\n### Another"))
}
