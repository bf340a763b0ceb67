package writer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"fable/pkg/book"
	"fable/pkg/semantic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPageContext(t *testing.T) {
	p := testProject(t, 3)
	m := p.Memory
	m.Characters["Mara"].CurrentState = "Hiding in the bell tower."
	manuscript := strings.Repeat("word ", 2000)

	pc := BuildPageContext(context.Background(), m, manuscript, m.Plot.Outline[0], 2, nil)

	assert.Contains(t, pc.System, `"The Hollow Coast"`)
	assert.Contains(t, pc.System, "A drowned fishing coast")
	assert.Contains(t, pc.System, "test author")

	assert.Contains(t, pc.User, "Chapter 1: Chapter Title 1")
	assert.Contains(t, pc.User, "Summary of chapter 1.")
	assert.Contains(t, pc.User, "Hiding in the bell tower.")
	assert.NotContains(t, pc.User, "lighthouse keeper", "only focus characters ride along")
	assert.Contains(t, pc.User, "most recent text")
	assert.Contains(t, pc.User, semantic.Placeholder)
	assert.Contains(t, pc.User, "Write page 2 of 3")
	assert.Contains(t, pc.User, "400-550 words")
}

func TestBuildPageContextTailIsBounded(t *testing.T) {
	p := testProject(t, 3)
	manuscript := strings.Repeat("x", 9000)

	pc := BuildPageContext(context.Background(), p.Memory, manuscript, p.Memory.Plot.Outline[0], 2, nil)

	assert.Contains(t, pc.User, strings.Repeat("x", tailRunes))
	assert.NotContains(t, pc.User, strings.Repeat("x", tailRunes+1))
}

func TestBuildPageContextEmptyManuscript(t *testing.T) {
	p := testProject(t, 3)

	pc := BuildPageContext(context.Background(), p.Memory, "", p.Memory.Plot.Outline[0], 1, nil)

	assert.NotContains(t, pc.User, "most recent text")
	assert.Contains(t, pc.User, "first page")
}

func TestBuildPageContextPositionNotes(t *testing.T) {
	p := testProject(t, 10)
	plan := p.Memory.Plot.Outline[0]

	first := BuildPageContext(context.Background(), p.Memory, "", plan, 1, nil)
	assert.Contains(t, first.User, "first page")

	last := BuildPageContext(context.Background(), p.Memory, "", plan, 10, nil)
	assert.Contains(t, last.User, "final page")

	late := BuildPageContext(context.Background(), p.Memory, "", plan, 8, nil)
	assert.Contains(t, late.User, "near its end")

	mid := BuildPageContext(context.Background(), p.Memory, "", plan, 5, nil)
	assert.NotContains(t, mid.User, "first page")
	assert.NotContains(t, mid.User, "final page")
	assert.NotContains(t, mid.User, "near its end")
}

func TestBuildPageContextRecap(t *testing.T) {
	p := testProject(t, 1, 1, 1, 1, 1)
	m := p.Memory
	for i := 1; i <= 4; i++ {
		m.ChaptersSummary = append(m.ChaptersSummary, book.ChapterRecord{
			Number:  i,
			Title:   fmt.Sprintf("Chapter Title %d", i),
			Summary: fmt.Sprintf("Summary of chapter %d.", i),
		})
	}
	m.Progress.ChapterIndex = 4

	pc := BuildPageContext(context.Background(), m, "", m.Plot.Outline[4], 1, nil)

	assert.NotContains(t, pc.User, "Chapter 1 (Chapter Title 1)", "recap keeps only recent chapters")
	assert.Contains(t, pc.User, "Chapter 2 (Chapter Title 2)")
	assert.Contains(t, pc.User, "Chapter 3 (Chapter Title 3)")
	assert.Contains(t, pc.User, "Chapter 4 (Chapter Title 4)")
}

func TestTailOf(t *testing.T) {
	assert.Equal(t, "", tailOf("", 10))
	assert.Equal(t, "abc", tailOf("abc", 10))
	assert.Equal(t, "cde", tailOf("abcde", 3))
	assert.Equal(t, "héllo", tailOf("héllo", 5), "runes, not bytes")
}

func TestAnalyze(t *testing.T) {
	page := strings.TrimSpace(strings.Repeat("One two three four five six seven eight nine ten. ", 45))

	q := Analyze(page)
	assert.Equal(t, 450, q.Words)
	assert.Equal(t, 45, q.Sentences)
	assert.Equal(t, 1, q.Paragraphs)
	assert.False(t, q.Dialogue)
	assert.Equal(t, "ideal", q.Length)

	q = Analyze("\"Wait,\" she said...\n\nHe nodded.")
	assert.True(t, q.Dialogue)
	assert.Equal(t, 2, q.Paragraphs)
	assert.Equal(t, 2, q.Sentences, "an ellipsis reads as one stop")
	assert.Equal(t, "too_short", q.Length)
}

func TestAnalyzeLengthBuckets(t *testing.T) {
	cases := []struct {
		words int
		want  string
	}{
		{299, "too_short"},
		{300, "short"},
		{399, "short"},
		{400, "ideal"},
		{599, "ideal"},
		{600, "long"},
		{699, "long"},
		{700, "too_long"},
	}
	for _, tc := range cases {
		text := strings.TrimSpace(strings.Repeat("word ", tc.words))
		q := Analyze(text)
		require.Equal(t, tc.words, q.Words)
		assert.Equal(t, tc.want, q.Length, "%d words", tc.words)
	}
}
