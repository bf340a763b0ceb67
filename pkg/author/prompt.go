package author

import (
	"fmt"
	"strings"

	"fable/pkg/book"
)

const blurbSystem = `You write back-cover blurbs for novels. A blurb sells the premise and the stakes without giving away how the story ends.

Write 150-200 words of plain prose. No headings, no bullet points, no quotes around the text.`

const coverSystem = `You write prompts for an image generation model that paints book covers. Describe one striking cover scene: subject, mood, palette, lighting, composition. The cover must contain no text, titles, or lettering of any kind.

Respond with the prompt only, as a single paragraph.`

func buildBlurbPrompt(m *book.Memory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the back-cover blurb for %q.\n\n", m.Metadata.Title)
	fmt.Fprintf(&b, "Premise:\n%s\n", m.Metadata.Premise)
	if len(m.Metadata.Themes) > 0 {
		fmt.Fprintf(&b, "\nThemes: %s\n", strings.Join(m.Metadata.Themes, ", "))
	}
	if len(m.Metadata.AuthorStyles) > 0 {
		fmt.Fprintf(&b, "Written in the style of: %s\n", strings.Join(m.Metadata.AuthorStyles, ", "))
	}
	b.WriteString("\nChapter plan:\n")
	for _, ch := range m.Plot.Outline {
		fmt.Fprintf(&b, "%d. %s: %s\n", ch.Number, ch.Title, ch.Summary)
	}
	b.WriteString("\nDo not reveal anything past the story's midpoint.")
	return b.String()
}

func buildCoverPrompt(m *book.Memory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design the front cover for %q.\n\n", m.Metadata.Title)
	fmt.Fprintf(&b, "Setting: %s (%s)\n", m.World.Setting, m.World.TimePeriod)
	if m.Metadata.Blurb != "" {
		fmt.Fprintf(&b, "\nBack-cover blurb:\n%s\n", m.Metadata.Blurb)
	}
	if len(m.Metadata.Themes) > 0 {
		fmt.Fprintf(&b, "\nThemes: %s\n", strings.Join(m.Metadata.Themes, ", "))
	}
	return b.String()
}
