package outline

import (
	"fmt"
	"strings"
)

const outlineSystem = `You are a story architect. You design complete book outlines: a coherent world, a cast of characters with arcs, and a chapter-by-chapter plan that delivers on the premise and themes you are given.

Respond with a single JSON object matching the requested schema. No prose before or after the JSON.`

func buildOutlinePrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design a complete outline for a book with exactly %d chapters.\n\n", in.Chapters)
	fmt.Fprintf(&b, "Premise:\n%s\n\n", strings.TrimSpace(in.Premise))
	fmt.Fprintf(&b, "Themes: %s\n", strings.Join(in.Themes, ", "))
	if len(in.AuthorStyles) > 0 {
		fmt.Fprintf(&b, "Written in the style of: %s\n", strings.Join(in.AuthorStyles, ", "))
	}
	if lines := in.Style.Directives(); len(lines) > 0 {
		b.WriteString("\nStyle notes:\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}
	b.WriteString("\nRequirements:\n")
	fmt.Fprintf(&b, "- Number chapters sequentially from 1 to %d.\n", in.Chapters)
	b.WriteString("- Give every chapter a title, a two or three sentence summary, and its key events.\n")
	b.WriteString("- Estimate pages per chapter; a page is roughly 400-550 words.\n")
	b.WriteString("- List the characters each chapter focuses on by name.\n")
	b.WriteString("- State consistency rules: hard facts the narrative must never contradict.\n")
	return b.String()
}
