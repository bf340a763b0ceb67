package writer

import (
	"fmt"
	"strings"
)

const pagePersona = `You are a novelist writing a book one page at a time. Write vivid, continuous prose that picks up exactly where the manuscript leaves off.`

const pageRules = `Continue directly from where the story left off. Do not write a chapter heading, a title, a recap, or any commentary. Write only the page's prose.`

const updatesSystem = `You track characters through a story. Given the end of the chapter just written and a list of character names, report where each character now stands: location, condition, intent.

Respond with a single JSON object matching the requested schema. Only include characters whose situation the chapter actually changed.`

func buildUpdatesPrompt(window string, names []string) string {
	var b strings.Builder
	b.WriteString("Characters to track:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "- %s\n", n)
	}
	b.WriteString("\nEnd of the chapter just written:\n")
	b.WriteString(window)
	b.WriteString("\n\nFor each character the chapter moved, describe their situation at this point in one or two sentences.")
	return b.String()
}
