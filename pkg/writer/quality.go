package writer

import "strings"

// Quality summarizes a generated page for logs and API consumers.
type Quality struct {
	Words      int    `json:"words"`
	Sentences  int    `json:"sentences"`
	Paragraphs int    `json:"paragraphs"`
	Dialogue   bool   `json:"dialogue"`
	Length     string `json:"length"`
}

// Analyze measures a page. Length buckets follow the target band of
// 400-550 words per page.
func Analyze(text string) Quality {
	words := len(strings.Fields(text))
	q := Quality{
		Words:      words,
		Sentences:  countSentences(text),
		Paragraphs: countParagraphs(text),
		Dialogue:   strings.ContainsAny(text, `"“”`),
	}
	switch {
	case words < 300:
		q.Length = "too_short"
	case words < 400:
		q.Length = "short"
	case words < 600:
		q.Length = "ideal"
	case words < 700:
		q.Length = "long"
	default:
		q.Length = "too_long"
	}
	return q
}

// countSentences counts runs of sentence terminators so an ellipsis reads
// as one stop.
func countSentences(s string) int {
	n := 0
	inRun := false
	for _, r := range s {
		switch r {
		case '.', '!', '?':
			if !inRun {
				n++
				inRun = true
			}
		default:
			inRun = false
		}
	}
	return n
}

func countParagraphs(s string) int {
	n := 0
	for _, block := range strings.Split(s, "\n\n") {
		if strings.TrimSpace(block) != "" {
			n++
		}
	}
	return n
}
