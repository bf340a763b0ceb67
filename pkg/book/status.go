package book

// Status is the read-only projection served to UIs. It never mutates the
// project.
type Status struct {
	Title               string `json:"title"`
	Style               string `json:"style"`
	TotalChapters       int    `json:"total_chapters"`
	CurrentChapter      int    `json:"current_chapter_number"`
	CurrentChapterTitle string `json:"current_chapter_title"`
	CurrentPage         int    `json:"current_page"`
	PagesInChapter      int    `json:"pages_in_chapter"`
	PagesWritten        int    `json:"pages_written"`
	TotalPages          int    `json:"total_pages"`
	CharacterCount      int    `json:"character_count"`
	Completed           bool   `json:"completed"`
	LongTermMemory      bool   `json:"long_term_memory_available"`
	Blurb               string `json:"blurb,omitempty"`
	CoverPrompt         string `json:"cover_prompt,omitempty"`
	CoverPath           string `json:"cover_path,omitempty"`
	Message             string `json:"message,omitempty"`
}

// Status projects the current write position. longTerm reports whether the
// semantic index is live for this project. CurrentPage is the 1-based number
// of the page the writer will produce next; once the book is complete it
// pins to the final chapter's last page.
func (p *Project) Status(longTerm bool) Status {
	m := p.Memory
	s := Status{
		Title:          m.Metadata.Title,
		Style:          m.Metadata.StyleProfile,
		CharacterCount: len(m.Characters),
		LongTermMemory: longTerm,
		Blurb:          m.Metadata.Blurb,
		CoverPrompt:    m.Metadata.CoverPrompt,
		CoverPath:      m.Metadata.CoverPath,
	}

	if !m.HasOutline() {
		s.Message = "No outline generated yet."
		return s
	}

	s.TotalChapters = len(m.Plot.Outline)
	s.TotalPages = m.TotalPages()
	s.PagesWritten = m.PagesWritten()
	s.Completed = m.Completed()

	if s.Completed {
		last := m.Plot.Outline[len(m.Plot.Outline)-1]
		s.CurrentChapter = last.Number
		s.CurrentChapterTitle = last.Title
		s.CurrentPage = last.PagesEstimate
		s.PagesInChapter = last.PagesEstimate
		return s
	}

	plan, _ := m.CurrentChapter()
	s.CurrentChapter = plan.Number
	s.CurrentChapterTitle = plan.Title
	s.CurrentPage = m.Progress.PageInChapter + 1
	s.PagesInChapter = plan.PagesEstimate
	return s
}
