package author

import (
	"errors"
	"fmt"
	"strings"

	"fable/pkg/book"
	"fable/pkg/utils"

	"github.com/charmbracelet/log"
	"github.com/go-pdf/fpdf"
)

// ExportPDF typesets the manuscript into <project>.pdf: cover page when one
// exists, title page, blurb page, then one section per chapter. A book in
// progress exports whatever is written so far.
func ExportPDF(p *book.Project) (string, error) {
	m := p.Memory
	manuscript, err := p.Manuscript()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(manuscript) == "" {
		return "", errors.New("nothing to export yet")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(m.Metadata.Title, true)
	pdf.SetAuthor(strings.Join(m.Metadata.AuthorStyles, ", "), true)
	pdf.SetMargins(20, 25, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	front := 1
	if utils.Exists(p.CoverPath()) {
		front++
	}
	if m.Metadata.Blurb != "" {
		front++
	}
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() <= front {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Times", "I", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()-front), "", 0, "C", false, 0, "")
	})

	if utils.Exists(p.CoverPath()) {
		pdf.AddPage()
		w, _ := pdf.GetPageSize()
		pdf.ImageOptions(p.CoverPath(), 0, 0, w, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	pdf.AddPage()
	pdf.SetY(80)
	pdf.SetFont("Times", "B", 30)
	pdf.MultiCell(0, 14, tr(m.Metadata.Title), "", "C", false)
	if len(m.Metadata.AuthorStyles) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Times", "I", 13)
		pdf.MultiCell(0, 8, tr("in the style of "+strings.Join(m.Metadata.AuthorStyles, ", ")), "", "C", false)
	}

	if m.Metadata.Blurb != "" {
		pdf.AddPage()
		pdf.SetY(60)
		pdf.SetFont("Times", "I", 12)
		pdf.MultiCell(0, 7, tr(m.Metadata.Blurb), "", "C", false)
	}

	for _, rec := range m.ChaptersSummary {
		writeChapter(pdf, tr, rec.Number, rec.Title, chapterBody(manuscript, rec.Start, rec.End))
	}

	// a half-written chapter still exports
	rest := manuscript
	if n := len(m.ChaptersSummary); n > 0 {
		rest = manuscript[min(m.ChaptersSummary[n-1].End, len(manuscript)):]
	}
	if strings.TrimSpace(rest) != "" {
		if plan, ok := m.CurrentChapter(); ok {
			writeChapter(pdf, tr, plan.Number, plan.Title, stripHeading(rest))
		} else {
			writeChapter(pdf, tr, len(m.ChaptersSummary)+1, "In Progress", stripHeading(rest))
		}
	}

	if err := pdf.OutputFileAndClose(p.PDFPath()); err != nil {
		return "", fmt.Errorf("export pdf: %w", err)
	}
	log.Info("pdf exported", "project", p.Name, "path", p.PDFPath(), "chapters", len(m.ChaptersSummary))
	return p.PDFPath(), nil
}

func writeChapter(pdf *fpdf.Fpdf, tr func(string) string, number int, title, body string) {
	pdf.AddPage()
	pdf.SetFont("Times", "B", 18)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Chapter %d", number)), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "I", 13)
	pdf.CellFormat(0, 8, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Times", "", 12)
	for _, par := range strings.Split(body, "\n\n") {
		par = strings.TrimSpace(par)
		if par == "" {
			continue
		}
		pdf.MultiCell(0, 6, tr(par), "", "J", false)
		pdf.Ln(3)
	}
}

func chapterBody(manuscript string, start, end int) string {
	start = min(start, len(manuscript))
	end = min(end, len(manuscript))
	if start > end {
		start = end
	}
	return stripHeading(manuscript[start:end])
}

// stripHeading drops the manuscript's own chapter heading line, the PDF
// renders its own.
func stripHeading(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "## ") {
		if _, rest, ok := strings.Cut(text, "\n"); ok {
			return strings.TrimSpace(rest)
		}
		return ""
	}
	return text
}
