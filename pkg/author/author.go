// Package author runs the larger jobs a project goes through: writing the
// whole book page by page, blurb and cover generation, and PDF export.
package author

import (
	"context"
	"fmt"
	"iter"
	"time"

	"fable/pkg/book"
	"fable/pkg/inference"
	"fable/pkg/semantic"
	"fable/pkg/writer"
)

// DefaultPageDelay spaces page generations so a full-book run does not
// monopolize API quota.
const DefaultPageDelay = 10 * time.Second

// Progress is one element of a full-book run.
type Progress struct {
	Fraction float64 `json:"fraction"`
	Message  string  `json:"message"`
}

type Author struct {
	inf inference.Inferencer
	eng *writer.Engine
}

func New(inf inference.Inferencer) *Author {
	return &Author{inf: inf, eng: writer.NewEngine(inf)}
}

// WriteFullBook writes every remaining page of p, yielding progress after
// each one. The sequence is lazy: no page is generated until the consumer
// asks, and it stops cleanly when the consumer does. The first failure
// yields once with the error and ends the run, already-written pages stay.
func (a *Author) WriteFullBook(ctx context.Context, p *book.Project, ix *semantic.Indexer, delay time.Duration) iter.Seq2[Progress, error] {
	if delay <= 0 {
		delay = DefaultPageDelay
	}
	return func(yield func(Progress, error) bool) {
		m := p.Memory
		if !m.HasOutline() {
			yield(Progress{Message: "No outline generated yet."}, book.ErrNoOutline)
			return
		}

		for !m.Completed() {
			res, err := a.eng.GeneratePage(ctx, p, ix)
			if err != nil {
				yield(Progress{Fraction: fraction(m), Message: "Stopped on error."}, err)
				return
			}

			pr := Progress{
				Fraction: fraction(m),
				Message:  fmt.Sprintf("Wrote chapter %d page %d (%d words)", res.Chapter, res.Page, res.Quality.Words),
			}
			if res.Done {
				pr.Fraction = 1
				pr.Message = "Book complete."
			}
			if !yield(pr, nil) {
				return
			}
			if m.Completed() {
				return
			}

			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				yield(Progress{Fraction: fraction(m), Message: "Stopped."}, ctx.Err())
				return
			case <-t.C:
			}
		}
	}
}

func fraction(m *book.Memory) float64 {
	total := m.TotalPages()
	if total == 0 {
		return 0
	}
	return float64(m.PagesWritten()) / float64(total)
}
