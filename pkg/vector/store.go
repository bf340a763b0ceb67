// Package vector is a small exact nearest-neighbor store for chapter
// chunks, persisted as two aligned JSON artifacts.
package vector

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Chunk is the text payload stored alongside a vector.
type Chunk struct {
	Chapter int    `json:"chapter"`
	Text    string `json:"text"`
}

// Match is one search hit.
type Match struct {
	ID       int64
	Chunk    Chunk
	Distance float64
}

// Store holds vectors and chunk payloads keyed by monotonically increasing
// ids. Ids are never reused.
type Store struct {
	dim    int
	nextID int64
	ids    []int64
	vecs   [][]float32
	chunks map[int64]Chunk
}

func New(dim int) *Store {
	return &Store{dim: dim, chunks: map[int64]Chunk{}}
}

func (s *Store) Dim() int { return s.dim }
func (s *Store) Len() int { return len(s.ids) }

// Add appends aligned texts and vectors for one chapter.
func (s *Store) Add(chapter int, texts []string, vecs [][]float32) error {
	if len(texts) != len(vecs) {
		return fmt.Errorf("got %d texts but %d vectors", len(texts), len(vecs))
	}
	for _, v := range vecs {
		if len(v) != s.dim {
			return fmt.Errorf("vector dimension %d does not match store dimension %d", len(v), s.dim)
		}
	}
	for i, v := range vecs {
		id := s.nextID
		s.nextID++
		s.ids = append(s.ids, id)
		s.vecs = append(s.vecs, v)
		s.chunks[id] = Chunk{Chapter: chapter, Text: texts[i]}
	}
	return nil
}

// Search returns the k nearest chunks by L2 distance, nearest first. An
// empty store or a query of the wrong dimension returns nil.
func (s *Store) Search(query []float32, k int) []Match {
	if len(s.ids) == 0 || k <= 0 || len(query) != s.dim {
		return nil
	}
	matches := make([]Match, 0, len(s.ids))
	for i, id := range s.ids {
		matches = append(matches, Match{
			ID:       id,
			Chunk:    s.chunks[id],
			Distance: distance(query, s.vecs[i]),
		})
	}
	slices.SortFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}

func distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
