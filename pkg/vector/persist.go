package vector

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"fable/pkg/utils"
)

type persistedIndex struct {
	Dim     int         `json:"dim"`
	NextID  int64       `json:"next_id"`
	IDs     []int64     `json:"ids"`
	Vectors [][]float32 `json:"vectors"`
}

// Save writes the index and chunk artifacts. Both are written on every save
// so they stay aligned.
func (s *Store) Save(indexPath, chunksPath string) error {
	idx := persistedIndex{Dim: s.dim, NextID: s.nextID, IDs: s.ids, Vectors: s.vecs}
	if err := utils.Save(indexPath, idx); err != nil {
		return fmt.Errorf("save vectors: %w", err)
	}
	out := make(map[string]Chunk, len(s.chunks))
	for id, ch := range s.chunks {
		out[strconv.FormatInt(id, 10)] = ch
	}
	if err := utils.Save(chunksPath, out); err != nil {
		return fmt.Errorf("save chunks: %w", err)
	}
	return nil
}

// Load reads the two artifacts. Any failure - missing files, parse errors,
// artifacts out of step with each other - logs a warning and returns an
// empty store: the index is a cache of the manuscript, losing it only costs
// retrieval quality.
func Load(indexPath, chunksPath string, dim int) *Store {
	empty := New(dim)
	if !utils.Exists(indexPath) && !utils.Exists(chunksPath) {
		return empty
	}

	idx, err := utils.Load[persistedIndex](indexPath)
	if err != nil {
		log.Warn("vector index unreadable, starting empty", "path", indexPath, "error", err)
		return empty
	}
	raw, err := utils.Load[map[string]Chunk](chunksPath)
	if err != nil {
		log.Warn("chunk artifact unreadable, starting empty", "path", chunksPath, "error", err)
		return empty
	}

	if idx.Dim != dim {
		log.Warn("vector index dimension changed, starting empty", "stored", idx.Dim, "want", dim)
		return empty
	}
	if len(idx.IDs) != len(idx.Vectors) {
		log.Warn("vector index ids and vectors out of step, starting empty", "ids", len(idx.IDs), "vectors", len(idx.Vectors))
		return empty
	}
	for _, v := range idx.Vectors {
		if len(v) != dim {
			log.Warn("stored vector has wrong dimension, starting empty", "got", len(v), "want", dim)
			return empty
		}
	}

	chunks := make(map[int64]Chunk, len(raw))
	for k, ch := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			log.Warn("chunk artifact has bad id, starting empty", "id", k)
			return empty
		}
		chunks[id] = ch
	}
	for _, id := range idx.IDs {
		if _, ok := chunks[id]; !ok {
			log.Warn("vector artifacts out of step, starting empty", "missing_chunk", id)
			return empty
		}
	}

	s := New(dim)
	s.ids = idx.IDs
	s.vecs = idx.Vectors
	s.chunks = chunks
	s.nextID = idx.NextID
	for _, id := range s.ids {
		if id >= s.nextID {
			s.nextID = id + 1
		}
	}
	return s
}
