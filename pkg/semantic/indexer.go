// Package semantic maintains the long-term retrieval index of a project:
// finished chapters are chunked, embedded and stored so later pages can
// recall distant plot detail. Every operation degrades instead of failing
// when the embedding service is missing.
package semantic

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"fable/pkg/embeddings"
	"fable/pkg/vector"
)

const (
	DefaultChunkWords   = 400
	DefaultOverlapWords = 50
	DefaultTopK         = 4
	DefaultDim          = 1024

	// Placeholder is served whenever retrieval cannot: callers drop it into
	// prompts verbatim instead of branching on index health.
	Placeholder = "No long-term context is available yet."

	separator = "\n\n---\n\n"
)

type Options struct {
	ChunkWords   int
	OverlapWords int
	Dim          int
}

type Indexer struct {
	embedder   embeddings.Embedder
	store      *vector.Store
	indexPath  string
	chunksPath string
	chunkWords int
	overlap    int
	available  bool
}

// New probes the embedder once and loads any persisted index. A nil or
// unreachable embedder yields a disabled indexer, never an error.
func New(ctx context.Context, embedder embeddings.Embedder, indexPath, chunksPath string, opts Options) *Indexer {
	ix := &Indexer{
		embedder:   embedder,
		indexPath:  indexPath,
		chunksPath: chunksPath,
		chunkWords: cmp.Or(opts.ChunkWords, DefaultChunkWords),
		overlap:    cmp.Or(opts.OverlapWords, DefaultOverlapWords),
	}
	dim := cmp.Or(opts.Dim, DefaultDim)

	if embedder == nil {
		log.Info("no embedder configured, long-term memory disabled")
		ix.store = vector.New(dim)
		return ix
	}
	if err := embedder.Ping(ctx); err != nil {
		log.Warn("embedding service unreachable, long-term memory disabled", "error", err)
		ix.store = vector.New(dim)
		return ix
	}

	ix.available = true
	ix.store = vector.Load(indexPath, chunksPath, dim)
	if n := ix.store.Len(); n > 0 {
		log.Info("semantic index loaded", "chunks", n)
	}
	return ix
}

func (ix *Indexer) Available() bool { return ix != nil && ix.available }

// IndexChapter chunks, embeds and persists one finished chapter. A disabled
// indexer no-ops. Nothing is committed if any chunk fails to embed.
func (ix *Indexer) IndexChapter(ctx context.Context, chapter int, text string) error {
	if !ix.Available() {
		return nil
	}
	chunks := splitWords(text, ix.chunkWords, ix.overlap)
	if len(chunks) == 0 {
		return nil
	}

	vecs := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := ix.embedder.Embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("embed chapter %d: %w", chapter, err)
		}
		vecs = append(vecs, vec)
	}

	// an empty store adopts the embedder's true dimension
	if ix.store.Len() == 0 && len(vecs[0]) != ix.store.Dim() {
		ix.store = vector.New(len(vecs[0]))
	}

	if err := ix.store.Add(chapter, chunks, vecs); err != nil {
		return fmt.Errorf("index chapter %d: %w", chapter, err)
	}
	if err := ix.store.Save(ix.indexPath, ix.chunksPath); err != nil {
		return fmt.Errorf("persist index: %w", err)
	}
	log.Info("chapter indexed", "chapter", chapter, "chunks", len(chunks))
	return nil
}

// Search returns the top-k chunks for query joined nearest-first, or the
// placeholder when retrieval cannot serve. It never fails.
func (ix *Indexer) Search(ctx context.Context, query string, k int) string {
	if !ix.Available() || ix.store.Len() == 0 || strings.TrimSpace(query) == "" {
		return Placeholder
	}
	if k <= 0 {
		k = DefaultTopK
	}

	vec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		log.Warn("query embedding failed, serving placeholder", "error", err)
		return Placeholder
	}
	matches := ix.store.Search(vec, k)
	if len(matches) == 0 {
		return Placeholder
	}

	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Chunk.Text
	}
	return strings.Join(parts, separator)
}
