package book

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fable/pkg/styles"
	"fable/pkg/utils"
	"fable/pkg/validate"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrNoOutline = errors.New("project has no outline yet")
)

// Project is an explicit handle on one book: its directory and its loaded
// memory. All state lives in files under Dir; nothing global.
type Project struct {
	Name   string
	Dir    string
	Memory *Memory
}

// Create validates inputs, builds the project directory and writes the
// initial memory document.
func Create(root, name string, authorStyles []string, styleProfile string) (*Project, error) {
	if err := validate.Name(name); err != nil {
		return nil, err
	}
	if err := validate.AuthorStyles(authorStyles); err != nil {
		return nil, err
	}
	if styleProfile == "" {
		styleProfile = styles.DefaultID
	}
	if _, ok := styles.Lookup(styleProfile); !ok {
		return nil, &validate.Error{
			Field:   "style_profile",
			Message: fmt.Sprintf("unknown style profile %q (known: %s)", styleProfile, strings.Join(styles.IDs(), ", ")),
		}
	}

	slug := validate.SanitizeName(name)
	dir := filepath.Join(root, slug)
	if utils.Exists(filepath.Join(dir, "memory.json")) {
		return nil, &validate.Error{Field: "name", Message: fmt.Sprintf("project %q already exists", name)}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}

	p := &Project{
		Name: slug,
		Dir:  dir,
		Memory: &Memory{
			Metadata: Metadata{
				Title:        strings.TrimSpace(name),
				AuthorStyles: authorStyles,
				StyleProfile: styleProfile,
				CreatedAt:    time.Now().UTC(),
			},
			Characters: map[string]*Character{},
		},
	}
	if err := p.Save(); err != nil {
		return nil, err
	}
	return p, nil
}

// Open loads an existing project by name.
func Open(root, name string) (*Project, error) {
	slug := validate.SanitizeName(name)
	dir := filepath.Join(root, slug)
	mem, err := utils.Load[*Memory](filepath.Join(dir, "memory.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("load memory: %w", err)
	}
	mem.normalize()
	if mem.Metadata.StyleProfile == "" {
		mem.Metadata.StyleProfile = styles.DefaultID
	}
	return &Project{Name: slug, Dir: dir, Memory: mem}, nil
}

// List returns the names of all projects under root.
func List(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if utils.Exists(filepath.Join(root, e.Name(), "memory.json")) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Save persists the memory document atomically.
func (p *Project) Save() error {
	if err := utils.Save(p.MemoryPath(), p.Memory); err != nil {
		return fmt.Errorf("save memory: %w", err)
	}
	return nil
}

func (p *Project) MemoryPath() string     { return filepath.Join(p.Dir, "memory.json") }
func (p *Project) ManuscriptPath() string { return filepath.Join(p.Dir, "book.md") }
func (p *Project) VectorsPath() string    { return filepath.Join(p.Dir, "vectors.json") }
func (p *Project) ChunksPath() string     { return filepath.Join(p.Dir, "chunks.json") }
func (p *Project) CoverPath() string      { return filepath.Join(p.Dir, "cover.png") }
func (p *Project) PDFPath() string        { return filepath.Join(p.Dir, p.Name+".pdf") }

// Manuscript reads the whole manuscript. A project with no pages yet
// returns the empty string.
func (p *Project) Manuscript() (string, error) {
	data, err := os.ReadFile(p.ManuscriptPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read manuscript: %w", err)
	}
	return string(data), nil
}

// AppendManuscript appends text to the manuscript file and returns the byte
// offsets the write covered.
func (p *Project) AppendManuscript(text string) (start, end int, err error) {
	f, err := os.OpenFile(p.ManuscriptPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, 0, fmt.Errorf("open manuscript: %w", err)
	}
	defer f.Close()

	off, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("manuscript offset: %w", err)
	}
	n, err := f.WriteString(text)
	if err != nil {
		return 0, 0, fmt.Errorf("append manuscript: %w", err)
	}
	return int(off), int(off) + n, nil
}
