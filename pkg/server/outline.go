package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"fable/pkg/book"
	"fable/pkg/outline"
	"fable/pkg/styles"
)

type outlineReq struct {
	Premise  string   `json:"premise"`
	Chapters int      `json:"chapters"`
	Themes   []string `json:"themes"`
}

type outlineResponse struct {
	Premise string             `json:"premise"`
	Themes  []string           `json:"themes,omitempty"`
	World   book.World         `json:"world"`
	Outline []book.ChapterPlan `json:"outline"`
}

// GET /api/projects/:name/outline
func (s *Server) handleGetOutline(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	m := sess.project.Memory
	if !m.HasOutline() {
		return httpError(book.ErrNoOutline)
	}
	return c.JSON(http.StatusOK, outlineResponse{
		Premise: m.Metadata.Premise,
		Themes:  m.Metadata.Themes,
		World:   m.World,
		Outline: m.Plot.Outline,
	})
}

// POST /api/projects/:name/outline
func (s *Server) handlePostOutline(c echo.Context) error {
	var req outlineReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	m := sess.project.Memory
	if m.HasOutline() {
		return httpError(outline.ErrOutlineExists)
	}

	profile, ok := styles.Lookup(m.Metadata.StyleProfile)
	if !ok {
		profile = styles.Default()
	}
	in := outline.Input{
		Premise:      req.Premise,
		Chapters:     req.Chapters,
		Themes:       req.Themes,
		AuthorStyles: m.Metadata.AuthorStyles,
		Style:        profile,
	}

	draft, err := s.Outliner.Generate(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	if err := outline.Apply(sess.project, draft, in); err != nil {
		return httpError(err)
	}
	log.Info("outline applied", "project", sess.project.Name, "chapters", len(m.Plot.Outline))

	return c.JSON(http.StatusOK, outlineResponse{
		Premise: m.Metadata.Premise,
		Themes:  m.Metadata.Themes,
		World:   m.World,
		Outline: m.Plot.Outline,
	})
}
