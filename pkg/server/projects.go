package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"fable/pkg/book"
	"fable/pkg/styles"
)

type createProjectReq struct {
	Name         string   `json:"name"`
	AuthorStyles []string `json:"author_styles"`
	StyleProfile string   `json:"style_profile"`
}

type stylesResponse struct {
	Profiles []styles.Profile    `json:"profiles"`
	Options  map[string][]string `json:"options"`
}

// GET /api/styles
func (s *Server) handleGetStyles(c echo.Context) error {
	return c.JSON(http.StatusOK, stylesResponse{Profiles: styles.All(), Options: styles.Options})
}

// GET /api/projects
func (s *Server) handleGetProjects(c echo.Context) error {
	names, err := book.List(s.ProjectsDir)
	if err != nil {
		return httpError(err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"projects": names})
}

// POST /api/projects
func (s *Server) handlePostProjects(c echo.Context) error {
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	p, err := book.Create(s.ProjectsDir, req.Name, req.AuthorStyles, req.StyleProfile)
	if err != nil {
		return httpError(err)
	}
	log.Info("project created", "name", p.Name, "style", p.Memory.Metadata.StyleProfile)
	return c.JSON(http.StatusCreated, p.Status(false))
}

// GET /api/projects/:name/status
func (s *Server) handleGetStatus(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	return c.JSON(http.StatusOK, sess.project.Status(sess.indexer.Available()))
}

// GET /api/projects/:name/manuscript
func (s *Server) handleGetManuscript(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	text, err := sess.project.Manuscript()
	if err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(text))
}
