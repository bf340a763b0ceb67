package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"fable/pkg/author"
	"fable/pkg/utils"
	"fable/pkg/validate"
)

// POST /api/projects/:name/blurb
func (s *Server) handlePostBlurb(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	blurb, err := s.Author.Blurb(c.Request().Context(), sess.project)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"blurb": blurb})
}

// POST /api/projects/:name/cover
func (s *Server) handlePostCover(c echo.Context) error {
	if s.Queue == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "image queue not configured")
	}

	key := validate.SanitizeName(c.Param("name"))
	var data []byte
	var err error
	if c.QueryParam("force") == "true" {
		data, err = s.Covers.Force(key)
	} else {
		data, err = s.Covers.Get(key)
	}
	if err != nil {
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "image/png")
	c.Response().WriteHeader(http.StatusOK)
	_, err = c.Response().Write(data)
	return err
}

// renderCover is the cover cache's work function. It runs once per key no
// matter how many requests wait, and uses the server context so a dropped
// client does not abandon a generation already paid for.
func (s *Server) renderCover(key string) ([]byte, error) {
	sess, err := s.acquire(key)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	path, err := s.Author.Cover(s.Ctx, sess.project, s.Queue)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// GET /api/projects/:name/cover
func (s *Server) handleGetCover(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	path := sess.project.CoverPath()
	sess.mu.Unlock()

	if !utils.Exists(path) {
		return echo.NewHTTPError(http.StatusNotFound, "no cover generated yet")
	}
	return c.File(path)
}

// POST /api/projects/:name/export
func (s *Server) handlePostExport(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	path, err := author.ExportPDF(sess.project)
	if err != nil {
		return httpError(err)
	}
	log.Info("pdf exported", "project", sess.project.Name, "path", path)
	return c.Attachment(path, filepath.Base(path))
}
