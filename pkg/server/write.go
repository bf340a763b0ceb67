package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fable/pkg/book"
	"fable/pkg/utils"
	"fable/pkg/writer"
)

// POST /api/projects/:name/page
func (s *Server) handlePostPage(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	res, err := s.Engine.GeneratePage(c.Request().Context(), sess.project, sess.indexer)
	if err != nil {
		return httpError(err)
	}
	if res.State == writer.StateAwaitingOutline {
		return httpError(book.ErrNoOutline)
	}
	return c.JSON(http.StatusOK, res)
}

// POST /api/projects/:name/write streams the rest of the book as SSE: one
// "progress" event per page, "error" if a page fails, "done" with the final
// status once the run ends. Closing the connection stops the run after the
// page in flight.
func (s *Server) handlePostWrite(c echo.Context) error {
	sess, err := s.acquire(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	defer sess.mu.Unlock()

	if !sess.project.Memory.HasOutline() {
		return httpError(book.ErrNoOutline)
	}

	w := utils.NewSSEWriter(c)
	defer w.Close()

	ctx := c.Request().Context()
	for prog, err := range s.Author.WriteFullBook(ctx, sess.project, sess.indexer, s.PageDelay) {
		if err != nil {
			_ = w.Event("error", map[string]string{"message": prog.Message, "error": err.Error()})
			return nil
		}
		if err := w.Event("progress", prog); err != nil {
			return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed sending write progress"))
		}
	}
	return w.Event("done", sess.project.Status(sess.indexer.Available()))
}
