// Package server exposes project management, outline generation, page
// writing and artwork over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fable/pkg/author"
	"fable/pkg/book"
	"fable/pkg/embeddings"
	"fable/pkg/flight"
	"fable/pkg/inference"
	"fable/pkg/outline"
	"fable/pkg/queue"
	"fable/pkg/semantic"
	"fable/pkg/utils"
	"fable/pkg/validate"
	"fable/pkg/writer"
)

// Options carries everything the server needs wired in. Embedder and Queue
// may be nil: retrieval degrades to a placeholder and cover generation
// reports unavailable.
type Options struct {
	Inferencer  inference.Inferencer
	Embedder    embeddings.Embedder
	Queue       queue.Queue
	ProjectsDir string
	// PageDelay spaces pages on full-book runs; zero means the default.
	PageDelay time.Duration
	// EmbedDim sizes new vector indexes before the first embedding arrives.
	EmbedDim int
}

type Server struct {
	Echo        *echo.Echo
	Inferencer  inference.Inferencer
	Embedder    embeddings.Embedder
	Queue       queue.Queue
	Author      *author.Author
	Engine      *writer.Engine
	Outliner    *outline.Generator
	ProjectsDir string
	PageDelay   time.Duration
	EmbedDim    int
	Ctx         context.Context

	Covers   flight.Cache[string, []byte]
	sessions *utils.SyncMap[map[string]*session, string, *session]
}

// session is the single live handle for one project. Its lock serializes
// every operation that touches the project.
type session struct {
	mu      sync.Mutex
	project *book.Project
	indexer *semantic.Indexer
}

func NewServer(ctx context.Context, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:        e,
		Inferencer:  opts.Inferencer,
		Embedder:    opts.Embedder,
		Queue:       opts.Queue,
		Author:      author.New(opts.Inferencer),
		Engine:      writer.NewEngine(opts.Inferencer),
		Outliner:    outline.NewGenerator(opts.Inferencer),
		ProjectsDir: opts.ProjectsDir,
		PageDelay:   opts.PageDelay,
		EmbedDim:    opts.EmbedDim,
		Ctx:         ctx,
		sessions:    utils.NewSyncMap[map[string]*session](),
	}
	s.Covers = flight.NewCache(s.renderCover)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	api := s.Echo.Group("/api")
	api.GET("/styles", s.handleGetStyles)
	api.GET("/projects", s.handleGetProjects)
	api.POST("/projects", s.handlePostProjects)

	project := api.Group("/projects/:name")
	project.GET("/status", s.handleGetStatus)
	project.GET("/manuscript", s.handleGetManuscript)
	project.GET("/outline", s.handleGetOutline)
	project.POST("/outline", s.handlePostOutline)
	project.POST("/page", s.handlePostPage)
	project.POST("/write", s.handlePostWrite)
	project.POST("/blurb", s.handlePostBlurb)
	project.GET("/cover", s.handleGetCover)
	project.POST("/cover", s.handlePostCover)
	project.POST("/export", s.handlePostExport)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}

// acquire returns the project's session with its lock held. The caller must
// unlock it. The first acquire opens the project and builds its semantic
// indexer, which degrades to disabled when no embedder is reachable.
func (s *Server) acquire(name string) (*session, error) {
	key := validate.SanitizeName(name)
	sess := s.sessions.LoadOrStore(key, func() *session { return new(session) })

	sess.mu.Lock()
	if sess.project == nil {
		p, err := book.Open(s.ProjectsDir, name)
		if err != nil {
			sess.mu.Unlock()
			return nil, err
		}
		sess.project = p
		sess.indexer = semantic.New(s.Ctx, s.Embedder, p.VectorsPath(), p.ChunksPath(), semantic.Options{Dim: s.EmbedDim})
	}
	return sess, nil
}

// httpError maps domain failures onto status codes: bad input 400, missing
// project 404, state conflicts 409, malformed model output 502, exhausted
// or rate-limited backends 503.
func httpError(err error) error {
	var (
		vErr      *validate.Error
		parseErr  *outline.ParseError
		structErr *outline.StructureError
		emptyErr  *writer.EmptyPageError
		rateErr   *inference.RateLimitError
		transErr  *inference.TransientError
	)
	switch {
	case errors.Is(err, book.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, book.ErrNoOutline), errors.Is(err, outline.ErrOutlineExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &vErr):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &parseErr), errors.As(err, &structErr), errors.As(err, &emptyErr):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.As(err, &rateErr), errors.As(err, &transErr):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
