// Package web provides the browser-based conversion UI: upload a
// ChatGPT export ZIP, preview conversations, download the converted
// Markdown bundle.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/chatmd/chatmd/internal"
)

// Config holds server bind options.
type Config struct {
	Host string
	Port int
}

// Server exposes the conversion pipeline over HTTP. All session state
// is in memory; a restart drops pending uploads.
type Server struct {
	echo   *echo.Echo
	store  *Store
	config Config
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(cfg Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			internal.LogDebug("http %s %s -> %d (%s)",
				c.Request().Method, c.Request().RequestURI,
				c.Response().Status, time.Since(start))
			return err
		}
	})

	s := &Server{
		echo:   e,
		store:  NewStore(),
		config: cfg,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	api := s.echo.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/preview/:session/:conversation", s.handlePreview)
	api.POST("/convert", s.handleConvert)
	api.GET("/download/:session", s.handleDownload)
}

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	SessionID     string                 `json:"session_id"`
	Statistics    internal.StatisticsDoc `json:"statistics"`
	Conversations []ConversationMetaDoc  `json:"conversations"`
}

// ConversationMetaDoc is the wire form of one conversation's metadata.
type ConversationMetaDoc struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	CreatedAt    *string  `json:"created_at"`
	UpdatedAt    *string  `json:"updated_at"`
	MessageCount int      `json:"message_count"`
	ModelSlugs   []string `json:"model_slugs"`
}

// ConvertRequest is the body of POST /api/convert.
type ConvertRequest struct {
	SessionID          string   `json:"session_id"`
	ConversationIDs    []string `json:"conversation_ids"`
	Organize           string   `json:"organize"`
	IncludeFrontmatter *bool    `json:"include_frontmatter"`
}

// PreviewResponse is returned by GET /api/preview.
type PreviewResponse struct {
	Markdown string `json:"markdown"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".zip") {
		return echo.NewHTTPError(http.StatusBadRequest, "please upload a .zip file")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}

	session, err := s.store.Create(data)
	if err != nil {
		var formatErr *internal.FormatError
		if errors.As(err, &formatErr) {
			return echo.NewHTTPError(http.StatusBadRequest, formatErr.Error())
		}
		internal.LogError("upload processing failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to process file")
	}

	metas := session.Metadata()
	docs := make([]ConversationMetaDoc, 0, len(metas))
	for _, meta := range metas {
		docs = append(docs, ConversationMetaDoc{
			ID:           meta.ID,
			Title:        meta.Title,
			CreatedAt:    isoTime(meta.CreatedAt),
			UpdatedAt:    isoTime(meta.UpdatedAt),
			MessageCount: meta.MessageCount,
			ModelSlugs:   meta.ModelSlugs,
		})
	}

	return c.JSON(http.StatusOK, UploadResponse{
		SessionID:     session.ID,
		Statistics:    session.Statistics().Doc(),
		Conversations: docs,
	})
}

func (s *Server) handlePreview(c echo.Context) error {
	session, ok := s.store.Get(c.Param("session"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session expired or not found")
	}

	markdown, ok := session.Preview(c.Param("conversation"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "conversation not found")
	}
	return c.JSON(http.StatusOK, PreviewResponse{Markdown: markdown})
}

func (s *Server) handleConvert(c echo.Context) error {
	var req ConvertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session_id")
	}

	session, ok := s.store.Get(req.SessionID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session expired or not found")
	}

	frontmatter := true
	if req.IncludeFrontmatter != nil {
		frontmatter = *req.IncludeFrontmatter
	}

	mode := internal.ParseOrganizeMode(req.Organize)
	if err := session.Convert(req.ConversationIDs, mode, frontmatter); err != nil {
		internal.LogError("conversion failed for session %s: %v", session.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "conversion failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ready":      true,
		"session_id": session.ID,
	})
}

func (s *Server) handleDownload(c echo.Context) error {
	session, ok := s.store.Get(c.Param("session"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session expired or not found")
	}

	data, err := session.Result()
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="chatgpt_to_claude_export.zip"`)
	return c.Blob(http.StatusOK, "application/zip", data)
}

// Start begins serving; it blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	internal.LogInfo("starting http server on %s", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	internal.LogInfo("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
