// Package server exposes scoring, results and the AI study tools as a JSON
// HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/laban/internal/config"
	"github.com/abhisek/laban/internal/guidance"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/study"
)

// Deps are the services the API is built on. Study and Guidance may be
// built around a nil provider; their endpoints then answer 503.
type Deps struct {
	Results  store.ResultRepo
	Study    *study.Service
	Guidance *guidance.Analyzer

	// Now stamps graded results. Defaults to time.Now.
	Now func() time.Time
}

// Server is the HTTP API.
type Server struct {
	engine *gin.Engine
	deps   Deps
	chats  *chatSessions
}

// New builds the router. cfg supplies CORS origins and the gin mode.
func New(deps Deps, cfg config.Config) (*Server, error) {
	if deps.Results == nil {
		return nil, errors.New("server: result repository is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Study == nil {
		deps.Study = study.NewService(nil, study.DefaultConfig(), nil)
	}
	if deps.Guidance == nil {
		deps.Guidance = guidance.NewAnalyzer(nil, guidance.DefaultConfig(), nil)
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		engine: gin.New(),
		deps:   deps,
		chats:  newChatSessions(maxChatSessions),
	}
	s.engine.Use(gin.Recovery(), requestLogger(), metricsMiddleware(), cors.New(corsConfig(cfg)))
	s.routes()
	return s, nil
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", studentHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	return c
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/instruments", s.listInstruments)
		api.GET("/instruments/:name/questions", s.instrumentQuestions)
		api.POST("/instruments/:name/score", s.scoreInstrument)
		api.GET("/results", s.listResults)
		api.GET("/results/:id", s.getResult)
		api.POST("/match", s.match)

		api.POST("/study/flashcards", s.flashcards)
		api.POST("/study/writing", s.writing)
		api.POST("/study/homework", s.homework)
		api.POST("/study/mindmap", s.mindmap)
		api.POST("/study/lesson", s.lesson)
		api.POST("/study/lesson/grade", s.gradeLesson)
		api.POST("/study/speaking", s.speaking)
		api.POST("/chat", s.chat)
		api.POST("/guidance", s.guidance)
	}
}

// Handler returns the router for use with httptest or a custom server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
