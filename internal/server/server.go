package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alejandrodnm/eurokeys/internal/adapters/charts"
	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// Analyzer es lo que el servidor necesita del servicio de análisis.
type Analyzer interface {
	Analysis(ctx context.Context) (domain.Dashboard, error)
	Update(ctx context.Context) (int, error)
}

// Server expone el dashboard web y la API JSON.
type Server struct {
	engine *gin.Engine
	svc    Analyzer
	webDir string
	now    func() time.Time
}

// New crea el servidor con sus rutas. debug activa el modo debug de gin.
func New(svc Analyzer, webDir string, debug bool) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		svc:    svc,
		webDir: webDir,
		now:    time.Now,
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.routes()
	return s
}

// Handler devuelve el http.Handler para montar en un http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/", s.index)
	s.engine.Static("/css", filepath.Join(s.webDir, "css"))
	s.engine.Static("/js", filepath.Join(s.webDir, "js"))
	s.engine.Static("/images", filepath.Join(s.webDir, "images"))

	api := s.engine.Group("/api")
	api.GET("/analysis", s.analysis)
	api.GET("/update", s.update)
	api.GET("/health", s.health)

	s.engine.GET("/charts/frequencies", s.frequencyChart)
}

func (s *Server) index(c *gin.Context) {
	c.File(filepath.Join(s.webDir, "index.html"))
}

func (s *Server) analysis(c *gin.Context) {
	d, err := s.svc.Analysis(c.Request.Context())
	if err != nil {
		slog.Error("analysis request failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) update(c *gin.Context) {
	total, err := s.svc.Update(c.Request.Context())
	if err != nil {
		slog.Error("update request failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    fmt.Sprintf("Data updated: %d draws processed", total),
		"totalDraws": total,
		"timestamp":  s.now().Format(time.RFC3339),
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) frequencyChart(c *gin.Context) {
	d, err := s.svc.Analysis(c.Request.Context())
	if err != nil {
		slog.Error("chart request failed", "err", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := charts.RenderFrequencies(c.Writer, d); err != nil {
		slog.Error("chart render failed", "err", err)
	}
}

// requestLogger escribe una línea de slog por request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	}
}
