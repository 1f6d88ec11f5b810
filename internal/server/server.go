// Package server exposes the builder over HTTP: template listing,
// project CRUD backed by the SQLite store, validation, and scene
// assembly for the renderer.
package server

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/smartmall/builder/internal/config"
	"github.com/smartmall/builder/internal/metrics"
	"github.com/smartmall/builder/internal/store"
	"github.com/smartmall/builder/pkg/template"
)

// Server wires the HTTP surface to the project store.
type Server struct {
	app     *fiber.App
	store   *store.Store
	cfg     *config.Config
	catalog []template.Template
}

// New builds the server with its routes registered. Extra templates
// from the configured catalog file are appended to the built-ins.
func New(cfg *config.Config, st *store.Store) (*Server, error) {
	catalog := template.Catalog()
	if cfg.TemplateCatalog != "" {
		extra, err := template.LoadCatalog(cfg.TemplateCatalog)
		if err != nil {
			return nil, fmt.Errorf("loading template catalog: %w", err)
		}
		catalog = append(catalog, extra...)
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
			AppName:      "Mall Builder",
		}),
		store:   st,
		cfg:     cfg,
		catalog: catalog,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
	}))
	s.app.Use(func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		metrics.RequestDurationMs.WithLabelValues(c.Route().Path).
			Observe(float64(time.Since(start).Milliseconds()))
		return err
	})

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	s.app.Get("/api/templates", s.handleListTemplates)

	s.app.Get("/api/projects", s.handleListProjects)
	s.app.Post("/api/projects", s.handleCreateProject)
	s.app.Get("/api/projects/:id", s.handleGetProject)
	s.app.Put("/api/projects/:id", s.handlePutProject)
	s.app.Delete("/api/projects/:id", s.handleDeleteProject)

	s.app.Post("/api/projects/:id/validate", s.handleValidateProject)
	s.app.Get("/api/projects/:id/scene", s.handleSceneProject)
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen starts serving on the configured port and blocks.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	log.Printf("Mall Builder server starting on %s (env: %s)", addr, s.cfg.Environment)
	return s.app.Listen(addr)
}
