package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/smartmall/builder/internal/metrics"
	"github.com/smartmall/builder/internal/store"
	"github.com/smartmall/builder/pkg/codec"
	"github.com/smartmall/builder/pkg/scene"
	"github.com/smartmall/builder/pkg/template"
	"github.com/smartmall/builder/pkg/validation"
)

func (s *Server) handleListTemplates(c fiber.Ctx) error {
	return c.JSON(s.catalog)
}

func (s *Server) handleListProjects(c fiber.Ctx) error {
	infos, err := s.store.List(context.Background())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "listing projects failed"})
	}
	return c.JSON(infos)
}

type createProjectRequest struct {
	Name       string `json:"name"`
	TemplateID string `json:"templateId"`
}

func (s *Server) handleCreateProject(c fiber.Ctx) error {
	var req createProjectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}
	if req.TemplateID == "" {
		req.TemplateID = "rectangle"
	}

	tpl := s.templateByID(req.TemplateID)
	if tpl == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown template"})
	}
	m, err := tpl.Instantiate(req.Name)
	if err != nil {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	p := m.Project()
	if err := s.store.Save(context.Background(), p); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "saving project failed"})
	}
	metrics.ProjectsCreatedTotal.Inc()
	metrics.ProjectSavesTotal.Inc()

	return c.Status(http.StatusCreated).JSON(p)
}

func (s *Server) handleGetProject(c fiber.Ctx) error {
	p, err := s.store.Get(context.Background(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// handlePutProject replaces a stored project with the document in the
// request body. The body is the same format Export writes, so a client
// can round-trip a file through the API.
func (s *Server) handlePutProject(c fiber.Ctx) error {
	p, err := codec.Import(c.Body())
	if err != nil {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if p.ID != c.Params("id") {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "document id does not match URL"})
	}
	if err := s.store.Save(context.Background(), p); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "saving project failed"})
	}
	metrics.ProjectSavesTotal.Inc()
	return c.JSON(p)
}

func (s *Server) handleDeleteProject(c fiber.Ctx) error {
	if err := s.store.Delete(context.Background(), c.Params("id")); err != nil {
		return projectError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) handleValidateProject(c fiber.Ctx) error {
	p, err := s.store.Get(context.Background(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}

	report := validation.ValidateProject(p)
	metrics.ValidationRunsTotal.Inc()
	if !report.Valid {
		metrics.ValidationFailuresTotal.Inc()
	}
	for _, e := range report.Errors {
		if e.Level == validation.LevelOverlap {
			metrics.OverlapFindingsTotal.Inc()
		}
	}
	return c.JSON(report)
}

func (s *Server) handleSceneProject(c fiber.Ctx) error {
	p, err := s.store.Get(context.Background(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}

	g, err := scene.Assemble(p)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	metrics.SceneAssembliesTotal.Inc()
	return c.JSON(g)
}

func (s *Server) templateByID(id string) *template.Template {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i]
		}
	}
	return nil
}

func projectError(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
	}
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
