package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smartmall/builder/internal/config"
	"github.com/smartmall/builder/internal/store"
	"github.com/smartmall/builder/pkg/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{Port: "0", Environment: "test", ReadTimeout: 5, WriteTimeout: 5}
	s, err := New(cfg, st)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if code := doJSON(t, s, http.MethodGet, "/health/live", nil, nil); code != http.StatusOK {
		t.Errorf("live = %d", code)
	}
	if code := doJSON(t, s, http.MethodGet, "/health/ready", nil, nil); code != http.StatusOK {
		t.Errorf("ready = %d", code)
	}
}

func TestListTemplates(t *testing.T) {
	s := newTestServer(t)
	var tpls []map[string]any
	if code := doJSON(t, s, http.MethodGet, "/api/templates", nil, &tpls); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(tpls) != 4 {
		t.Errorf("got %d templates, want 4", len(tpls))
	}
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestServer(t)

	var created model.MallProject
	code := doJSON(t, s, http.MethodPost, "/api/projects",
		map[string]string{"name": "API Mall", "templateId": "l-shape"}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	if created.ID == "" || created.Name != "API Mall" {
		t.Fatalf("unexpected project: %+v", created)
	}

	var fetched model.MallProject
	if code := doJSON(t, s, http.MethodGet, "/api/projects/"+created.ID, nil, &fetched); code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	if fetched.ID != created.ID {
		t.Errorf("fetched wrong project: %s", fetched.ID)
	}

	var infos []store.ProjectInfo
	if code := doJSON(t, s, http.MethodGet, "/api/projects", nil, &infos); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(infos) != 1 {
		t.Errorf("got %d projects, want 1", len(infos))
	}

	var report map[string]any
	if code := doJSON(t, s, http.MethodPost, "/api/projects/"+created.ID+"/validate", nil, &report); code != http.StatusOK {
		t.Fatalf("validate status = %d", code)
	}
	if report["valid"] != true {
		t.Errorf("fresh project should validate: %+v", report)
	}

	var graph map[string]any
	if code := doJSON(t, s, http.MethodGet, "/api/projects/"+created.ID+"/scene", nil, &graph); code != http.StatusOK {
		t.Fatalf("scene status = %d", code)
	}
	if graph["entities"] == nil {
		t.Error("scene has no entities")
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+created.ID, nil)
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	if code := doJSON(t, s, http.MethodGet, "/api/projects/"+created.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("get after delete = %d", code)
	}
}

func TestCreateProjectRejectsBadRequests(t *testing.T) {
	s := newTestServer(t)
	if code := doJSON(t, s, http.MethodPost, "/api/projects", map[string]string{}, nil); code != http.StatusBadRequest {
		t.Errorf("missing name = %d", code)
	}
	if code := doJSON(t, s, http.MethodPost, "/api/projects",
		map[string]string{"name": "X", "templateId": "bogus"}, nil); code != http.StatusBadRequest {
		t.Errorf("unknown template = %d", code)
	}
}

func TestPutProjectRoundTrip(t *testing.T) {
	s := newTestServer(t)

	var created model.MallProject
	if code := doJSON(t, s, http.MethodPost, "/api/projects",
		map[string]string{"name": "Edit Mall"}, &created); code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}

	// Re-upload the export with a bumped revision.
	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+created.ID, nil)
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var p model.MallProject
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}

	if code := doJSON(t, s, http.MethodPut, "/api/projects/mismatch", exportDoc(t, &p), nil); code != http.StatusBadRequest {
		t.Errorf("mismatched id = %d", code)
	}
}

// exportDoc builds the versioned document body for a PUT.
func exportDoc(t *testing.T, p *model.MallProject) map[string]any {
	t.Helper()
	doc := map[string]any{
		"version": 1,
		"mall": map[string]any{
			"id": p.ID, "name": p.Name, "outline": p.Outline,
			"gridSize": p.GridSize, "unit": p.Unit,
			"defaultFloorHeight": p.DefaultFloorHeight, "revision": p.Revision,
			"createdAt": p.CreatedAt, "updatedAt": p.UpdatedAt,
		},
		"floors":      p.Floors,
		"connections": p.Connections,
	}
	return doc
}
