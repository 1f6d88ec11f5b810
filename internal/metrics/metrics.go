// Package metrics registers the Prometheus collectors for the builder
// server and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProjectsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mallbuilder_projects_created_total",
		Help: "Total number of projects created",
	})
	ProjectSavesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mallbuilder_project_saves_total",
		Help: "Total number of project save operations",
	})
	ValidationRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mallbuilder_validation_runs_total",
		Help: "Total number of full project validations",
	})
	ValidationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mallbuilder_validation_failures_total",
		Help: "Total number of validations that reported errors",
	})
	SceneAssembliesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mallbuilder_scene_assemblies_total",
		Help: "Total number of scene graph assemblies",
	})
	OverlapFindingsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mallbuilder_overlap_findings_total",
		Help: "Total number of area overlap findings reported by validation",
	})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mallbuilder_request_duration_ms",
		Help:    "API request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(ProjectsCreatedTotal)
	prometheus.MustRegister(ProjectSavesTotal)
	prometheus.MustRegister(ValidationRunsTotal)
	prometheus.MustRegister(ValidationFailuresTotal)
	prometheus.MustRegister(SceneAssembliesTotal)
	prometheus.MustRegister(OverlapFindingsTotal)
	prometheus.MustRegister(RequestDurationMs)
}

// Handler returns the scrape endpoint for the registered collectors.
func Handler() http.Handler { return promhttp.Handler() }
