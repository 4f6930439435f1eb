// Package routes
package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stavrou/partwatch/internal/monitor"
)

func NewMux(mon *monitor.Monitor, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	app := New(mon, logger)

	// health check
	mux.HandleFunc("/healthz", healthHandler)

	// metrics
	mux.Handle("/metrics", promhttp.Handler())

	// current leader/topic/partition snapshot
	mux.HandleFunc("/snapshot", app.snapshotHandler)

	return mux
}
