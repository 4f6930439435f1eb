package routes

import (
	"net/http"
	"time"

	"github.com/stavrou/partwatch/internal/metrics"
	"github.com/stavrou/partwatch/pkg/utils"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"state": "healthy",
	})
}

func (app *App) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snap := app.Monitor.Snapshot()
	if err := utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"count":      snap.Len(),
		"partitions": snap.List(),
	}); err != nil {
		app.logger.Error().Err(err).Msg("failed to write snapshot response")
		return
	}

	metrics.HttpRequestLatencySeconds.
		WithLabelValues("/snapshot").
		Observe(time.Since(start).Seconds())
}
