package routes

import (
	"github.com/rs/zerolog"

	"github.com/stavrou/partwatch/internal/monitor"
)

type App struct {
	Monitor *monitor.Monitor
	logger  zerolog.Logger
}

func New(mon *monitor.Monitor, logger zerolog.Logger) *App {
	return &App{
		mon,
		logger,
	}
}
