package handlers

import (
	"encoding/json"
	"net/http"

	"organ-annotator/internal/infra"
	"organ-annotator/internal/pipeline"
)

// App aggregates the dependencies of the operational endpoints.
type App struct {
	Logger infra.Logger
	Stats  *pipeline.Stats
}

func NewApp(logger infra.Logger, stats *pipeline.Stats) *App {
	return &App{Logger: logger, Stats: stats}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
