package handlers

import "net/http"

// StatsSummary reports the processing counters since startup.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	snap := a.Stats.Snapshot()
	a.json(w, http.StatusOK, map[string]any{
		"consumed":  snap.Consumed,
		"published": snap.Published,
		"failed":    snap.Failed,
	})
}
