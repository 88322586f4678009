package handlers

import "net/http"

// Health reports liveness. It says nothing about broker connectivity; the
// consumer loop logs and retries its own failures.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
