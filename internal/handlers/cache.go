package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"
)

var datasetNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type cacheEntryJSON struct {
	Dataset    string    `json:"dataset"`
	FetchedAt  time.Time `json:"fetched_at"`
	AgeSeconds int64     `json:"age_seconds"`
	Rows       int       `json:"rows"`
	Stale      bool      `json:"stale"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// CacheList handles GET /api/cache
func (a *App) CacheList(w http.ResponseWriter, r *http.Request) {
	entries, err := a.cache.Entries()
	if err != nil {
		a.log.Error("list cache failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to list cache")
		return
	}
	now := time.Now()
	out := make([]cacheEntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, cacheEntryJSON{
			Dataset:    e.Name,
			FetchedAt:  e.FetchedAt.UTC(),
			AgeSeconds: int64(e.Age(now) / time.Second),
			Rows:       len(e.Rows),
			Stale:      a.cache.Stale(e),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// CacheDelete handles DELETE /api/cache. With ?dataset= it drops one
// entry, otherwise it clears every cached dataset.
func (a *App) CacheDelete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("dataset")
	if name == "" {
		n, err := a.cache.Clear()
		if err != nil {
			a.log.Error("clear cache failed", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to clear cache")
			return
		}
		a.log.Info("cache cleared", "removed", n)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "removed": n})
		return
	}

	if !datasetNameRe.MatchString(name) {
		writeJSONError(w, http.StatusBadRequest, "Invalid dataset name")
		return
	}
	if err := a.cache.Invalidate(name); err != nil {
		a.log.Error("invalidate cache failed", "dataset", name, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to invalidate dataset")
		return
	}
	a.log.Info("cache invalidated", "dataset", name)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
