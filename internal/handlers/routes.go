package handlers

import (
	"io/fs"
	"net/http"
)

// Routes registers every page, game command and API endpoint. static is
// served under /static/.
func (a *App) Routes(static fs.FS) http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", a.Home)
	mux.HandleFunc("GET /introduction", a.Introduction)
	mux.HandleFunc("GET /programmes", a.Programmes)
	mux.HandleFunc("GET /faculty", a.Faculty)
	mux.HandleFunc("GET /research", a.Research)
	mux.HandleFunc("GET /news", a.News)
	mux.HandleFunc("GET /gallery", a.Gallery)
	mux.HandleFunc("GET /projects", a.Projects)
	mux.HandleFunc("GET /careers", a.Careers)

	// Careers game
	mux.HandleFunc("GET /game", a.WithSessionLock(a.Game))
	mux.HandleFunc("POST /game/scenario", a.WithSessionLock(a.SelectScenario))
	mux.HandleFunc("POST /game/start", a.WithSessionLock(a.StartGame))
	mux.HandleFunc("POST /game/restart", a.WithSessionLock(a.RestartGame))
	mux.HandleFunc("POST /game/choose", a.WithSessionLock(a.Choose))

	// Cache admin API (JSON)
	mux.HandleFunc("GET /api/cache", a.CacheList)
	mux.HandleFunc("DELETE /api/cache", a.CacheDelete)

	if static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	}
	return a.accessLog(mux)
}
