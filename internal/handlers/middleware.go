package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// recordingWriter remembers the status and body size of a response.
type recordingWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *recordingWriter) WriteHeader(status int) {
	if w.status != 0 {
		return
	}
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

func (w *recordingWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// routeArea groups a path by the part of the site it belongs to.
func routeArea(path string) string {
	switch {
	case path == "/game" || strings.HasPrefix(path, "/game/"):
		return "game"
	case strings.HasPrefix(path, "/api/"):
		return "api"
	case strings.HasPrefix(path, "/static/"):
		return "static"
	}
	return "page"
}

// accessLog writes one structured line per request. Game requests also carry
// the visitor's game state after the handler ran. Successful static file hits
// log at debug so page traffic stays readable.
func (a *App) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &recordingWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		area := routeArea(r.URL.Path)
		status := rw.code()
		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("area", area),
			slog.Int("status", status),
			slog.Int("bytes", rw.written),
			slog.Duration("duration", time.Since(start)),
		}
		if r.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", r.URL.RawQuery))
		}
		if r.Header.Get("HX-Request") == "true" {
			attrs = append(attrs, slog.Bool("htmx", true))
		}
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			attrs = append(attrs, slog.String("visitor", shortID(cookie.Value)))
			if area == "game" {
				if v, ok := a.sessions.Load(cookie.Value); ok {
					mu := a.getSessionMutex(cookie.Value)
					mu.Lock()
					state := v.(*visitorState).controller.Snapshot().State
					mu.Unlock()
					attrs = append(attrs, slog.String("game_state", state.String()))
				}
			}
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case area == "static" && status < 400:
			level = slog.LevelDebug
		}
		a.log.LogAttrs(r.Context(), level, "request", attrs...)
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}
