package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"deptsite/internal/content"
	"deptsite/internal/dataset"
	"deptsite/internal/game"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// unsafeHrefRe matches href/src attributes with dangerous URL schemes in goldmark output.
var unsafeHrefRe = regexp.MustCompile(`(?i)(href|src)="(?:javascript|vbscript|data):[^"]*"`)

const sessionCookieName = "deptsite_session"

var pageNames = []string{
	"home.html",
	"introduction.html",
	"programmes.html",
	"faculty.html",
	"research.html",
	"news.html",
	"gallery.html",
	"projects.html",
	"careers.html",
	"game.html",
}

// App holds the application state and dependencies
type App struct {
	PageTemplates  map[string]*template.Template
	FuncMap        template.FuncMap
	site           *content.Site
	cache          *dataset.Cache
	log            *slog.Logger
	sessionIdle    time.Duration
	sessions       sync.Map // map[string]*visitorState
	sessionMutexes sync.Map // map[string]*sync.Mutex
}

// NewApp creates a new app with templates compiled at startup. Visitors idle
// for longer than sessionIdle are dropped by StartEviction.
func NewApp(templateFS fs.FS, cache *dataset.Cache, sessionIdle time.Duration) (*App, error) {
	md := goldmark.New(
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)

	funcMap := template.FuncMap{
		"add1": func(i int) int { return i + 1 },
		"join": strings.Join,
		"renderMarkdown": func(s string) template.HTML {
			var buf bytes.Buffer
			if err := md.Convert([]byte(s), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(s))
			}
			return template.HTML(unsafeHrefRe.ReplaceAllString(buf.String(), `$1="#"`))
		},
		"summaryLine": game.SummaryLine,
		"percent":     func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	}

	// Pre-compile all page templates at startup
	pages := map[string]*template.Template{}
	for _, page := range pageNames {
		tmpl, err := compilePageTemplate(templateFS, funcMap, page)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", page, err)
		}
		pages[page] = tmpl
	}

	if sessionIdle <= 0 {
		sessionIdle = time.Hour
	}
	return &App{
		PageTemplates: pages,
		FuncMap:       funcMap,
		site:          content.NewSite(cache),
		cache:         cache,
		log:           slog.Default(),
		sessionIdle:   sessionIdle,
	}, nil
}

// compilePageTemplate parses layout + a specific page template + partials into one set
func compilePageTemplate(templateFS fs.FS, funcMap template.FuncMap, page string) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		return nil, err
	}
	partials, _ := fs.Glob(templateFS, "templates/partials/*.html")
	if len(partials) > 0 {
		if _, err := tmpl.ParseFS(templateFS, "templates/partials/*.html"); err != nil {
			return nil, fmt.Errorf("parse partials: %w", err)
		}
	}
	return tmpl, nil
}

// pageData is what layout.html renders; Page is the page's own model.
type pageData struct {
	Title  string
	Active string
	Page   any
}

func (a *App) render(w http.ResponseWriter, page string, data pageData) {
	a.execute(w, page, "layout.html", data)
}

func (a *App) execute(w http.ResponseWriter, page, tmplName string, data any) {
	tmpl, ok := a.PageTemplates[page]
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, tmplName, data); err != nil {
		a.log.Error("render failed", "template", page, "name", tmplName, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// getVisitor retrieves the visitor for this request, creating one if needed.
// Must be called from a handler wrapped with WithSessionLock.
func (a *App) getVisitor(r *http.Request) *visitorState {
	sid := r.Context().Value(sessionIDKey).(string)
	if val, ok := a.sessions.Load(sid); ok {
		v := val.(*visitorState)
		v.Touch()
		if !v.controller.Available() {
			v.reload(a.catalog(r.Context()))
		}
		return v
	}
	v := newVisitorState(a.catalog(r.Context()))
	a.sessions.Store(sid, v)
	return v
}

func (a *App) catalog(ctx context.Context) game.Catalog {
	return game.LoadCatalog(ctx, a.cache)
}

func (a *App) getSessionMutex(sessionID string) *sync.Mutex {
	v, _ := a.sessionMutexes.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (a *App) getSessionID(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}
	return ""
}

type contextKey string

const sessionIDKey contextKey = "sessionID"

// WithSessionLock returns middleware that acquires the session mutex for the
// duration of the request, creating a session ID and cookie if none exists.
func (a *App) WithSessionLock(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := a.getSessionID(r)
		if sid == "" {
			sid = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   30 * 24 * 60 * 60,
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		mu := a.getSessionMutex(sid)
		mu.Lock()
		defer mu.Unlock()
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next(w, r.WithContext(ctx))
	}
}

// StartEviction starts a background goroutine that evicts idle visitors
func (a *App) StartEviction(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.evictSessions(time.Now())
			}
		}
	}()
}

func (a *App) evictSessions(now time.Time) int {
	evicted := 0
	a.sessions.Range(func(key, value any) bool {
		v := value.(*visitorState)
		if now.Sub(v.LastAccessed()) <= a.sessionIdle {
			return true
		}
		mu := a.getSessionMutex(key.(string))
		if !mu.TryLock() {
			return true // in use, skip
		}
		a.sessions.Delete(key)
		a.sessionMutexes.Delete(key)
		mu.Unlock()
		evicted++
		a.log.Info("evicted idle session", "session", key)
		return true
	})
	return evicted
}
