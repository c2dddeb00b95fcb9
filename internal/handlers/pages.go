package handlers

import (
	"net/http"

	"deptsite/internal/content"
)

// Home serves the landing page; ?group= filters testimonials.
func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	p := a.site.Home(r.Context(), r.URL.Query().Get("group"))
	a.render(w, "home.html", pageData{Title: p.Hero.Title, Active: "home", Page: p})
}

func (a *App) Introduction(w http.ResponseWriter, r *http.Request) {
	p := a.site.Introduction(r.Context())
	a.render(w, "introduction.html", pageData{Title: p.Hero.Title, Active: "introduction", Page: p})
}

func (a *App) Programmes(w http.ResponseWriter, r *http.Request) {
	p := a.site.Programmes(r.Context())
	a.render(w, "programmes.html", pageData{Title: p.Hero.Title, Active: "programmes", Page: p})
}

// Faculty serves staff profiles; ?area= filters by research area.
func (a *App) Faculty(w http.ResponseWriter, r *http.Request) {
	p := a.site.Faculty(r.Context(), r.URL.Query().Get("area"))
	a.render(w, "faculty.html", pageData{Title: p.Hero.Title, Active: "faculty", Page: p})
}

func (a *App) Research(w http.ResponseWriter, r *http.Request) {
	p := a.site.Research(r.Context())
	a.render(w, "research.html", pageData{Title: p.Hero.Title, Active: "research", Page: p})
}

// News serves the news grid; ?category= and ?year= filter it.
func (a *App) News(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := a.site.News(r.Context(), q.Get("category"), q.Get("year"))
	a.render(w, "news.html", pageData{Title: p.Hero.Title, Active: "news", Page: p})
}

func (a *App) Gallery(w http.ResponseWriter, r *http.Request) {
	p := a.site.Gallery(r.Context(), r.URL.Query().Get("theme"))
	a.render(w, "gallery.html", pageData{Title: p.Hero.Title, Active: "gallery", Page: p})
}

// Projects serves student projects; ?level=, ?theme= and ?type= combine.
func (a *App) Projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := a.site.Projects(r.Context(), content.ProjectFilter{
		Level: q.Get("level"),
		Theme: q.Get("theme"),
		Type:  q.Get("type"),
	})
	a.render(w, "projects.html", pageData{Title: p.Hero.Title, Active: "projects", Page: p})
}

// Careers serves the pathway map; ?detail= focuses a pathway.
func (a *App) Careers(w http.ResponseWriter, r *http.Request) {
	p := a.site.Careers(r.Context(), r.URL.Query().Get("detail"))
	a.render(w, "careers.html", pageData{Title: p.Hero.Title, Active: "careers", Page: p})
}
