package handlers

import (
	"net/http"
	"strconv"

	"deptsite/internal/content"
	"deptsite/internal/game"
	"deptsite/internal/models"
)

type gamePage struct {
	Copy       content.GameCopy
	Available  bool
	Scenarios  []models.Scenario
	SelectedID string
	Snapshot   game.Snapshot
	Ranking    *game.Ranking
	InMission  bool
	Finished   bool
}

func (a *App) buildGamePage(r *http.Request, v *visitorState) gamePage {
	c := v.controller
	snap := v.view.Snapshot
	return gamePage{
		Copy:       a.site.GameCopy(r.Context()),
		Available:  c.Available(),
		Scenarios:  c.Catalog().Scenarios,
		SelectedID: c.ScenarioID(),
		Snapshot:   snap,
		Ranking:    v.view.Ranking,
		InMission:  snap.State == game.InMission,
		Finished:   snap.State == game.Finished,
	}
}

// Game serves the careers game page
func (a *App) Game(w http.ResponseWriter, r *http.Request) {
	v := a.getVisitor(r)
	p := a.buildGamePage(r, v)
	a.render(w, "game.html", pageData{Title: p.Copy.Hero.Title, Active: "game", Page: p})
}

// respondGame finishes a game command: htmx requests get the game panel
// back, plain form posts are redirected to the game page.
func (a *App) respondGame(w http.ResponseWriter, r *http.Request, v *visitorState) {
	if r.Header.Get("HX-Request") == "true" {
		a.execute(w, "game.html", "game_panel", a.buildGamePage(r, v))
		return
	}
	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

// SelectScenario handles POST /game/scenario
func (a *App) SelectScenario(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	v := a.getVisitor(r)
	v.controller.SelectScenario(r.FormValue("scenario"))
	a.respondGame(w, r, v)
}

// StartGame handles POST /game/start
func (a *App) StartGame(w http.ResponseWriter, r *http.Request) {
	v := a.getVisitor(r)
	v.controller.Start()
	a.respondGame(w, r, v)
}

// RestartGame handles POST /game/restart
func (a *App) RestartGame(w http.ResponseWriter, r *http.Request) {
	v := a.getVisitor(r)
	v.controller.Restart()
	a.respondGame(w, r, v)
}

// Choose handles POST /game/choose. The option field is the option's
// position within the mission. A mission that is not the current one, or an
// index past its options, is ignored.
func (a *App) Choose(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	mission := r.FormValue("mission")
	option, err := strconv.Atoi(r.FormValue("option"))
	if mission == "" || err != nil {
		http.Error(w, "mission and option index are required", http.StatusBadRequest)
		return
	}
	v := a.getVisitor(r)
	v.controller.Choose(mission, option)
	a.respondGame(w, r, v)
}
