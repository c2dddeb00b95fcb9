package game

import "deptsite/internal/models"

// Renderer receives state updates from a Controller. OnFinished is called
// once per completed playthrough, after the final OnStateChange.
type Renderer interface {
	OnStateChange(Snapshot)
	OnFinished(Ranking)
}

type nopRenderer struct{}

func (nopRenderer) OnStateChange(Snapshot) {}
func (nopRenderer) OnFinished(Ranking)     {}

// Controller drives one player's session and forwards changes to a Renderer.
// Commands never fail; invalid input is ignored.
type Controller struct {
	catalog  Catalog
	session  *Session
	renderer Renderer
	notified bool
	ranking  *Ranking
}

// NewController selects the first scenario of catalog. r may be nil.
func NewController(catalog Catalog, r Renderer) *Controller {
	if r == nil {
		r = nopRenderer{}
	}
	c := &Controller{catalog: catalog, renderer: r}
	if catalog.Available() {
		c.session = NewSession(catalog.Scenarios[0], catalog.CareerIDs())
	}
	c.emit()
	return c
}

// SetRenderer swaps the renderer, for adapters created per request.
func (c *Controller) SetRenderer(r Renderer) {
	if r == nil {
		r = nopRenderer{}
	}
	c.renderer = r
}

func (c *Controller) Catalog() Catalog {
	return c.catalog
}

// Available reports whether there is anything to play.
func (c *Controller) Available() bool {
	return c.session != nil
}

// ScenarioID is the id of the selected scenario.
func (c *Controller) ScenarioID() string {
	if c.session == nil {
		return ""
	}
	return c.session.Scenario().ID
}

// SelectScenario switches scenario and resets progress. An unknown id falls
// back to the first scenario.
func (c *Controller) SelectScenario(id string) {
	if c.session == nil {
		return
	}
	sc, ok := c.catalog.Scenario(id)
	if !ok {
		sc = c.catalog.Scenarios[0]
	}
	c.session = NewSession(sc, c.catalog.CareerIDs())
	c.clearResult()
	c.emit()
}

// Start begins (or begins again) the selected scenario.
func (c *Controller) Start() {
	if c.session == nil {
		return
	}
	c.session.Start()
	c.clearResult()
	c.emit()
}

// Restart returns to the not-started state.
func (c *Controller) Restart() {
	if c.session == nil {
		return
	}
	c.session.Reset()
	c.clearResult()
	c.emit()
}

// Choose applies the option at optionIndex of the current mission.
func (c *Controller) Choose(missionID string, optionIndex int) {
	if c.session == nil {
		return
	}
	if !c.session.Choose(missionID, optionIndex) {
		return
	}
	c.emit()
}

func (c *Controller) Snapshot() Snapshot {
	if c.session == nil {
		return Snapshot{MissionIndex: -1}
	}
	return c.session.Snapshot()
}

// Result returns the ranking of a finished playthrough.
func (c *Controller) Result() (Ranking, bool) {
	if c.ranking == nil {
		return Ranking{}, false
	}
	return *c.ranking, true
}

// History is the list of choices made so far.
func (c *Controller) History() []models.Step {
	if c.session == nil {
		return nil
	}
	return c.session.History()
}

func (c *Controller) clearResult() {
	c.notified = false
	c.ranking = nil
}

func (c *Controller) emit() {
	snap := c.Snapshot()
	c.renderer.OnStateChange(snap)
	if snap.State == Finished && !c.notified {
		r := Rank(snap.Scores, c.catalog.Careers)
		c.ranking = &r
		c.notified = true
		c.renderer.OnFinished(r)
	}
}
