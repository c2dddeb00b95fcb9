package models

import "fmt"

// Career is a role a player can be matched to
type Career struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"desc"`
	Tags        []string `json:"tags"`
}

// Option is one choice inside a mission
type Option struct {
	ID          string             `json:"id"`
	Order       int                `json:"order"`
	Label       string             `json:"label"`
	Description string             `json:"desc"`
	Scores      map[string]float64 `json:"scores"`
}

// Mission is a single decision point
type Mission struct {
	ID      string   `json:"id"`
	Order   int      `json:"order"`
	Title   string   `json:"title"`
	Scene   string   `json:"scene"`
	Options []Option `json:"options"`
}

// Option returns the i-th option. Option ids may be blank or repeated, so
// choices are made by position.
func (m Mission) Option(i int) (Option, bool) {
	if i < 0 || i >= len(m.Options) {
		return Option{}, false
	}
	return m.Options[i], true
}

// Scenario is an ordered storyline of missions
type Scenario struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Missions []Mission `json:"missions"`
}

// DisplayTitle falls back to the id when the title is blank
func (s Scenario) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// Validate checks the structural rules a playable scenario must meet
func (s Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario id is required")
	}
	if len(s.Missions) == 0 {
		return fmt.Errorf("scenario %q has no missions", s.ID)
	}
	for _, m := range s.Missions {
		if m.ID == "" {
			return fmt.Errorf("scenario %q has a mission without id", s.ID)
		}
		if len(m.Options) == 0 {
			return fmt.Errorf("mission %q has no options", m.ID)
		}
	}
	return nil
}

// Step records one choice made during a playthrough
type Step struct {
	MissionID         string             `json:"missionId"`
	MissionTitle      string             `json:"missionTitle"`
	OptionLabel       string             `json:"label"`
	OptionDescription string             `json:"desc"`
	ScoresApplied     map[string]float64 `json:"scores"`
}
