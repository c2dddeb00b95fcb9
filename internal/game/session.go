package game

import (
	"maps"

	"deptsite/internal/models"
)

// State is the phase of a playthrough.
type State int

const (
	NotStarted State = iota
	InMission
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InMission:
		return "in_mission"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Score is a career's running total.
type Score struct {
	CareerID string  `json:"careerId"`
	Value    float64 `json:"value"`
}

// Session is one playthrough of a scenario. The mission index is -1 before
// Start, the current mission while playing and len(missions) once finished.
type Session struct {
	scenario  models.Scenario
	careerIDs []string
	index     int
	scores    map[string]float64
	order     []string
	history   []models.Step
}

// NewSession prepares a session for sc; careerIDs seeds the score table.
func NewSession(sc models.Scenario, careerIDs []string) *Session {
	s := &Session{scenario: sc, careerIDs: append([]string(nil), careerIDs...)}
	s.Reset()
	return s
}

func (s *Session) initScores() {
	s.scores = make(map[string]float64, len(s.careerIDs))
	s.order = s.order[:0]
	for _, id := range s.careerIDs {
		s.addScore(id, 0)
	}
}

func (s *Session) addScore(id string, v float64) {
	if _, ok := s.scores[id]; !ok {
		s.order = append(s.order, id)
	}
	s.scores[id] += v
}

// Reset returns to NotStarted with zeroed scores and no history.
func (s *Session) Reset() {
	s.index = -1
	s.history = nil
	s.initScores()
}

// Start begins the first mission. It does nothing for a scenario without
// missions.
func (s *Session) Start() {
	if len(s.scenario.Missions) == 0 {
		return
	}
	s.Reset()
	s.index = 0
}

func (s *Session) State() State {
	switch {
	case s.index < 0:
		return NotStarted
	case s.index >= len(s.scenario.Missions):
		return Finished
	default:
		return InMission
	}
}

// Current returns the mission being played.
func (s *Session) Current() (models.Mission, bool) {
	if s.State() != InMission {
		return models.Mission{}, false
	}
	return s.scenario.Missions[s.index], true
}

// Choose applies the option at optionIndex of the current mission. Choices
// for any other mission, out of range indexes, or choices outside InMission
// are ignored and report false.
func (s *Session) Choose(missionID string, optionIndex int) bool {
	m, ok := s.Current()
	if !ok || m.ID != missionID {
		return false
	}
	opt, ok := m.Option(optionIndex)
	if !ok {
		return false
	}
	s.history = append(s.history, models.Step{
		MissionID:         m.ID,
		MissionTitle:      m.Title,
		OptionLabel:       opt.Label,
		OptionDescription: opt.Description,
		ScoresApplied:     maps.Clone(opt.Scores),
	})
	for _, id := range sortedKeys(opt.Scores) {
		s.addScore(id, opt.Scores[id])
	}
	s.index++
	return true
}

// Scores returns the totals in the order categories were first seen.
func (s *Session) Scores() []Score {
	out := make([]Score, len(s.order))
	for i, id := range s.order {
		out[i] = Score{CareerID: id, Value: s.scores[id]}
	}
	return out
}

func (s *Session) History() []models.Step {
	return append([]models.Step(nil), s.history...)
}

func (s *Session) Scenario() models.Scenario {
	return s.scenario
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	ScenarioID    string
	ScenarioTitle string
	State         State
	MissionIndex  int
	MissionCount  int
	Mission       *models.Mission
	Scores        []Score
	History       []models.Step
}

// Progress renders "Mission i of N" for the current mission.
func (s Snapshot) Progress() string {
	if s.State != InMission {
		return ""
	}
	return missionProgress(s.MissionIndex, s.MissionCount)
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ScenarioID:    s.scenario.ID,
		ScenarioTitle: s.scenario.DisplayTitle(),
		State:         s.State(),
		MissionIndex:  s.index,
		MissionCount:  len(s.scenario.Missions),
		Scores:        s.Scores(),
		History:       s.History(),
	}
	if m, ok := s.Current(); ok {
		snap.Mission = &m
	}
	return snap
}
