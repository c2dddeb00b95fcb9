package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"deptsite/internal/dataset"
	"deptsite/internal/game"
)

func testCatalog() game.Catalog {
	return game.BuildCatalog(
		[]dataset.Row{
			{"id": "eng", "name": "Engineer", "desc": "Builds things", "tags": "tech;build"},
			{"id": "med", "name": "Doctor", "tags": "care"},
		},
		[]dataset.Row{
			{"scenario_id": "s1", "scenario_title": "Campus", "scenario_order": "1", "mission_id": "m1", "mission_order": "1", "title": "Arrival", "scene": "Day one."},
			{"scenario_id": "s1", "mission_id": "m2", "mission_order": "2", "title": "Lab"},
			{"scenario_id": "s2", "scenario_title": "Hospital", "scenario_order": "2", "mission_id": "m3", "mission_order": "1", "title": "Ward"},
		},
		[]dataset.Row{
			{"mission_id": "m1", "option_id": "a", "option_order": "1", "label": "Build", "scores": "eng:2"},
			{"mission_id": "m1", "option_id": "b", "option_order": "2", "label": "Care", "scores": "med:1"},
			{"mission_id": "m2", "option_id": "c", "label": "Test", "scores": "eng:1"},
			{"mission_id": "m3", "option_id": "d", "label": "Treat", "scores": "med:4"},
		},
	)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func loaded(t *testing.T) model {
	m := newModel(context.Background(), nil)
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}, catalogLoadedMsg{catalog: testCatalog()})
}

func TestEmptyCatalog(t *testing.T) {
	m := send(t, newModel(context.Background(), nil), catalogLoadedMsg{})
	if m.phase != phaseEmpty {
		t.Fatalf("phase = %v, want empty", m.phase)
	}
	if !strings.Contains(m.View(), "not available") {
		t.Fatalf("view = %q", m.View())
	}
	// Keys other than quit are ignored.
	m = send(t, m, key("enter"))
	if m.phase != phaseEmpty {
		t.Fatal("enter changed an empty game")
	}
}

func TestPlaythrough(t *testing.T) {
	m := loaded(t)
	if !strings.Contains(m.View(), "Pick a storyline") || !strings.Contains(m.View(), "Hospital") {
		t.Fatalf("scenario list not shown:\n%s", m.View())
	}

	m = send(t, m, key("enter"))
	if m.view.snap.State != game.InMission || m.view.snap.ScenarioID != "s1" {
		t.Fatalf("after start: %+v", m.view.snap)
	}
	if v := m.View(); !strings.Contains(v, "Mission 1 of 2") || !strings.Contains(v, "Arrival") {
		t.Fatalf("mission view:\n%s", v)
	}

	m = send(t, m, key("down"), key("up"), key("1"), key("enter"))
	if m.view.snap.State != game.Finished {
		t.Fatalf("state = %v, want finished", m.view.snap.State)
	}
	if m.view.ranking == nil || m.view.ranking.Presented[0].CareerID != "eng" {
		t.Fatalf("ranking = %+v", m.view.ranking)
	}
	results := m.renderResults()
	for _, s := range []string{"Engineer", "Story score: 3", "Mission 1 – Arrival", "You chose: Build", "tech • build"} {
		if !strings.Contains(results, s) {
			t.Errorf("results missing %q:\n%s", s, results)
		}
	}

	m = send(t, m, key("r"))
	if m.view.snap.State != game.NotStarted || m.view.ranking != nil {
		t.Fatalf("after restart: %+v", m.view.snap)
	}
}

func TestPickSecondScenarioWithDigit(t *testing.T) {
	m := loaded(t)
	m = send(t, m, key("2"))
	if m.view.snap.ScenarioID != "s2" || m.view.snap.State != game.InMission {
		t.Fatalf("snap = %+v", m.view.snap)
	}
	m = send(t, m, key("9"))
	if m.view.snap.State != game.InMission {
		t.Fatal("out-of-range digit should be ignored")
	}
	m = send(t, m, key("1"))
	if m.view.ranking == nil || m.view.ranking.Presented[0].CareerID != "med" {
		t.Fatalf("ranking = %+v", m.view.ranking)
	}
}

func TestCursorStaysInRange(t *testing.T) {
	m := loaded(t)
	m = send(t, m, key("up"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m = send(t, m, key("j"), key("j"), key("j"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
}

func TestQuit(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}
