package game

import (
	"context"
	"sort"

	"deptsite/internal/dataset"
	"deptsite/internal/models"
	"deptsite/internal/textsort"
)

const (
	defaultScenarioID    = "default"
	defaultScenarioTitle = "Main story"
)

// Catalog is everything a playthrough needs: the known careers in sheet
// order and the playable scenarios.
type Catalog struct {
	Careers   []models.Career
	Scenarios []models.Scenario
}

// Available reports whether at least one scenario can be played.
func (c Catalog) Available() bool {
	return len(c.Scenarios) > 0
}

func (c Catalog) Scenario(id string) (models.Scenario, bool) {
	for _, sc := range c.Scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return models.Scenario{}, false
}

func (c Catalog) Career(id string) (models.Career, bool) {
	for _, cr := range c.Careers {
		if cr.ID == id {
			return cr, true
		}
	}
	return models.Career{}, false
}

// CareerIDs returns career ids in catalogue order.
func (c Catalog) CareerIDs() []string {
	ids := make([]string, len(c.Careers))
	for i, cr := range c.Careers {
		ids[i] = cr.ID
	}
	return ids
}

// Loader is the part of the dataset cache the game reads from.
type Loader interface {
	Load(ctx context.Context, name string) []dataset.Row
}

// LoadCatalog reads the three game datasets and builds the catalog.
func LoadCatalog(ctx context.Context, l Loader) Catalog {
	return BuildCatalog(
		l.Load(ctx, dataset.GameCareers),
		l.Load(ctx, dataset.GameMissions),
		l.Load(ctx, dataset.GameOptions),
	)
}

// BuildCatalog turns raw career, mission and option rows into scenarios.
// Rows that cannot form part of a playable scenario are dropped silently.
func BuildCatalog(careerRows, missionRows, optionRows []dataset.Row) Catalog {
	return Catalog{
		Careers:   buildCareers(careerRows),
		Scenarios: buildScenarios(missionRows, optionRows),
	}
}

func buildCareers(rows []dataset.Row) []models.Career {
	var careers []models.Career
	index := map[string]int{}
	for _, row := range rows {
		id := row.Get("id")
		if id == "" {
			continue
		}
		c := models.Career{
			ID:          id,
			Name:        row.Or("name", id),
			Description: row.Get("desc"),
			Tags:        dataset.SplitList(row.Get("tags"), ";"),
		}
		if i, ok := index[id]; ok {
			careers[i] = c
			continue
		}
		index[id] = len(careers)
		careers = append(careers, c)
	}
	return careers
}

func buildScenarios(missionRows, optionRows []dataset.Row) []models.Scenario {
	optionsByMission := map[string][]models.Option{}
	for _, row := range optionRows {
		mID := row.Get("mission_id")
		if mID == "" {
			continue
		}
		optionsByMission[mID] = append(optionsByMission[mID], models.Option{
			ID:          row.Get("option_id"),
			Order:       row.Int("option_order"),
			Label:       row.Get("label"),
			Description: row.Get("desc"),
			Scores:      dataset.ParseScores(row.Get("scores")),
		})
	}
	for _, opts := range optionsByMission {
		sort.SliceStable(opts, func(i, j int) bool { return opts[i].Order < opts[j].Order })
	}

	var scenarios []*models.Scenario
	byID := map[string]*models.Scenario{}
	for _, row := range missionRows {
		sID := row.Or("scenario_id", defaultScenarioID)
		sc, ok := byID[sID]
		if !ok {
			sc = &models.Scenario{
				ID:    sID,
				Title: row.Or("scenario_title", defaultScenarioTitle),
				Order: row.Int("scenario_order"),
			}
			byID[sID] = sc
			scenarios = append(scenarios, sc)
		}

		mID := row.Get("mission_id")
		if mID == "" {
			continue
		}
		opts := optionsByMission[mID]
		if len(opts) == 0 {
			continue
		}
		sc.Missions = append(sc.Missions, models.Mission{
			ID:      mID,
			Order:   row.Int("mission_order"),
			Title:   row.Get("title"),
			Scene:   row.Get("scene"),
			Options: append([]models.Option(nil), opts...),
		})
	}

	out := make([]models.Scenario, 0, len(scenarios))
	for _, sc := range scenarios {
		if len(sc.Missions) == 0 {
			continue
		}
		sort.SliceStable(sc.Missions, func(i, j int) bool { return sc.Missions[i].Order < sc.Missions[j].Order })
		out = append(out, *sc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return textsort.Less(out[i].Title, out[j].Title)
	})
	return out
}
