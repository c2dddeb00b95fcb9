package content

import (
	"context"
	"sort"

	"deptsite/internal/dataset"
	"deptsite/internal/models"
)

type CareersPage struct {
	Hero         models.Block
	MapIntro     models.Block
	DetailsIntro models.Block
	Nodes        []models.PathwayNode
	Details      []models.PathwayDetail
}

// Active returns the detail currently highlighted.
func (p CareersPage) Active() (models.PathwayDetail, bool) {
	for _, d := range p.Details {
		if d.Active {
			return d, true
		}
	}
	return models.PathwayDetail{}, false
}

func (s *Site) Careers(ctx context.Context, detail string) CareersPage {
	return BuildCareers(
		s.data.Load(ctx, dataset.CareerMeta),
		s.data.Load(ctx, dataset.CareerNodes),
		s.data.Load(ctx, dataset.CareerDetails),
		detail,
	)
}

// BuildCareers builds the pathway map. Nodes without a column are dropped,
// the rest ordered by their order cell. The first detail is active unless
// focus names another one.
func BuildCareers(meta, nodes, details []dataset.Row, focus string) CareersPage {
	m := metaByID(meta)
	p := CareersPage{
		Hero:         block(m["hero"], models.Block{Title: "Career pathways"}),
		MapIntro:     block(m["map_intro"], models.Block{Title: "Where the degree can take you"}),
		DetailsIntro: block(m["details_intro"], models.Block{Title: "Pathway details"}),
	}

	for _, row := range nodes {
		if row.Get("column") == "" {
			continue
		}
		p.Nodes = append(p.Nodes, models.PathwayNode{
			Branch:   CleanKey(row.Get("column")),
			Type:     CleanKey(row.Or("type", "field")),
			TargetID: row.Get("target_id"),
			Title:    row.Get("title"),
			Text:     row.Get("text"),
			Order:    row.Int("order"),
		})
	}
	sort.SliceStable(p.Nodes, func(i, j int) bool { return p.Nodes[i].Order < p.Nodes[j].Order })

	focused := -1
	for _, row := range details {
		id := row.Get("detail_id")
		if id == "" {
			continue
		}
		if id == focus {
			focused = len(p.Details)
		}
		p.Details = append(p.Details, models.PathwayDetail{
			ID:    id,
			Title: row.Get("title"),
			Intro: row.Get("intro"),
			Items: dataset.SplitList(row.Get("list_items"), ";"),
		})
	}
	if len(p.Details) > 0 {
		if focused < 0 {
			focused = 0
		}
		p.Details[focused].Active = true
	}
	return p
}

// GameCopy is the copy around the careers game.
type GameCopy struct {
	Hero  models.Block
	Intro models.Block
}

func (s *Site) GameCopy(ctx context.Context) GameCopy {
	pc := s.pageCopy(ctx)
	return GameCopy{
		Hero: pc.Apply("game", "hero", models.Block{
			Title: "Careers game",
			Text:  "Play through a short story and see which roles match the choices you make.",
		}),
		Intro: pc.Apply("game", "intro", models.Block{
			Title: "How it works",
			Text:  "Pick a storyline, make a choice in each mission, and get your top matches at the end.",
		}),
	}
}
