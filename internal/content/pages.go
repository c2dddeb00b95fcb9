package content

import (
	"context"
	"slices"
	"strings"

	"deptsite/internal/dataset"
	"deptsite/internal/models"
)

type HomePage struct {
	Hero         models.Block
	Glance       []models.Card
	Explore      []models.Card
	Groups       []models.FilterButton
	Testimonials []models.Testimonial
}

var defaultHomeHero = models.Block{
	Title: "Welcome to the department",
	Text:  "Programmes, people and research across the sciences and policy.",
}

func (s *Site) Home(ctx context.Context, group string) HomePage {
	pc := s.pageCopy(ctx)
	p := BuildHome(
		s.data.Load(ctx, dataset.HomeGlance),
		s.data.Load(ctx, dataset.HomeExplore),
		s.data.Load(ctx, dataset.HomeTestimonials),
		group,
	)
	p.Hero = pc.Apply("home", "hero", p.Hero)
	return p
}

// BuildHome assembles the home page. Testimonials are filtered by group.
func BuildHome(glance, explore, testimonials []dataset.Row, group string) HomePage {
	p := HomePage{Hero: defaultHomeHero}
	for _, row := range glance {
		p.Glance = append(p.Glance, models.Card{Title: row.Get("title"), Text: row.Get("text")})
	}
	for _, row := range explore {
		p.Explore = append(p.Explore, models.Card{
			Title:       row.Get("title"),
			Text:        row.Get("text"),
			ButtonLabel: row.Get("button_label"),
			ButtonHref:  row.Or("button_href", "#"),
		})
	}

	groups := map[string]bool{}
	var all []models.Testimonial
	for _, row := range testimonials {
		t := models.Testimonial{
			Group:     CleanKey(row.Get("group")),
			Name:      row.Get("name"),
			Text:      row.Get("text"),
			Role:      row.Get("role"),
			Programme: row.Get("programme"),
			Tags:      tags(row.Get("tags")),
		}
		if t.Group == "" {
			t.Group = "all"
		}
		t.Initial = initial(t.Name)
		for _, g := range strings.Fields(t.Group) {
			if g != "all" {
				groups[g] = true
			}
		}
		all = append(all, t)
	}
	p.Groups = filterRow(titledKeys(sortedSet(groups)), group)
	active := activeKey(p.Groups)
	for _, t := range all {
		if active == "all" || slices.Contains(strings.Fields(t.Group), active) {
			p.Testimonials = append(p.Testimonials, t)
		}
	}
	return p
}

type IntroPage struct {
	Hero            models.Block
	About           models.Block
	StructuresTitle string
	Degrees         []models.Card
}

var introDegreeSections = []string{"degree_cores", "degree_electives", "degree_projects"}

func (s *Site) Introduction(ctx context.Context) IntroPage {
	p := BuildIntroduction(s.data.Load(ctx, dataset.IntroContent))
	p.StructuresTitle = s.pageCopy(ctx).Apply("introduction", "structures", models.Block{Title: p.StructuresTitle}).Title
	return p
}

func BuildIntroduction(rows []dataset.Row) IntroPage {
	byID := map[string]dataset.Row{}
	for _, row := range rows {
		if id := row.Get("section_id"); id != "" {
			byID[id] = row
		}
	}
	p := IntroPage{
		Hero:            block(byID["hero"], models.Block{Title: "Introduction"}),
		About:           block(byID["about"], models.Block{Title: "About the department"}),
		StructuresTitle: "Degree structures",
	}
	for _, id := range introDegreeSections {
		row, ok := byID[id]
		if !ok {
			continue
		}
		p.Degrees = append(p.Degrees, models.Card{Title: row.Get("title"), Text: row.Get("text")})
	}
	return p
}

type ProgrammesPage struct {
	Hero          models.Block
	SciencesTitle string
	PolicyTitle   string
	Sciences      []models.Card
	Policy        []models.Card
}

func (s *Site) Programmes(ctx context.Context) ProgrammesPage {
	return BuildProgrammes(s.data.Load(ctx, dataset.ProgrammesMeta), s.data.Load(ctx, dataset.ProgrammesCards))
}

func BuildProgrammes(meta, cards []dataset.Row) ProgrammesPage {
	m := metaByID(meta)
	p := ProgrammesPage{
		Hero:          block(m["hero"], models.Block{Title: "Programmes"}),
		SciencesTitle: block(m["sciences"], models.Block{Title: "Sciences"}).Title,
		PolicyTitle:   block(m["policy"], models.Block{Title: "Policy"}).Title,
	}
	for _, row := range cards {
		card := models.Card{Title: row.Get("title"), Text: row.Get("text"), Tags: tags(row.Get("tags"))}
		switch CleanKey(row.Get("section_id")) {
		case "sciences":
			p.Sciences = append(p.Sciences, card)
		case "policy":
			p.Policy = append(p.Policy, card)
		}
	}
	return p
}

type FacultyPage struct {
	Hero     models.Block
	Filters  []models.FilterButton
	Profiles []models.FacultyProfile
}

var openForResearchValues = []string{"yes", "true", "1"}

func (s *Site) Faculty(ctx context.Context, area string) FacultyPage {
	p := BuildFaculty(s.data.Load(ctx, dataset.FacultyProfiles), area)
	p.Hero = s.pageCopy(ctx).Apply("faculty", "hero", p.Hero)
	return p
}

// BuildFaculty builds profile cards and the research-area filter row.
func BuildFaculty(rows []dataset.Row, area string) FacultyPage {
	p := FacultyPage{Hero: models.Block{Title: "Faculty", Text: "Meet the people who teach and research here."}}
	areas := map[string]bool{}
	var all []models.FacultyProfile
	for _, row := range rows {
		f := models.FacultyProfile{
			Name:            row.Get("name"),
			Role:            row.Get("role"),
			Email:           row.Get("email"),
			Office:          row.Get("office"),
			Website:         row.Get("website"),
			Areas:           SplitAreas(row.Get("areas")),
			Tags:            tags(row.Get("tags")),
			ShortBio:        row.Get("short_bio"),
			About:           row.Get("about"),
			Publications:    dataset.SplitList(row.Get("publications"), "||"),
			Advice:          row.Get("advice"),
			OpenForResearch: slices.Contains(openForResearchValues, CleanKey(row.Get("open_for_student_research"))),
		}
		f.Initials = Initials(f.Name)
		for _, a := range f.Areas {
			areas[a] = true
		}
		all = append(all, f)
	}
	p.Filters = filterRow(titledKeys(sortedSet(areas)), area)
	active := activeKey(p.Filters)
	for _, f := range all {
		if active == "all" || slices.Contains(f.Areas, active) {
			p.Profiles = append(p.Profiles, f)
		}
	}
	return p
}

type ResearchPage struct {
	Hero          models.Block
	AreasTitle    string
	Areas         []models.Card
	ProjectsTitle string
	ProjectsIntro string
	Projects      []string
}

func (s *Site) Research(ctx context.Context) ResearchPage {
	return BuildResearch(
		s.data.Load(ctx, dataset.ResearchMeta),
		s.data.Load(ctx, dataset.ResearchAreas),
		s.data.Load(ctx, dataset.ResearchProjects),
	)
}

func BuildResearch(meta, areas, projects []dataset.Row) ResearchPage {
	m := metaByID(meta)
	proj := block(m["projects"], models.Block{Title: "Current projects"})
	p := ResearchPage{
		Hero:          block(m["hero"], models.Block{Title: "Research"}),
		AreasTitle:    block(m["areas"], models.Block{Title: "Research areas"}).Title,
		ProjectsTitle: proj.Title,
		ProjectsIntro: proj.Text,
	}
	for _, row := range areas {
		c := models.Card{Title: row.Get("title"), Text: row.Get("text")}
		if c.Title == "" && c.Text == "" {
			continue
		}
		p.Areas = append(p.Areas, c)
	}
	for _, row := range projects {
		if text := row.Get("text"); text != "" {
			p.Projects = append(p.Projects, text)
		}
	}
	return p
}
