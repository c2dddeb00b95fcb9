package content

import (
	"context"
	"testing"

	"deptsite/internal/dataset"
	"deptsite/internal/models"
)

func keys(buttons []models.FilterButton) []string {
	out := make([]string, len(buttons))
	for i, b := range buttons {
		out[i] = b.Key
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHelpers(t *testing.T) {
	if got, want := TitleCase("data-science and policy"), "Data Science And Policy"; got != want {
		t.Fatalf("TitleCase = %q, want %q", got, want)
	}
	if got := SplitAreas("AI; Ethics, climate  policy"); !equal(got, []string{"ai", "ethics", "climate", "policy"}) {
		t.Fatalf("SplitAreas = %v", got)
	}
	if got, want := Initials("ada lovelace byron"), "AL"; got != want {
		t.Fatalf("Initials = %q, want %q", got, want)
	}
	if got := Initials(""); got != "" {
		t.Fatalf("Initials(empty) = %q", got)
	}
}

func TestPageCopy(t *testing.T) {
	c := CopyFromRows([]dataset.Row{
		{"page": "Home", "block": "HERO", "title": "Hello", "text": ""},
		{"page": "", "block": "hero", "title": "skipped"},
	})
	got := c.Apply("home", "hero", models.Block{Title: "Default", Text: "Kept"})
	if got.Title != "Hello" || got.Text != "Kept" {
		t.Fatalf("Apply = %+v", got)
	}
	if got := c.Apply("faculty", "hero", models.Block{Title: "Same"}); got.Title != "Same" {
		t.Fatalf("missing copy changed block: %+v", got)
	}
}

func TestBuildHomeTestimonialFilter(t *testing.T) {
	p := BuildHome(nil,
		[]dataset.Row{{"title": "Visit"}},
		[]dataset.Row{
			{"group": "Students", "name": "ann lee", "programme": "BSc", "role": "Alumna", "tags": "a;b"},
			{"group": "", "name": "bo"},
			{"group": "staff", "name": "cy"},
		}, "students")

	if p.Explore[0].ButtonHref != "#" {
		t.Fatalf("default href = %q, want #", p.Explore[0].ButtonHref)
	}
	if !equal(keys(p.Groups), []string{"all", "staff", "students"}) {
		t.Fatalf("groups = %v", keys(p.Groups))
	}
	if len(p.Testimonials) != 1 || p.Testimonials[0].Initial != "A" {
		t.Fatalf("testimonials = %+v", p.Testimonials)
	}
	if got, want := p.Testimonials[0].Meta(), "BSc · Alumna"; got != want {
		t.Fatalf("Meta = %q, want %q", got, want)
	}
}

func TestBuildIntroduction(t *testing.T) {
	p := BuildIntroduction([]dataset.Row{
		{"section_id": "degree_projects", "title": "Projects"},
		{"section_id": "hero", "title": "Intro", "text": "Hi"},
		{"section_id": "degree_cores", "title": "Cores"},
	})
	if p.Hero.Title != "Intro" {
		t.Fatalf("hero = %+v", p.Hero)
	}
	if len(p.Degrees) != 2 || p.Degrees[0].Title != "Cores" || p.Degrees[1].Title != "Projects" {
		t.Fatalf("degrees = %+v", p.Degrees)
	}
}

func TestBuildProgrammes(t *testing.T) {
	p := BuildProgrammes(
		[]dataset.Row{{"id": "sciences", "title": "Natural sciences"}},
		[]dataset.Row{
			{"section_id": "Sciences", "title": "Physics", "tags": "lab; maths"},
			{"section_id": "policy", "title": "Law"},
			{"section_id": "", "title": "dropped"},
		})
	if p.SciencesTitle != "Natural sciences" || p.PolicyTitle != "Policy" {
		t.Fatalf("titles = %q %q", p.SciencesTitle, p.PolicyTitle)
	}
	if len(p.Sciences) != 1 || len(p.Sciences[0].Tags) != 2 || len(p.Policy) != 1 {
		t.Fatalf("cards = %+v / %+v", p.Sciences, p.Policy)
	}
}

func TestBuildFaculty(t *testing.T) {
	rows := []dataset.Row{
		{"name": "Grace Hopper", "areas": "Compilers, systems", "open_for_student_research": "Yes", "publications": "A || B ||"},
		{"name": "Alan Turing", "areas": "ai;compilers", "open_for_student_research": "no"},
	}
	p := BuildFaculty(rows, "")
	if !equal(keys(p.Filters), []string{"all", "ai", "compilers", "systems"}) {
		t.Fatalf("filters = %v", keys(p.Filters))
	}
	if p.Filters[1].Label != "Ai" {
		t.Fatalf("label = %q, want Ai", p.Filters[1].Label)
	}
	if len(p.Profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(p.Profiles))
	}
	g := p.Profiles[0]
	if g.Initials != "GH" || !g.OpenForResearch || len(g.Publications) != 2 {
		t.Fatalf("profile = %+v", g)
	}
	if p.Profiles[1].OpenForResearch {
		t.Fatal("no should not mark open for research")
	}

	p = BuildFaculty(rows, "systems")
	if len(p.Profiles) != 1 || p.Profiles[0].Name != "Grace Hopper" {
		t.Fatalf("filtered profiles = %+v", p.Profiles)
	}
}

func TestBuildResearch(t *testing.T) {
	p := BuildResearch(
		[]dataset.Row{{"id": "projects", "title": "Now", "text": "Ongoing work"}},
		[]dataset.Row{{"title": "", "text": ""}, {"title": "Climate"}},
		[]dataset.Row{{"text": " "}, {"text": "Sea levels"}},
	)
	if p.ProjectsTitle != "Now" || p.ProjectsIntro != "Ongoing work" || p.Hero.Title != "Research" {
		t.Fatalf("meta = %+v", p)
	}
	if len(p.Areas) != 1 || len(p.Projects) != 1 {
		t.Fatalf("areas=%v projects=%v", p.Areas, p.Projects)
	}
}

func TestBuildNews(t *testing.T) {
	items := []dataset.Row{
		{"title": "a", "category": "Events", "year": "2023"},
		{"title": "b", "category": "workshops", "year": "2024"},
		{"title": "c", "category": "research", "year": "2024", "badge_type": ""},
		{"title": "d", "category": "alumni", "year": ""},
	}
	p := BuildNews(nil, items, "", "")
	if !equal(keys(p.Categories), []string{"all", "research", "events", "workshops", "alumni"}) {
		t.Fatalf("categories = %v", keys(p.Categories))
	}
	if p.Categories[3].Label != "Workshops" {
		t.Fatalf("extra label = %q", p.Categories[3].Label)
	}
	if !equal(keys(p.Years), []string{"all", "2024", "2023"}) {
		t.Fatalf("years = %v", keys(p.Years))
	}
	if len(p.Items) != 4 || p.Items[2].BadgeType != "research" {
		t.Fatalf("items = %+v", p.Items)
	}

	p = BuildNews(nil, items, "research", "2024")
	if len(p.Items) != 1 || p.Items[0].Title != "c" {
		t.Fatalf("filtered = %+v", p.Items)
	}
	p = BuildNews(nil, items, "bogus", "2023")
	if len(p.Items) != 1 || !p.Categories[0].Active {
		t.Fatalf("unknown category should fall back to all: %+v", p.Items)
	}
}

func TestBuildGallery(t *testing.T) {
	p := BuildGallery(nil, []dataset.Row{
		{"image_src": "a.jpg", "theme": "Campus Life"},
		{"image_src": "", "theme": "events"},
		{"image_src": "b.jpg", "overlay_label": "Custom"},
	}, "")
	if !equal(keys(p.Themes), []string{"all", "campus life", "events"}) {
		t.Fatalf("themes = %v", keys(p.Themes))
	}
	if len(p.Items) != 2 || p.Items[0].OverlayLabel != "Campus Life" || p.Items[1].OverlayLabel != "Custom" {
		t.Fatalf("items = %+v", p.Items)
	}
	noLabel := BuildGallery(nil, []dataset.Row{{"image_src": "c.jpg"}}, "")
	if noLabel.Items[0].OverlayLabel != "Image" {
		t.Fatalf("overlay = %q, want Image", noLabel.Items[0].OverlayLabel)
	}
}

func TestBuildProjects(t *testing.T) {
	meta := []dataset.Row{
		{"id": "hero", "title": "Projects"},
		{"id": "hero", "title": "ignored second"},
		{"id": "get_involved_list", "order": "2", "text": "Second"},
		{"id": "get_involved_list", "order": "1", "text": "First"},
		{"id": "get_involved_list", "order": "", "text": "No order"},
		{"id": "get_involved_extra", "text": "Extra"},
	}
	items := []dataset.Row{
		{"title": "P1", "level_key": "MSc", "theme_key": "climate", "type_key": "thesis", "theme_label": "Climate & Energy"},
		{"title": "P2", "level_key": "bsc", "theme_key": "ai", "type_key": "thesis", "link_url": "http://x"},
	}
	p := BuildProjects(meta, items, ProjectFilter{})
	if p.Hero.Title != "Projects" || p.GetInvolvedExtra != "Extra" {
		t.Fatalf("meta = %+v", p)
	}
	if !equal(p.GetInvolvedList, []string{"First", "Second"}) {
		t.Fatalf("list = %v", p.GetInvolvedList)
	}
	if !equal(keys(p.Themes), []string{"all", "ai", "climate"}) {
		t.Fatalf("themes = %v", keys(p.Themes))
	}
	if !equal(keys(p.Levels), []string{"all", "bsc", "msc"}) {
		t.Fatalf("levels = %v", keys(p.Levels))
	}
	if p.Items[1].LinkLabel != "View project" || p.Items[0].LevelLabel != "Msc" {
		t.Fatalf("items = %+v", p.Items)
	}

	p = BuildProjects(meta, items, ProjectFilter{Type: "thesis", Theme: "ai"})
	if len(p.Items) != 1 || p.Items[0].Title != "P2" {
		t.Fatalf("filtered = %+v", p.Items)
	}
}

func TestBuildCareers(t *testing.T) {
	p := BuildCareers(
		[]dataset.Row{{"id": "hero", "title": "Paths"}},
		[]dataset.Row{
			{"column": "left", "order": "2", "title": "B", "target_id": "d2"},
			{"column": "", "order": "0", "title": "dropped"},
			{"column": "Right", "order": "1", "title": "A", "type": "Role"},
		},
		[]dataset.Row{
			{"detail_id": "d1", "title": "One", "list_items": "x; y"},
			{"detail_id": "", "title": "skip"},
			{"detail_id": "d2", "title": "Two"},
		}, "")
	if len(p.Nodes) != 2 || p.Nodes[0].Title != "A" || p.Nodes[0].Branch != "right" || p.Nodes[0].Type != "role" {
		t.Fatalf("nodes = %+v", p.Nodes)
	}
	if p.Nodes[1].Type != "field" {
		t.Fatalf("default node type = %q", p.Nodes[1].Type)
	}
	if d, ok := p.Active(); !ok || d.ID != "d1" || len(d.Items) != 2 {
		t.Fatalf("active = %+v", d)
	}

	p = BuildCareers(nil, nil, []dataset.Row{{"detail_id": "d1"}, {"detail_id": "d2"}}, "d2")
	if d, _ := p.Active(); d.ID != "d2" {
		t.Fatalf("focused = %s, want d2", d.ID)
	}
}

type mapLoader map[string][]dataset.Row

func (m mapLoader) Load(_ context.Context, name string) []dataset.Row {
	return m[name]
}

func TestSiteAppliesPageCopy(t *testing.T) {
	site := NewSite(mapLoader{
		dataset.PageCopy: {
			{"page": "faculty", "block": "hero", "title": "Our people"},
			{"page": "game", "block": "intro", "text": "Choose wisely"},
		},
	})
	if got := site.Faculty(context.Background(), "").Hero.Title; got != "Our people" {
		t.Fatalf("faculty hero = %q", got)
	}
	gc := site.GameCopy(context.Background())
	if gc.Intro.Text != "Choose wisely" || gc.Hero.Title != "Careers game" {
		t.Fatalf("game copy = %+v", gc)
	}
}
