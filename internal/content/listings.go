package content

import (
	"context"
	"sort"
	"strings"

	"deptsite/internal/dataset"
	"deptsite/internal/models"
	"deptsite/internal/textsort"
)

var (
	newsCategoryOrder  = []string{"research", "students", "events", "announcement"}
	newsCategoryLabels = map[string]string{
		"research":     "Research",
		"students":     "Students",
		"events":       "Events",
		"announcement": "Announcements",
	}
)

type NewsPage struct {
	Hero       models.Block
	Categories []models.FilterButton
	Years      []models.FilterButton
	Items      []models.NewsItem
}

func (s *Site) News(ctx context.Context, category, year string) NewsPage {
	return BuildNews(s.data.Load(ctx, dataset.NewsMeta), s.data.Load(ctx, dataset.NewsItems), category, year)
}

// BuildNews builds the news grid with category and year filters applied.
// Known categories come first in a fixed order, then the rest as seen.
func BuildNews(meta, items []dataset.Row, category, year string) NewsPage {
	p := NewsPage{Hero: block(metaByID(meta)["hero"], models.Block{Title: "News"})}

	seenCat := map[string]bool{}
	var extraCats []string
	years := map[string]bool{}
	var all []models.NewsItem
	for _, row := range items {
		n := models.NewsItem{
			Year:        row.Get("year"),
			Category:    CleanKey(row.Get("category")),
			BadgeLabel:  row.Get("badge_label"),
			DateDisplay: row.Get("date_display"),
			Title:       row.Get("title"),
			Summary:     row.Get("summary"),
			Tags:        tags(row.Get("tags")),
			FooterText:  row.Get("footer_text"),
			LinkURL:     row.Get("link_url"),
		}
		n.BadgeType = CleanKey(row.Or("badge_type", n.Category))
		if n.Year != "" {
			years[n.Year] = true
		}
		if n.Category != "" && !seenCat[n.Category] {
			seenCat[n.Category] = true
			if _, known := newsCategoryLabels[n.Category]; !known {
				extraCats = append(extraCats, n.Category)
			}
		}
		all = append(all, n)
	}

	var cats []keyLabel
	for _, k := range newsCategoryOrder {
		if seenCat[k] {
			cats = append(cats, keyLabel{key: k, label: newsCategoryLabels[k]})
		}
	}
	cats = append(cats, titledKeys(extraCats)...)
	p.Categories = filterRow(cats, category)

	yearList := sortedSet(years)
	sort.Sort(sort.Reverse(sort.StringSlice(yearList)))
	yl := make([]keyLabel, len(yearList))
	for i, y := range yearList {
		yl[i] = keyLabel{key: y, label: y}
	}
	p.Years = filterRow(yl, strings.TrimSpace(year))

	activeCat, activeYear := activeKey(p.Categories), activeKey(p.Years)
	for _, n := range all {
		if (activeCat == "all" || n.Category == activeCat) && (activeYear == "all" || n.Year == activeYear) {
			p.Items = append(p.Items, n)
		}
	}
	return p
}

type GalleryPage struct {
	Hero   models.Block
	Themes []models.FilterButton
	Items  []models.GalleryItem
}

func (s *Site) Gallery(ctx context.Context, theme string) GalleryPage {
	return BuildGallery(s.data.Load(ctx, dataset.GalleryMeta), s.data.Load(ctx, dataset.GalleryItems), theme)
}

func BuildGallery(meta, items []dataset.Row, theme string) GalleryPage {
	p := GalleryPage{Hero: block(metaByID(meta)["hero"], models.Block{Title: "Gallery"})}
	themes := map[string]bool{}
	var all []models.GalleryItem
	for _, row := range items {
		th := CleanKey(row.Get("theme"))
		if th != "" {
			themes[th] = true
		}
		src := row.Get("image_src")
		if src == "" {
			continue
		}
		label := row.Get("overlay_label")
		if label == "" {
			label = TitleCase(th)
			if th == "" {
				label = "Image"
			}
		}
		all = append(all, models.GalleryItem{
			Src:          src,
			Alt:          row.Get("alt"),
			Caption:      row.Get("caption"),
			Theme:        th,
			OverlayLabel: label,
		})
	}
	p.Themes = filterRow(titledKeys(sortedSet(themes)), theme)
	active := activeKey(p.Themes)
	for _, it := range all {
		if active == "all" || it.Theme == active {
			p.Items = append(p.Items, it)
		}
	}
	return p
}

type ProjectsPage struct {
	Hero             models.Block
	Browse           models.Block
	GetInvolved      models.Block
	GetInvolvedExtra string
	GetInvolvedList  []string
	Funding          models.Block
	Levels           []models.FilterButton
	Themes           []models.FilterButton
	Types            []models.FilterButton
	Items            []models.Project
}

// ProjectFilter selects projects by level, theme and type; blank means all.
type ProjectFilter struct {
	Level string
	Theme string
	Type  string
}

func (s *Site) Projects(ctx context.Context, f ProjectFilter) ProjectsPage {
	return BuildProjects(s.data.Load(ctx, dataset.ProjectsMeta), s.data.Load(ctx, dataset.ProjectsItems), f)
}

func BuildProjects(meta, items []dataset.Row, f ProjectFilter) ProjectsPage {
	groups := map[string][]dataset.Row{}
	for _, row := range meta {
		if id := row.Get("id"); id != "" {
			groups[id] = append(groups[id], row)
		}
	}
	first := func(id string) dataset.Row {
		if rows := groups[id]; len(rows) > 0 {
			return rows[0]
		}
		return nil
	}

	p := ProjectsPage{
		Hero:        block(first("hero"), models.Block{Title: "Student projects"}),
		Browse:      block(first("browse"), models.Block{Title: "Browse projects"}),
		GetInvolved: block(first("get_involved_intro"), models.Block{Title: "Get involved"}),
		Funding:     block(first("funding_intro"), models.Block{Title: "Funding"}),
	}
	if row := first("get_involved_extra"); row != nil {
		p.GetInvolvedExtra = row.Get("text")
	}
	var bullets []dataset.Row
	for _, row := range groups["get_involved_list"] {
		if row.Get("order") != "" && row.Get("text") != "" {
			bullets = append(bullets, row)
		}
	}
	sort.SliceStable(bullets, func(i, j int) bool {
		return bullets[i].Int("order") < bullets[j].Int("order")
	})
	for _, row := range bullets {
		p.GetInvolvedList = append(p.GetInvolvedList, row.Get("text"))
	}

	levels, themes, types := newLabelSet(), newLabelSet(), newLabelSet()
	var all []models.Project
	for _, row := range items {
		pr := models.Project{
			Title:       row.Get("title"),
			Summary:     row.Get("summary"),
			LevelKey:    CleanKey(row.Get("level_key")),
			ThemeKey:    CleanKey(row.Get("theme_key")),
			TypeKey:     CleanKey(row.Get("type_key")),
			Year:        row.Get("year"),
			Student:     row.Get("student"),
			Programme:   row.Get("programme"),
			Supervisors: row.Get("supervisors"),
			Tags:        tags(row.Get("tags")),
			LinkURL:     row.Get("link_url"),
			LinkLabel:   row.Or("link_label", "View project"),
		}
		levels.add(pr.LevelKey, row.Get("level_label"))
		themes.add(pr.ThemeKey, row.Get("theme_label"))
		types.add(pr.TypeKey, row.Get("type_label"))

		levelKey := pr.LevelKey
		if levelKey == "" {
			levelKey = "Project"
		}
		pr.LevelLabel = row.Or("level_label", TitleCase(levelKey))
		pr.TypeLabel = row.Or("type_label", TitleCase(pr.TypeKey))
		all = append(all, pr)
	}
	p.Levels = filterRow(levels.sorted(), f.Level)
	p.Themes = filterRow(themes.sorted(), f.Theme)
	p.Types = filterRow(types.sorted(), f.Type)

	lv, th, ty := activeKey(p.Levels), activeKey(p.Themes), activeKey(p.Types)
	for _, pr := range all {
		if (lv == "all" || pr.LevelKey == lv) && (th == "all" || pr.ThemeKey == th) && (ty == "all" || pr.TypeKey == ty) {
			p.Items = append(p.Items, pr)
		}
	}
	return p
}

// labelSet collects key → label pairs; a later row's label replaces an
// earlier one, the key keeps its first position.
type labelSet struct {
	keys   []string
	labels map[string]string
}

func newLabelSet() *labelSet {
	return &labelSet{labels: map[string]string{}}
}

func (s *labelSet) add(key, label string) {
	if key == "" {
		return
	}
	if label == "" {
		label = TitleCase(key)
	}
	if _, ok := s.labels[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.labels[key] = label
}

func (s *labelSet) sorted() []keyLabel {
	out := make([]keyLabel, len(s.keys))
	for i, k := range s.keys {
		out[i] = keyLabel{key: k, label: s.labels[k]}
	}
	sort.SliceStable(out, func(i, j int) bool { return textsort.Less(out[i].label, out[j].label) })
	return out
}
