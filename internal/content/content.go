// Package content turns the site's tabular datasets into page view models.
package content

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"deptsite/internal/dataset"
	"deptsite/internal/models"
	"deptsite/internal/textsort"
)

// Loader is the part of the dataset cache pages read from.
type Loader interface {
	Load(ctx context.Context, name string) []dataset.Row
}

// Site builds page models from a Loader.
type Site struct {
	data Loader
}

func NewSite(l Loader) *Site {
	return &Site{data: l}
}

// Copy holds page copy overrides keyed by page then block.
type Copy map[string]map[string]dataset.Row

// CopyFromRows indexes pageCopy rows. Rows without a page or block are skipped.
func CopyFromRows(rows []dataset.Row) Copy {
	c := Copy{}
	for _, row := range rows {
		page := CleanKey(row.Get("page"))
		block := CleanKey(row.Get("block"))
		if page == "" || block == "" {
			continue
		}
		if c[page] == nil {
			c[page] = map[string]dataset.Row{}
		}
		c[page][block] = row
	}
	return c
}

// Apply overrides the non-empty fields of b with the copy for page/block.
func (c Copy) Apply(page, block string, b models.Block) models.Block {
	row, ok := c[CleanKey(page)][CleanKey(block)]
	if !ok {
		return b
	}
	if v := row.Get("title"); v != "" {
		b.Title = v
	}
	if v := row.Get("text"); v != "" {
		b.Text = v
	}
	return b
}

func (s *Site) pageCopy(ctx context.Context) Copy {
	return CopyFromRows(s.data.Load(ctx, dataset.PageCopy))
}

// CleanKey trims and lowercases a key column.
func CleanKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// TitleCase capitalises each word; spaces and hyphens separate words.
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '-' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// SplitAreas splits a research-area cell on semicolons, commas or spaces.
func SplitAreas(raw string) []string {
	return strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == ';' || r == ',' || r == ' '
	})
}

// Initials takes the first letter of the first two words of name.
func Initials(name string) string {
	var b strings.Builder
	for i, part := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func initial(name string) string {
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// tags splits a ";" separated tag cell.
func tags(raw string) []string {
	return dataset.SplitList(raw, ";")
}

// metaByID indexes rows by their id column; later rows win.
func metaByID(rows []dataset.Row) map[string]dataset.Row {
	m := map[string]dataset.Row{}
	for _, row := range rows {
		if id := row.Get("id"); id != "" {
			m[id] = row
		}
	}
	return m
}

// block builds a Block from row, keeping def for blank fields.
func block(row dataset.Row, def models.Block) models.Block {
	if row == nil {
		return def
	}
	return models.Block{
		Title: row.Or("title", def.Title),
		Text:  row.Or("text", def.Text),
	}
}

type keyLabel struct {
	key, label string
}

// filterRow builds an "All" button followed by entries. The active key is
// highlighted; an unknown or empty key activates "All".
func filterRow(entries []keyLabel, active string) []models.FilterButton {
	active = CleanKey(active)
	found := false
	for _, e := range entries {
		if e.key == active {
			found = true
			break
		}
	}
	if !found {
		active = "all"
	}
	out := []models.FilterButton{{Key: "all", Label: "All", Active: active == "all"}}
	for _, e := range entries {
		out = append(out, models.FilterButton{Key: e.key, Label: e.label, Active: e.key == active})
	}
	return out
}

// activeKey returns the key of the active button, "all" when none is.
func activeKey(buttons []models.FilterButton) string {
	for _, b := range buttons {
		if b.Active {
			return b.Key
		}
	}
	return "all"
}

func titledKeys(keys []string) []keyLabel {
	out := make([]keyLabel, len(keys))
	for i, k := range keys {
		out[i] = keyLabel{key: k, label: TitleCase(k)}
	}
	return out
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	textsort.Strings(out)
	return out
}
