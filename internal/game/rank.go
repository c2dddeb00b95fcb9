package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"deptsite/internal/models"
)

const (
	// IntroMatched introduces a ranking built from positive scores.
	IntroMatched = "Based on how you moved through the missions, these roles align most with the strengths and preferences you kept choosing."
	// IntroFallback introduces the starting points shown when nothing scored.
	IntroFallback = "Your choices didn't match any specific pattern strongly, which probably means you are open to many different roles. Here are a few starting points you could still explore:"

	fallbackCount = 3
	runnersUp     = 2
	topFieldCount = 3
	minBarPercent = 8.0
)

// Ranked is one career in the results.
type Ranked struct {
	CareerID    string
	Name        string
	Description string
	Tags        []string
	Known       bool
	Score       float64
	Position    int
}

// Badge labels the card by position.
func (r Ranked) Badge() string {
	switch r.Position {
	case 0:
		return "Top match"
	case 1:
		return "Also a strong fit"
	default:
		return "Worth exploring"
	}
}

// BadgeClass is the css modifier for the badge.
func (r Ranked) BadgeClass() string {
	switch r.Position {
	case 0:
		return "rank-1"
	case 1:
		return "rank-2"
	default:
		return "rank-3"
	}
}

// ScoreText formats the score without a trailing ".0".
func (r Ranked) ScoreText() string {
	return formatScore(r.Score)
}

// Bar is one row of the top-fields chart.
type Bar struct {
	Ranked
	Percent float64
}

// Label is "<n>. <name>".
func (b Bar) Label() string {
	return fmt.Sprintf("%d. %s", b.Position+1, b.Name)
}

// Meta is the first two tags of a known career. Categories with no catalogue
// entry get a generic caption.
func (b Bar) Meta() string {
	if !b.Known {
		return "Story alignment score"
	}
	n := min(2, len(b.Tags))
	return strings.Join(b.Tags[:n], " • ")
}

// Ranking is the presentation model shown when a playthrough finishes.
type Ranking struct {
	Fallback  bool
	Intro     string
	Presented []Ranked
	TopFields []Bar
}

// Rank orders positive scores and picks the careers to present: everything
// tied for first plus the next two. TopFields is always the first three of
// the ordering regardless of ties. With no positive score the first three
// known careers are offered instead.
func Rank(scores []Score, careers []models.Career) Ranking {
	byID := make(map[string]models.Career, len(careers))
	for _, c := range careers {
		byID[c.ID] = c
	}
	resolve := func(id string, v float64) Ranked {
		r := Ranked{CareerID: id, Name: id, Score: v}
		if c, ok := byID[id]; ok {
			r.Name = c.Name
			r.Description = c.Description
			r.Tags = c.Tags
			r.Known = true
		}
		return r
	}

	var positive []Score
	for _, s := range scores {
		if s.Value > 0 {
			positive = append(positive, s)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool { return positive[i].Value > positive[j].Value })

	if len(positive) == 0 {
		out := Ranking{Fallback: true, Intro: IntroFallback}
		for i, c := range careers {
			if i == fallbackCount {
				break
			}
			r := resolve(c.ID, 0)
			r.Position = i
			out.Presented = append(out.Presented, r)
		}
		return out
	}

	top := positive[0].Value
	groupLen := 0
	for groupLen < len(positive) && positive[groupLen].Value == top {
		groupLen++
	}
	end := min(len(positive), groupLen+runnersUp)

	out := Ranking{Intro: IntroMatched}
	for i, s := range positive[:end] {
		r := resolve(s.CareerID, s.Value)
		r.Position = i
		out.Presented = append(out.Presented, r)
	}

	fields := positive[:min(len(positive), topFieldCount)]
	values := make([]float64, len(fields))
	for i, s := range fields {
		values[i] = s.Value
	}
	widths := BarWidths(values)
	for i, s := range fields {
		r := resolve(s.CareerID, s.Value)
		r.Position = i
		out.TopFields = append(out.TopFields, Bar{Ranked: r, Percent: widths[i]})
	}
	return out
}

// BarWidths scales scores to percentages of the largest one. Positive
// widths below 8% are raised to 8% so small bars stay visible.
func BarWidths(scores []float64) []float64 {
	maxScore := 0.0
	for _, s := range scores {
		maxScore = max(maxScore, s)
	}
	out := make([]float64, len(scores))
	for i, s := range scores {
		if maxScore <= 0 {
			continue
		}
		p := s / maxScore * 100
		if p > 0 && p < minBarPercent {
			p = minBarPercent
		}
		out[i] = p
	}
	return out
}

// SummaryLine renders "Mission i – title" for a history entry.
func SummaryLine(i int, step models.Step) string {
	return fmt.Sprintf("Mission %d – %s", i+1, step.MissionTitle)
}

func missionProgress(index, count int) string {
	return fmt.Sprintf("Mission %d of %d", index+1, count)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
