package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared CLI and TUI theme.

const (
	IconCompass = "🧭"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconMedal   = "🥈"
	IconStar    = "⭐"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "📦"
	IconRefresh = "🔁"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cSilver  = lipgloss.Color("250")
	cBronze  = lipgloss.Color("173")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	barFill  = lipgloss.NewStyle().Foreground(cPrimary)
	barTrack = lipgloss.NewStyle().Foreground(cMuted)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RankBadge styles a result badge by its css class (rank-1, rank-2, rank-3).
func RankBadge(class, label string) string {
	switch class {
	case "rank-1":
		return lipgloss.NewStyle().Bold(true).Foreground(cGold).Render(IconTrophy + " " + label)
	case "rank-2":
		return lipgloss.NewStyle().Bold(true).Foreground(cSilver).Render(IconMedal + " " + label)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(cBronze).Render(IconStar + " " + label)
	}
}

// Bar draws a horizontal bar width cells wide, filled to percent.
func Bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = max(0, min(width, filled))
	return barFill.Render(strings.Repeat("█", filled)) + barTrack.Render(strings.Repeat("░", width-filled))
}

// Freshness renders a cache entry's state.
func Freshness(stale bool) string {
	if stale {
		return Warn.Render("stale")
	}
	return Good.Render("fresh")
}
