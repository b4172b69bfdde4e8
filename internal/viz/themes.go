package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a readout colour scheme.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Graph   lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warning lipgloss.Color
	Border  lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "console",
		Title:   lipgloss.Color("#ffb000"),
		Label:   lipgloss.Color("#aa8844"),
		Value:   lipgloss.Color("#ffd27f"),
		Graph:   lipgloss.Color("#ffb000"),
		Muted:   lipgloss.Color("#665533"),
		Good:    lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ff5533"),
		Border:  lipgloss.Color("#554422"),
	},
	{
		Name:    "night",
		Title:   lipgloss.Color("86"),
		Label:   lipgloss.Color("245"),
		Value:   lipgloss.Color("252"),
		Graph:   lipgloss.Color("49"),
		Muted:   lipgloss.Color("240"),
		Good:    lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Border:  lipgloss.Color("240"),
	},
	{
		Name:    "minimal",
		Title:   lipgloss.Color("#ffffff"),
		Label:   lipgloss.Color("#888888"),
		Value:   lipgloss.Color("#ffffff"),
		Graph:   lipgloss.Color("#0088ff"),
		Muted:   lipgloss.Color("#555555"),
		Good:    lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ff0000"),
		Border:  lipgloss.Color("#444444"),
	},
}

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	panel   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	good    lipgloss.Style
	warning lipgloss.Style
	help    lipgloss.Style
	plan    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),
		title:   lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Label).Width(14),
		value:   lipgloss.NewStyle().Foreground(t.Value),
		graph:   lipgloss.NewStyle().Foreground(t.Graph),
		good:    lipgloss.NewStyle().Foreground(t.Good).Bold(true),
		warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		plan:    lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 1),
	}
}
