package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette cell attributes are rendered with.
type Theme struct {
	Name string

	Surface       string
	SelectionBg   string
	SelectionText string
	MarkBg        string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string
	Info    string
}

// styleSet maps every Attr to the style its cells are rendered with.
type styleSet [attrCount]lipgloss.Style

// Styles returns the Lipgloss style of each cell attribute for the terminal
// behind r. A nil renderer uses Lipgloss' default (stdout).
func (t Theme) Styles(r *lipgloss.Renderer) styleSet {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	base := r.NewStyle().
		Background(lipgloss.Color(t.Surface)).
		Foreground(lipgloss.Color(t.Text))

	var s styleSet
	s[AttrNormal] = base
	s[AttrReverse] = r.NewStyle().
		Background(lipgloss.Color(t.SelectionBg)).
		Foreground(lipgloss.Color(t.SelectionText))
	s[AttrMarked] = r.NewStyle().
		Background(lipgloss.Color(t.MarkBg)).
		Foreground(lipgloss.Color(t.SelectionText)).
		Bold(true)
	s[AttrHeader] = base.
		Foreground(lipgloss.Color(t.Accent)).
		Bold(true)
	s[AttrMuted] = base.Foreground(lipgloss.Color(t.Muted))
	s[AttrAccent] = base.Foreground(lipgloss.Color(t.Accent))
	s[AttrDebug] = base.Foreground(lipgloss.Color(t.Faint))
	s[AttrInfo] = base.Foreground(lipgloss.Color(t.Info))
	s[AttrWarning] = base.Foreground(lipgloss.Color(t.Warning))
	s[AttrError] = base.
		Foreground(lipgloss.Color(t.Danger)).
		Bold(true)
	return s
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Surface:       "#282A36", // Background
		SelectionBg:   "#44475A", // Selection
		SelectionText: "#F8F8F2", // Foreground
		MarkBg:        "#6272A4", // Comment

		Text:    "#F8F8F2",
		Muted:   "#6272A4",
		Faint:   "#44475A",
		Accent:  "#BD93F9", // Purple
		Warning: "#FFB86C", // Orange
		Danger:  "#FF5555", // Red
		Info:    "#8BE9FD", // Cyan
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Surface:       "#0f172a", // slate-900
		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		MarkBg:        "#334155", // slate-700

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
