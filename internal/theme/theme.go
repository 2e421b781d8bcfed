package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette for the TUI.
type Theme struct {
	Name string

	Primary lipgloss.Color
	Accent  lipgloss.Color

	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color

	// Listing entries
	Drive  lipgloss.Color
	Folder lipgloss.Color
	File   lipgloss.Color
	Size   lipgloss.Color

	// Breadcrumb bar
	Host       lipgloss.Color
	Crumb      lipgloss.Color
	CrumbIndex lipgloss.Color

	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

var themes = map[string]Theme{
	"default": Default,
	"gruvbox": Gruvbox,
	"nord":    Nord,
	"dracula": Dracula,
}

var Default = Theme{
	Name:        "default",
	Primary:     lipgloss.Color("#7C3AED"),
	Accent:      lipgloss.Color("#F59E0B"),
	Text:        lipgloss.Color("#E2E8F0"),
	TextDim:     lipgloss.Color("#64748B"),
	TextBright:  lipgloss.Color("#F8FAFC"),
	Surface:     lipgloss.Color("#1E293B"),
	Border:      lipgloss.Color("#334155"),
	BorderFocus: lipgloss.Color("#7C3AED"),
	Selection:   lipgloss.Color("#312E81"),
	Drive:       lipgloss.Color("#F472B6"),
	Folder:      lipgloss.Color("#38BDF8"),
	File:        lipgloss.Color("#E2E8F0"),
	Size:        lipgloss.Color("#94A3B8"),
	Host:        lipgloss.Color("#34D399"),
	Crumb:       lipgloss.Color("#A78BFA"),
	CrumbIndex:  lipgloss.Color("#F59E0B"),
	Error:       lipgloss.Color("#EF4444"),
	Success:     lipgloss.Color("#22C55E"),
	Warning:     lipgloss.Color("#F59E0B"),
}

var Gruvbox = Theme{
	Name:        "gruvbox",
	Primary:     lipgloss.Color("#D65D0E"),
	Accent:      lipgloss.Color("#D79921"),
	Text:        lipgloss.Color("#EBDBB2"),
	TextDim:     lipgloss.Color("#928374"),
	TextBright:  lipgloss.Color("#FBF1C7"),
	Surface:     lipgloss.Color("#3C3836"),
	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#D65D0E"),
	Selection:   lipgloss.Color("#504945"),
	Drive:       lipgloss.Color("#D3869B"),
	Folder:      lipgloss.Color("#83A598"),
	File:        lipgloss.Color("#EBDBB2"),
	Size:        lipgloss.Color("#A89984"),
	Host:        lipgloss.Color("#B8BB26"),
	Crumb:       lipgloss.Color("#FE8019"),
	CrumbIndex:  lipgloss.Color("#FABD2F"),
	Error:       lipgloss.Color("#FB4934"),
	Success:     lipgloss.Color("#B8BB26"),
	Warning:     lipgloss.Color("#FABD2F"),
}

var Nord = Theme{
	Name:        "nord",
	Primary:     lipgloss.Color("#88C0D0"),
	Accent:      lipgloss.Color("#EBCB8B"),
	Text:        lipgloss.Color("#D8DEE9"),
	TextDim:     lipgloss.Color("#4C566A"),
	TextBright:  lipgloss.Color("#ECEFF4"),
	Surface:     lipgloss.Color("#3B4252"),
	Border:      lipgloss.Color("#434C5E"),
	BorderFocus: lipgloss.Color("#88C0D0"),
	Selection:   lipgloss.Color("#434C5E"),
	Drive:       lipgloss.Color("#B48EAD"),
	Folder:      lipgloss.Color("#81A1C1"),
	File:        lipgloss.Color("#D8DEE9"),
	Size:        lipgloss.Color("#616E88"),
	Host:        lipgloss.Color("#A3BE8C"),
	Crumb:       lipgloss.Color("#8FBCBB"),
	CrumbIndex:  lipgloss.Color("#EBCB8B"),
	Error:       lipgloss.Color("#BF616A"),
	Success:     lipgloss.Color("#A3BE8C"),
	Warning:     lipgloss.Color("#EBCB8B"),
}

var Dracula = Theme{
	Name:        "dracula",
	Primary:     lipgloss.Color("#BD93F9"),
	Accent:      lipgloss.Color("#F1FA8C"),
	Text:        lipgloss.Color("#F8F8F2"),
	TextDim:     lipgloss.Color("#6272A4"),
	TextBright:  lipgloss.Color("#FFFFFF"),
	Surface:     lipgloss.Color("#44475A"),
	Border:      lipgloss.Color("#44475A"),
	BorderFocus: lipgloss.Color("#BD93F9"),
	Selection:   lipgloss.Color("#44475A"),
	Drive:       lipgloss.Color("#FF79C6"),
	Folder:      lipgloss.Color("#8BE9FD"),
	File:        lipgloss.Color("#F8F8F2"),
	Size:        lipgloss.Color("#6272A4"),
	Host:        lipgloss.Color("#50FA7B"),
	Crumb:       lipgloss.Color("#BD93F9"),
	CrumbIndex:  lipgloss.Color("#FFB86C"),
	Error:       lipgloss.Color("#FF5555"),
	Success:     lipgloss.Color("#50FA7B"),
	Warning:     lipgloss.Color("#F1FA8C"),
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns the available theme names in order.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
