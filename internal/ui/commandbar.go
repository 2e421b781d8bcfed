package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/fsurf/internal/theme"
)

// CommandType identifies the kind of command bar interaction.
type CommandType int

const (
	CommandNone   CommandType = iota
	CommandEx                 // : commands
	CommandFilter             // / name filter
)

// CommandResult is emitted when a command is submitted.
type CommandResult struct {
	Type  CommandType
	Value string
}

// Completions feeds Tab completion. Commands completes the first word of a
// : command, Paths the argument of any command in PathCommands, and Names
// a / filter.
type Completions struct {
	Commands     []string
	PathCommands []string
	Paths        []string
	Names        []string
}

var commandPrompts = map[CommandType]struct{ prompt, placeholder string }{
	CommandEx:     {":", "open PATH, jump N, root, sort KEY, theme NAME, q (Tab completes)"},
	CommandFilter: {"/", "filter names, empty clears (Tab completes)"},
}

// CommandBar reads : commands and / filters with Tab completion and, for
// commands, Up/Down recall.
type CommandBar struct {
	input   textinput.Model
	cmdType CommandType
	width   int

	comp    Completions
	matches int // candidates for the last Tab, shown while > 1

	recall  []string
	recallN int // 0 is the live input, n the n-th newest entry
}

// NewCommandBar creates a new command bar.
func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.CharLimit = 256
	return CommandBar{input: ti}
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// SetCompletions replaces the Tab completion candidates.
func (c *CommandBar) SetCompletions(comp Completions) {
	c.comp = comp
}

// Open activates the command bar in the given mode.
func (c *CommandBar) Open(ct CommandType) tea.Cmd {
	c.cmdType = ct
	c.input.Reset()
	c.matches, c.recallN = 0, 0
	p := commandPrompts[ct]
	c.input.Prompt, c.input.Placeholder = p.prompt, p.placeholder
	return c.input.Focus()
}

// Close deactivates the command bar.
func (c *CommandBar) Close() {
	c.cmdType = CommandNone
	c.matches = 0
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the command bar is open.
func (c *CommandBar) IsActive() bool {
	return c.cmdType != CommandNone
}

// Type returns the current command type.
func (c *CommandBar) Type() CommandType {
	return c.cmdType
}

// Value returns the text typed so far.
func (c *CommandBar) Value() string {
	return c.input.Value()
}

// SetValue pre-fills the input.
func (c *CommandBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Submit closes the bar and returns what was typed. Commands are kept for
// recall, skipping repeats of the newest one.
func (c *CommandBar) Submit() CommandResult {
	res := CommandResult{Type: c.cmdType, Value: strings.TrimSpace(c.input.Value())}
	if res.Type == CommandEx && res.Value != "" {
		if n := len(c.recall); n == 0 || c.recall[n-1] != res.Value {
			c.recall = append(c.recall, res.Value)
		}
	}
	c.Close()
	return res
}

// Complete extends the word under completion to the longest prefix shared
// by its candidates, and returns how many candidates there were. A unique
// command name gets a trailing space.
func (c *CommandBar) Complete() int {
	val := c.input.Value()
	var head, word string
	var pool []string

	switch c.cmdType {
	case CommandFilter:
		word, pool = val, c.comp.Names
	case CommandEx:
		name, rest, hasArg := strings.Cut(val, " ")
		if !hasArg {
			word, pool = val, c.comp.Commands
			break
		}
		if !contains(c.comp.PathCommands, name) {
			return 0
		}
		head, word, pool = name+" ", strings.TrimLeft(rest, " "), c.comp.Paths
	default:
		return 0
	}

	var found []string
	for _, cand := range pool {
		if hasPrefixFold(cand, word) {
			found = append(found, cand)
		}
	}
	c.matches = len(found)
	if len(found) == 0 {
		return 0
	}

	completed := commonPrefixFold(found)
	if len(found) == 1 && c.cmdType == CommandEx && head == "" {
		completed += " "
	}
	c.SetValue(head + completed)
	return len(found)
}

// Update processes messages for the command bar.
func (c *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	if !c.IsActive() {
		return c, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			c.Close()
			return c, nil
		case tea.KeyEnter:
			// The app submits.
			return c, nil
		case tea.KeyTab:
			c.Complete()
			return c, nil
		case tea.KeyUp:
			c.recallStep(1)
			return c, nil
		case tea.KeyDown:
			c.recallStep(-1)
			return c, nil
		}
		c.matches = 0
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// recallStep moves through earlier commands; stepping below the newest
// clears the input.
func (c *CommandBar) recallStep(delta int) {
	if c.cmdType != CommandEx || len(c.recall) == 0 {
		return
	}
	n := c.recallN + delta
	if n < 0 || n > len(c.recall) {
		return
	}
	c.recallN = n
	if n == 0 {
		c.input.Reset()
		return
	}
	c.SetValue(c.recall[len(c.recall)-n])
}

// View renders the command bar with a match count after an ambiguous Tab.
func (c *CommandBar) View() string {
	if !c.IsActive() {
		return ""
	}
	t := theme.Current

	line := c.input.View()
	if c.matches > 1 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render(fmt.Sprintf("%d matches", c.matches))
		if gap := c.width - lipgloss.Width(line) - lipgloss.Width(hint); gap > 0 {
			line += strings.Repeat(" ", gap) + hint
		}
	}
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width).
		Render(line)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// commonPrefixFold returns the longest case-insensitive common prefix of
// list, spelled as in its first element.
func commonPrefixFold(list []string) string {
	first := list[0]
	end := len(first)
	for _, s := range list[1:] {
		i := 0
		for i < end && i < len(s) {
			r1, n1 := utf8.DecodeRuneInString(first[i:])
			r2, n2 := utf8.DecodeRuneInString(s[i:])
			if n1 != n2 || unicode.ToLower(r1) != unicode.ToLower(r2) {
				break
			}
			i += n1
		}
		end = i
	}
	return first[:end]
}
