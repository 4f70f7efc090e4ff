package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/devflow/internal/ui/styles"
)

// PickerItem is one selectable entry.
type PickerItem struct {
	Label       string // matched against the filter
	Description string // shown dimmed after the label
	Value       string
}

// itemSource implements fuzzy.Source for picker items.
type itemSource []PickerItem

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

// pickerModel is the bubbletea model for fuzzy selection
type pickerModel struct {
	title     string
	items     []PickerItem
	filtered  []fuzzy.Match
	textInput textinput.Model
	cursor    int
	selected  *PickerItem
	cancelled bool
	maxHeight int
}

func newPickerModel(title string, items []PickerItem) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.PromptStyle = styles.Selected

	m := pickerModel{
		title:     title,
		items:     items,
		textInput: ti,
		maxHeight: 10,
	}
	m.applyFilter()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				item := m.items[m.filtered[m.cursor].Index]
				m.selected = &item
			}
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter ranks items by the current query. An empty query keeps the
// original order.
func (m *pickerModel) applyFilter() {
	query := m.textInput.Value()
	if query == "" {
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i, item := range m.items {
			m.filtered[i] = fuzzy.Match{Str: item.Label, Index: i}
		}
	} else {
		m.filtered = fuzzy.FindFrom(query, itemSource(m.items))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m pickerModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.title + ":\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(styles.MutedStyle.Render("  No matches found"))
		sb.WriteString("\n")
	} else {
		start := 0
		end := len(m.filtered)
		if end > m.maxHeight {
			start = max(0, m.cursor-m.maxHeight/2)
			end = start + m.maxHeight
			if end > len(m.filtered) {
				end = len(m.filtered)
				start = max(0, end-m.maxHeight)
			}
		}

		for i := start; i < end; i++ {
			match := m.filtered[i]
			item := m.items[match.Index]
			selected := i == m.cursor

			if selected {
				sb.WriteString(styles.Selected.Render("> "))
			} else {
				sb.WriteString("  ")
			}
			sb.WriteString(highlightMatches(item.Label, match.MatchedIndexes, selected))
			if item.Description != "" {
				sb.WriteString(" " + styles.MutedStyle.Render(item.Description))
			}
			sb.WriteString("\n")
		}

		if len(m.filtered) > m.maxHeight {
			sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("\n  %d/%d", m.cursor+1, len(m.filtered))))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.MutedStyle.Render("↑/↓ navigate • enter select • esc cancel"))

	return sb.String()
}

// highlightMatches renders label with fuzzy-matched characters highlighted.
func highlightMatches(label string, matched []int, selected bool) string {
	base := styles.NormalStyle
	if selected {
		base = styles.Selected
	}
	if len(matched) == 0 {
		return base.Render(label)
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	// fuzzy reports byte offsets
	var b strings.Builder
	for i, r := range label {
		if matchSet[i] {
			b.WriteString(styles.Highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Pick shows an interactive fuzzy picker on out and returns the chosen
// item. ok is false when the user cancelled or items is empty.
func Pick(title string, items []PickerItem, out io.Writer) (PickerItem, bool, error) {
	if len(items) == 0 {
		return PickerItem{}, false, nil
	}

	p := tea.NewProgram(newPickerModel(title, items), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return PickerItem{}, false, err
	}

	m := finalModel.(pickerModel)
	if m.cancelled || m.selected == nil {
		return PickerItem{}, false, nil
	}
	return *m.selected, true, nil
}
