package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// SpecEntry is one candidate file in the spec picker.
type SpecEntry struct {
	Path     string
	Kind     chart.Kind
	Title    string
	Datasets int
	Labels   int
	Err      error // parse or validation failure; the entry cannot be chosen
}

// scanSpecs parses every .json file directly under dir, sorted by name.
func scanSpecs(dir string) ([]SpecEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	entries := make([]SpecEntry, 0, len(matches))
	for _, path := range matches {
		e := SpecEntry{Path: path}
		data, err := os.ReadFile(path)
		if err == nil {
			var spec *chart.Spec
			if spec, err = chart.Parse(data); err == nil {
				e.Kind = spec.Kind
				e.Datasets = len(spec.Datasets())
				e.Labels = len(spec.Labels())
				if ts, ok := spec.Options.TitleStyle(); ok {
					e.Title = ts.Text
				}
			}
		}
		e.Err = err
		entries = append(entries, e)
	}
	return entries, nil
}

// =============================================================================
// SpecListModel - Interactive spec selection
// =============================================================================

// SpecListModel is the bubbletea model for interactive spec selection.
type SpecListModel struct {
	Specs    []SpecEntry
	Cursor   int
	Selected *SpecEntry
	Height   int
	Offset   int
}

// NewSpecListModel creates a new spec list model.
func NewSpecListModel(specs []SpecEntry) SpecListModel {
	return SpecListModel{Specs: specs, Height: 15}
}

func (m SpecListModel) Init() tea.Cmd {
	return nil
}

func (m SpecListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Specs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Specs) == 0 || m.Specs[m.Cursor].Err != nil {
				return m, nil
			}
			s := m.Specs[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m SpecListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Specs))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Specs[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind, series, labels, note := "—", "—", "—", s.Title
		if s.Err != nil {
			note = errors.UserMessage(s.Err)
		} else {
			kind = string(s.Kind)
			series = strconv.Itoa(s.Datasets)
			labels = strconv.Itoa(s.Labels)
		}
		rows = append(rows, []string{cursor, filepath.Base(s.Path), kind, series, labels, note})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Kind", "Series", "Labels", "Title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Specs) {
				return lipgloss.NewStyle()
			}
			s := m.Specs[idx]
			base := lipgloss.NewStyle()
			switch {
			case s.Err != nil:
				base = base.Foreground(colorDim)
			case col == 5:
				base = base.Foreground(colorGray)
			default:
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Specs))))

	return b.String()
}
