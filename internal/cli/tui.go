package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sahilm/fuzzy"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
	"github.com/react-native-community/vscode-react-native-directory/pkg/format"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// libraryNames adapts search results to fuzzy.Source, matching on the
// package name and description.
type libraryNames []directory.Library

func (l libraryNames) String(i int) string {
	return l[i].Name() + " " + l[i].GitHub.Description
}

func (l libraryNames) Len() int { return len(l) }

// PickerModel is the bubbletea model for choosing a search result. Typing
// narrows the list with fuzzy matching; the order of the server's results
// is kept when the filter is empty.
type PickerModel struct {
	Libraries []directory.Library
	Filter    string
	Visible   []int
	Cursor    int
	Offset    int
	Height    int
	Selected  *directory.Library
	Title     string
}

// NewPickerModel creates a picker over libs.
func NewPickerModel(title string, libs []directory.Library) PickerModel {
	m := PickerModel{Libraries: libs, Height: 12, Title: title}
	m.applyFilter()
	return m
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				m.Offset = min(m.Offset, m.Cursor)
			}
		case tea.KeyDown:
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(m.Visible) == 0 {
				return m, nil
			}
			lib := m.Libraries[m.Visible[m.Cursor]]
			m.Selected = &lib
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.applyFilter()
			}
		case tea.KeySpace:
			m.Filter += " "
			m.applyFilter()
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.applyFilter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
	}
	return m, nil
}

func (m *PickerModel) applyFilter() {
	m.Cursor, m.Offset = 0, 0
	if strings.TrimSpace(m.Filter) == "" {
		m.Visible = make([]int, len(m.Libraries))
		for i := range m.Libraries {
			m.Visible[i] = i
		}
		return
	}
	matches := fuzzy.FindFrom(m.Filter, libraryNames(m.Libraries))
	m.Visible = make([]int, len(matches))
	for i, match := range matches {
		m.Visible[i] = match.Index
	}
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n")
	b.WriteString("> " + m.Filter)
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matches"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		lib := &m.Libraries[m.Visible[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, lib.Name(), format.Label(lib), strings.Join(format.Platforms(lib), ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Stats", "Platforms").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Visible) {
				return lipgloss.NewStyle()
			}
			lib := &m.Libraries[m.Visible[idx]]
			style := lipgloss.NewStyle()
			if lib.Unmaintained {
				style = style.Foreground(colorYellow)
			}
			if idx == m.Cursor {
				if !lib.Unmaintained {
					style = style.Foreground(colorCyan)
				}
				return style.Bold(true)
			}
			if col == 3 {
				return style.Foreground(colorDim)
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	return b.String()
}

// runPicker shows the picker and returns the chosen library, or nil when
// the user quits.
func runPicker(title string, libs []directory.Library) (*directory.Library, error) {
	final, err := tea.NewProgram(NewPickerModel(title, libs)).Run()
	if err != nil {
		return nil, err
	}
	return final.(PickerModel).Selected, nil
}
