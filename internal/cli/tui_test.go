package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
)

func pickerLibs() []directory.Library {
	return []directory.Library{
		{NpmPkg: "react-native-svg", GitHub: directory.GitHub{Name: "react-native-svg"}},
		{NpmPkg: "@shopify/flash-list", GitHub: directory.GitHub{Name: "flash-list"}},
		{NpmPkg: "react-native-maps", GitHub: directory.GitHub{Name: "react-native-maps"}},
	}
}

func press(m PickerModel, msg tea.KeyMsg) PickerModel {
	next, _ := m.Update(msg)
	return next.(PickerModel)
}

func typeText(m PickerModel, s string) PickerModel {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestPickerKeepsServerOrder(t *testing.T) {
	m := NewPickerModel("results", pickerLibs())
	if got := m.Visible; len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Visible = %v, want [0 1 2]", got)
	}
}

func TestPickerFilter(t *testing.T) {
	m := typeText(NewPickerModel("results", pickerLibs()), "flash")
	if len(m.Visible) != 1 || m.Libraries[m.Visible[0]].NpmPkg != "@shopify/flash-list" {
		t.Fatalf("Visible = %v, want only flash-list", m.Visible)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Filter != "flas" {
		t.Errorf("Filter = %q after backspace, want %q", m.Filter, "flas")
	}
}

func TestPickerNavigateAndSelect(t *testing.T) {
	m := NewPickerModel("results", pickerLibs())
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 2 {
		t.Fatalf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PickerModel)
	if cmd == nil {
		t.Error("enter should quit the program")
	}
	if m.Selected == nil || m.Selected.NpmPkg != "@shopify/flash-list" {
		t.Errorf("Selected = %+v, want flash-list", m.Selected)
	}
}

func TestPickerEnterWithNoMatches(t *testing.T) {
	m := typeText(NewPickerModel("results", pickerLibs()), "zzzz")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || next.(PickerModel).Selected != nil {
		t.Error("enter with no matches should do nothing")
	}
	if !strings.Contains(m.View(), "no matches") {
		t.Error("View() should report no matches")
	}
}

func TestPickerView(t *testing.T) {
	view := NewPickerModel("React Native Directory", pickerLibs()).View()
	for _, want := range []string{"React Native Directory", "react-native-svg", "@shopify/flash-list", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
