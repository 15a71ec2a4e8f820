package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
	"github.com/react-native-community/vscode-react-native-directory/pkg/format"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printLibraryLine prints the two-line search result entry: name with its
// inline label, then the description and stats detail.
func printLibraryLine(w io.Writer, lib *directory.Library) {
	name := StyleTitle.Render(lib.Name())
	if lib.Unmaintained {
		name += " " + StyleWarning.Render("(unmaintained)")
	}
	fmt.Fprintln(w, name+"  "+StyleNumber.Render(format.Label(lib)))
	if d := strings.TrimSpace(lib.GitHub.Description); d != "" {
		fmt.Fprintln(w, "  "+d)
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(format.Detail(lib)))
}

// printLinks lists the outbound links of lib.
func printLinks(w io.Writer, lib *directory.Library) {
	links := directory.LinksFor(lib)
	for _, l := range []struct{ key, url string }{
		{"Directory", links.Directory},
		{"Repository", links.Repository},
		{"Homepage", links.Homepage},
		{"npm", links.Npm},
		{"Bundlephobia", links.Bundlephobia},
		{"License", links.License},
	} {
		if l.url != "" {
			fmt.Fprintln(w, styleKey.Render(l.key)+" "+StyleLink.Render(l.url))
		}
	}
}
