package format

import (
	"fmt"
	"strings"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
)

const linkSeparator = " · "

// Label is the short inline summary shown next to a dependency:
// stars, downloads, maintenance and New Architecture markers.
func Label(lib *directory.Library) string {
	parts := []string{"★ " + Compact(lib.GitHub.Stats.Stars)}
	if d := lib.Downloads(); d > 0 {
		parts = append(parts, "⧨ "+Compact(d))
	}
	if lib.Unmaintained {
		parts = append(parts, "• Unmaintained")
	}
	if lib.NewArchitecture.Supported() || lib.ExpoGo.Set {
		marker := "• New Architecture"
		if lib.NewArchitecture == directory.NewArchOnly {
			marker += " only"
		}
		parts = append(parts, marker)
	}
	return strings.Join(parts, " ")
}

type platform struct {
	name string
	flag func(*directory.Library) directory.Flag
}

var platforms = []platform{
	{"Android", func(l *directory.Library) directory.Flag { return l.Android }},
	{"iOS", func(l *directory.Library) directory.Flag { return l.IOS }},
	{"macOS", func(l *directory.Library) directory.Flag { return l.MacOS }},
	{"tvOS", func(l *directory.Library) directory.Flag { return l.TVOS }},
	{"visionOS", func(l *directory.Library) directory.Flag { return l.VisionOS }},
	{"Web", func(l *directory.Library) directory.Flag { return l.Web }},
	{"Windows", func(l *directory.Library) directory.Flag { return l.Windows }},
	{"Fire OS", func(l *directory.Library) directory.Flag { return l.FireOS }},
	{"Horizon", func(l *directory.Library) directory.Flag { return l.Horizon }},
	{"Vega OS", func(l *directory.Library) directory.Flag { return l.VegaOS }},
}

// Platforms lists the supported platforms in a fixed order.
func Platforms(lib *directory.Library) []string {
	var out []string
	for _, p := range platforms {
		if p.flag(lib).Set {
			out = append(out, p.name)
		}
	}
	return out
}

// Compatibility lists the Expo integrations a package offers.
func Compatibility(lib *directory.Library) []string {
	var out []string
	if lib.ExpoGo.Set {
		out = append(out, "Expo Go")
	}
	if lib.ConfigPlugin.Set {
		out = append(out, "Config plugin")
	}
	return out
}

// Detail is the one-line stats summary used under search results and in the
// tooltip: stars, forks, downloads, platforms and quality markers.
func Detail(lib *directory.Library) string {
	parts := []string{
		"★ " + Compact(lib.GitHub.Stats.Stars),
		"⑂ " + Compact(lib.GitHub.Stats.Forks),
	}
	if d := lib.Downloads(); d > 0 {
		parts = append(parts, "⧨ "+Compact(d))
	}
	if p := Platforms(lib); len(p) > 0 {
		parts = append(parts, "•", strings.Join(p, ", "))
	}
	var markers []string
	if lib.NewArchitecture.Supported() {
		markers = append(markers, "✓ New Architecture")
	}
	if lib.GitHub.HasTypes {
		markers = append(markers, "TS Types")
	}
	if len(markers) > 0 {
		parts = append(parts, "•")
		parts = append(parts, markers...)
	}
	return strings.Join(parts, " ")
}

// Tooltip renders the Markdown hover for lib. Output depends only on lib.
func Tooltip(lib *directory.Library) string {
	var b strings.Builder
	name := lib.Name()

	fmt.Fprintf(&b, "📦 **%s**", name)
	if lib.Unmaintained {
		b.WriteString(" ⚠️ Unmaintained")
	}
	b.WriteString("\n\n")

	if d := strings.TrimSpace(lib.GitHub.Description); d != "" {
		b.WriteString(d)
		b.WriteString("\n\n")
	}

	platformList := strings.Join(Platforms(lib), ", ")
	if platformList == "" {
		platformList = "none listed"
	}
	fmt.Fprintf(&b, "- **Platforms:** %s\n", platformList)
	if c := Compatibility(lib); len(c) > 0 {
		fmt.Fprintf(&b, "- **Compatibility:** %s\n", strings.Join(c, ", "))
	}
	fmt.Fprintf(&b, "- **Directory score:** %d/100\n", lib.Score)
	if lic := lib.GitHub.License; lic != nil && lic.SpdxID != "" {
		fmt.Fprintf(&b, "- **License:** %s\n", lic.SpdxID)
	}
	if lib.Unmaintained && len(lib.Alternatives) > 0 {
		fmt.Fprintf(&b, "- **Alternatives:** `%s`\n", strings.Join(lib.Alternatives, ", "))
	}
	b.WriteString("\n")

	b.WriteString(Detail(lib))
	b.WriteString("\n\n---\n")

	links := directory.LinksFor(lib)
	entries := []string{fmt.Sprintf("[React Native Directory](%s)", links.Directory)}
	if links.Repository != "" {
		entries = append(entries, fmt.Sprintf("[GitHub](%s)", links.Repository))
	}
	entries = append(entries,
		fmt.Sprintf("[npm](%s)", links.Npm),
		fmt.Sprintf("[Bundlephobia](%s)", links.Bundlephobia),
	)
	b.WriteString(strings.Join(entries, linkSeparator))
	return b.String()
}
