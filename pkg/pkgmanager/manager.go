package pkgmanager

import (
	"fmt"
	"strings"
)

// Manager names a JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
	Bun  Manager = "bun"
)

// Auto selects detection instead of a fixed manager.
const Auto = "auto"

// All lists the supported managers in detection priority order.
var All = []Manager{Yarn, PNPM, Bun, NPM}

// Parse validates a manager name. It is case-insensitive.
func Parse(s string) (Manager, error) {
	m := Manager(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case NPM, Yarn, PNPM, Bun:
		return m, nil
	}
	return "", fmt.Errorf("unknown package manager %q (want npm, yarn, pnpm or bun)", s)
}

// InstallCommand returns the argv that adds specs to the project. Specs are
// passed through untouched, so "name@version" pins a version.
func InstallCommand(m Manager, specs []string, dev bool) []string {
	var argv []string
	switch m {
	case Yarn:
		argv = []string{"yarn", "add"}
	case PNPM:
		argv = []string{"pnpm", "add"}
	case Bun:
		argv = []string{"bun", "add"}
	default:
		argv = []string{"npm", "install"}
	}
	if dev {
		argv = append(argv, devFlag(m))
	}
	return append(argv, specs...)
}

func devFlag(m Manager) string {
	switch m {
	case Yarn, Bun:
		return "--dev"
	default:
		return "--save-dev"
	}
}
