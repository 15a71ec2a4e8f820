// Package pkgmanager works out which JavaScript package manager a project
// uses and composes the command that adds dependencies with it.
package pkgmanager
