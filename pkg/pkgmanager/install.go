package pkgmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Installer runs install commands in a project directory.
type Installer struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	// DryRun prints the command to Stdout instead of running it.
	DryRun bool
}

// Install runs argv as built by [InstallCommand].
func (in *Installer) Install(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty install command")
	}
	if in.DryRun {
		if in.Stdout != nil {
			fmt.Fprintln(in.Stdout, strings.Join(argv, " "))
		}
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = in.Dir
	cmd.Stdout = in.Stdout
	cmd.Stderr = in.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}
