package pkgmanager

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

var lockfiles = []struct {
	name    string
	manager Manager
}{
	{"yarn.lock", Yarn},
	{"pnpm-lock.yaml", PNPM},
	{"bun.lock", Bun},
	{"bun.lockb", Bun},
	{"package-lock.json", NPM},
}

var versionPattern = regexp.MustCompile(`^\d+.\d+.\d+$`)

// probeTimeout bounds each `<manager> --version` call.
const probeTimeout = 5 * time.Second

// Prober reports the version printed by a globally installed manager.
type Prober interface {
	Version(ctx context.Context, m Manager) (string, error)
}

// ExecProber runs `<manager> --version` on the PATH.
type ExecProber struct{}

func (ExecProber) Version(ctx context.Context, m Manager) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, string(m), "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// FromLockfile picks the manager whose lockfile is present in dir.
func FromLockfile(dir string) (Manager, bool) {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(dir, lf.name)); err == nil {
			return lf.manager, true
		}
	}
	return "", false
}

// Detect chooses the manager for the project in dir: a lockfile wins;
// otherwise yarn, pnpm and bun are probed concurrently and the first
// installed one in that order is used. npm is the fallback. Decisions are
// logged at debug level to the logger carried by ctx.
func Detect(ctx context.Context, dir string, prober Prober) Manager {
	logger := log.FromContext(ctx)
	if m, ok := FromLockfile(dir); ok {
		logger.Debug("package manager from lockfile", "manager", m, "dir", dir)
		return m
	}
	if prober == nil {
		prober = ExecProber{}
	}

	candidates := []Manager{Yarn, PNPM, Bun}
	installed := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range candidates {
		g.Go(func() error {
			v, err := prober.Version(gctx, m)
			installed[i] = err == nil && versionPattern.MatchString(v)
			logger.Debug("probed package manager", "manager", m, "version", v, "installed", installed[i])
			return nil
		})
	}
	_ = g.Wait()

	for i, ok := range installed {
		if ok {
			return candidates[i]
		}
	}
	return NPM
}

// Resolve honours a configured manager and detects one when configured is
// empty or "auto".
func Resolve(ctx context.Context, configured, dir string, prober Prober) (Manager, error) {
	if configured == "" || strings.EqualFold(configured, Auto) {
		return Detect(ctx, dir, prober), nil
	}
	return Parse(configured)
}
