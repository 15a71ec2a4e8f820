package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/react-native-community/vscode-react-native-directory/pkg/pkgmanager"
)

func (c *CLI) installCommand() *cobra.Command {
	var (
		dev    bool
		pm     string
		dryRun bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "install <package[@version]>...",
		Short: "Install packages with the project's package manager",
		Long: `Install packages into the project in --dir using npm, yarn, pnpm or bun.

The package manager comes from --pm, then the package_manager setting,
then the project's lockfile, then whichever of yarn, pnpm or bun is
installed globally. npm is the fallback.

Packages the directory marks as unmaintained are reported together with
their suggested alternatives before installing.`,
		Example: `  rndir install react-native-svg
  rndir install @shopify/flash-list@1.7.0 --pm yarn
  rndir install react-native-reanimated --dev --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			configured := c.cfg.PackageManager
			if pm != "" {
				configured = pm
			}
			manager, err := pkgmanager.Resolve(ctx, configured, dir, c.prober())
			if err != nil {
				return err
			}
			c.Logger.Debug("resolved package manager", "manager", manager, "dir", dir)

			c.warnUnmaintained(cmd, args)

			argv := pkgmanager.InstallCommand(manager, args, dev)
			if !dryRun {
				printInfo(c.out, "running %s", styleCommand.Render(strings.Join(argv, " ")))
			}
			installer := &pkgmanager.Installer{Dir: dir, Stdout: c.out, Stderr: os.Stderr, DryRun: dryRun}
			if err := installer.Install(ctx, argv); err != nil {
				return err
			}
			if !dryRun {
				printSuccess(c.out, "installed %s", strings.Join(args, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dev, "dev", "D", false, "save as a development dependency")
	cmd.Flags().StringVar(&pm, "pm", "", "package manager: npm, yarn, pnpm, bun or auto")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the install command without running it")
	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	return cmd
}

func (c *CLI) prober() pkgmanager.Prober {
	if c.probe != nil {
		return c.probe
	}
	return pkgmanager.ExecProber{}
}

// warnUnmaintained looks the packages up in the directory and warns about
// unmaintained ones. Lookup failures never block an install.
func (c *CLI) warnUnmaintained(cmd *cobra.Command, specs []string) {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = specName(s)
	}
	libs, err := c.directoryClient().Lookup(cmd.Context(), names)
	if err != nil {
		c.Logger.Debug("directory lookup failed", "err", err)
		return
	}
	for _, name := range names {
		lib, ok := libs[name]
		if !ok || !lib.Unmaintained {
			continue
		}
		msg := fmt.Sprintf("%s is no longer maintained", name)
		if len(lib.Alternatives) > 0 {
			msg += "; consider " + strings.Join(lib.Alternatives, ", ")
		}
		printWarning(c.out, "%s", msg)
	}
}

// specName strips a version from an install spec, keeping the scope of
// scoped packages: "@scope/pkg@1.0" becomes "@scope/pkg".
func specName(spec string) string {
	if i := strings.LastIndex(spec, "@"); i > 0 {
		return spec[:i]
	}
	return spec
}
