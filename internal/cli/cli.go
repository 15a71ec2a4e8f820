// Package cli implements the rndir command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/react-native-community/vscode-react-native-directory/pkg/buildinfo"
	"github.com/react-native-community/vscode-react-native-directory/pkg/config"
	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
	"github.com/react-native-community/vscode-react-native-directory/pkg/httputil"
	"github.com/react-native-community/vscode-react-native-directory/pkg/npm"
	"github.com/react-native-community/vscode-react-native-directory/pkg/pkgmanager"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configPath string
	cfg        config.Config
	breakers   *httputil.Breakers
	probe      pkgmanager.Prober
}

// New creates a CLI that logs to w at level. Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   buildinfo.Name,
		Short: "Browse React Native Directory and annotate package.json files",
		Long: `rndir brings React Native Directory data to editors and terminals.

Run "rndir serve" from an editor's language client to annotate package.json
dependencies inline, or use the search, info and install commands directly.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rndir/config.toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.annotateCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.installCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.breakers = httputil.NewBreakers(cfg.BreakerThreshold)
	registerHooks(c.Logger)
	c.Logger.Debug("configuration loaded", "base_url", cfg.BaseURL, "package_manager", cfg.PackageManager)
	return nil
}

func (c *CLI) directoryClient() *directory.Client {
	opts := []directory.Option{
		directory.WithBaseURL(c.cfg.BaseURL),
		directory.WithTimeout(c.cfg.Timeout()),
		directory.WithBreakers(c.breakers),
	}
	if c.cfg.UserAgent != "" {
		opts = append(opts, directory.WithUserAgent(c.cfg.UserAgent))
	}
	return directory.NewClient(opts...)
}

func (c *CLI) npmClient() *npm.Client {
	return npm.NewClient(c.cfg.RegistryURL, httputil.NewHTTPClient(c.cfg.Timeout()), c.breakers)
}
