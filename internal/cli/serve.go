package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/react-native-community/vscode-react-native-directory/internal/lsp"
)

func (c *CLI) serveCommand() *cobra.Command {
	var stdio bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server over stdio",
		Long: `Run the rndir language server on stdin/stdout.

Dependencies in package.json files opened by the client are annotated with
React Native Directory data: the inline label is published as an
informational diagnostic and the full summary is available on hover.

Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity := 0
			if c.Logger.GetLevel() <= log.DebugLevel {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)

			c.Logger.Info("starting language server", "base_url", c.cfg.BaseURL, "annotations", c.cfg.Annotations)
			return lsp.New(c.cfg, c.Logger).RunStdio()
		},
	}
	// Language clients commonly pass --stdio; it is the only transport.
	cmd.Flags().BoolVar(&stdio, "stdio", true, "communicate over stdin/stdout")
	_ = cmd.Flags().MarkHidden("stdio")
	return cmd
}
