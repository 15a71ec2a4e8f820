package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
	"github.com/react-native-community/vscode-react-native-directory/pkg/format"
)

func (c *CLI) infoCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show a package's React Native Directory entry",
		Example: `  rndir info react-native-reanimated
  rndir info @shopify/flash-list -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			spin := newSpinner(ctx, os.Stderr, "Looking up "+args[0]+"...")
			spin.Start()
			lib, err := c.directoryClient().Package(ctx, args[0])
			spin.Stop()
			if err != nil {
				return err
			}

			switch output {
			case "", "text":
				return c.printPackage(lib)
			case "json":
				return writeJSON(c.out, lib)
			case "yaml":
				return writeYAML(c.out, lib)
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

// printPackage renders the package summary and its links, then suggests
// how to install it.
func (c *CLI) printPackage(lib *directory.Library) error {
	rendered, err := renderMarkdown(c.out, format.Tooltip(lib))
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, rendered)
	printLinks(c.out, lib)
	fmt.Fprintln(c.out)

	if lib.Unmaintained {
		printWarning(c.out, "%s is no longer maintained", lib.Name())
	}
	printNextStep(c.out, "Install", "rndir install "+lib.Name())
	printNextStep(c.out, "Pick a version", "rndir versions "+lib.Name())
	return nil
}

// writeYAML emits v with the same field names as its JSON encoding.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
