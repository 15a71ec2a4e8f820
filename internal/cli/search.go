package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
)

const defaultSearchLimit = 30

func (c *CLI) searchCommand() *cobra.Command {
	var (
		limit int
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search React Native Directory",
		Long: `Search the React Native Directory catalog, most downloaded first.

Filter with keywords anywhere in the query, for example
":ios :newarchitecture camera". Supported keywords:

  ` + strings.Join(directory.Keywords(), " ") + `

On a terminal the results open in an interactive picker; pick a package
to see its details. Use --plain for a static list.`,
		Example: `  rndir search svg
  rndir search :expogo :hastypes maps
  rndir search navigation --plain --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			query := directory.ParseQuery(strings.Join(args, " "))
			query.Limit = limit
			c.Logger.Debug("searching", "text", query.Text, "filters", query.Filters)

			spin := newSpinner(ctx, os.Stderr, "Searching React Native Directory...")
			spin.Start()
			result, err := c.directoryClient().Search(ctx, query)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			if len(result.Libraries) == 0 {
				printWarning(c.out, "no packages match %q", strings.Join(args, " "))
				return nil
			}

			if plain || !isTerminal(os.Stdin) || !isTerminal(c.out) {
				c.printSearchResults(result)
				return nil
			}

			title := fmt.Sprintf("React Native Directory: %d of %d packages", len(result.Libraries), result.Total)
			lib, err := runPicker(title, result.Libraries)
			if err != nil || lib == nil {
				return err
			}
			return c.printPackage(lib)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultSearchLimit, "maximum number of results")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a static list instead of the interactive picker")
	return cmd
}

func (c *CLI) printSearchResults(result *directory.SearchResult) {
	for i := range result.Libraries {
		printLibraryLine(c.out, &result.Libraries[i])
	}
	fmt.Fprintln(c.out, StyleDim.Render(fmt.Sprintf("%d of %d packages", len(result.Libraries), result.Total)))
}
