package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/react-native-community/vscode-react-native-directory/pkg/npm"
)

func (c *CLI) versionsCommand() *cobra.Command {
	var (
		all    bool
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "versions <package>",
		Short: "List published versions of a package",
		Long: `List the versions of a package published to the npm registry, newest
first. Prereleases are hidden unless --all is given.`,
		Example: `  rndir versions react-native-svg
  rndir versions @react-navigation/native --all --limit 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			prog := newProgress(c.Logger)

			spin := newSpinner(ctx, os.Stderr, "Fetching versions of "+args[0]+"...")
			spin.Start()
			versions, err := c.npmClient().FetchVersions(ctx, args[0])
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done("fetched versions", "package", versions.Name, "count", len(versions.Versions))

			if output == "json" {
				return writeJSON(c.out, versions)
			}
			c.printVersions(versions, all, limit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include prereleases")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of versions to list (0 for all)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}

func (c *CLI) printVersions(v *npm.Versions, all bool, limit int) {
	fmt.Fprintln(c.out, StyleTitle.Render(v.Name))

	tags := make([]string, 0, len(v.DistTags))
	for tag := range v.DistTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		printKeyValue(c.out, tag, v.DistTags[tag])
	}
	fmt.Fprintln(c.out)

	list := v.Versions
	if !all {
		list = v.Stable()
	}
	shown := list
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, ver := range shown {
		line := "  " + StyleValue.Render(ver)
		if msg, ok := v.Deprecated[ver]; ok {
			line += "  " + StyleWarning.Render("deprecated: "+msg)
		}
		fmt.Fprintln(c.out, line)
	}
	if len(shown) < len(list) {
		fmt.Fprintln(c.out, StyleDim.Render(fmt.Sprintf("  … %d more", len(list)-len(shown))))
	}
}
