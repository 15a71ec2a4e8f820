package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/react-native-community/vscode-react-native-directory/pkg/annotate"
	"github.com/react-native-community/vscode-react-native-directory/pkg/manifest"
)

func (c *CLI) annotateCommand() *cobra.Command {
	var (
		hover  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "annotate [package.json]",
		Short: "Print directory annotations for a manifest's dependencies",
		Long: `Annotate the dependencies and peerDependencies of a package.json the way
the language server does, printing one line per annotated entry:

  line:column  name  label

Packages unknown to React Native Directory are skipped.`,
		Example: `  rndir annotate
  rndir annotate apps/mobile/package.json --hover
  rndir annotate -o json | jq '.[].label'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifest.FileName
			if len(args) > 0 {
				path = args[0]
			}
			ctx := withLogger(cmd.Context(), c.Logger)

			decorations, err := annotateFile(ctx, c.directoryClient(), path)
			if err != nil {
				return err
			}
			switch output {
			case "json":
				if decorations == nil {
					decorations = []annotate.Decoration{}
				}
				return writeJSON(c.out, decorations)
			case "", "text":
				return c.printDecorations(decorations, hover)
			default:
				return fmt.Errorf("unknown output format %q (want text or json)", output)
			}
		},
	}

	cmd.Flags().BoolVar(&hover, "hover", false, "also print the hover summary of each package")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}

// annotateFile runs the annotation pipeline once for the manifest at path.
func annotateFile(ctx context.Context, dir annotate.Directory, path string) ([]annotate.Decoration, error) {
	logger := loggerFromContext(ctx)

	_, refs, err := manifest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		logger.Debug("no dependencies to annotate", "path", path)
		return nil, nil
	}

	p := newProgress(logger)
	libs, err := dir.Lookup(ctx, manifest.Names(refs))
	if err != nil {
		return nil, fmt.Errorf("look up dependencies: %w", err)
	}
	p.done("looked up dependencies", "refs", len(refs), "found", len(libs))
	return annotate.Render(refs, libs), nil
}

func (c *CLI) printDecorations(decorations []annotate.Decoration, hover bool) error {
	if len(decorations) == 0 {
		printInfo(c.out, "no dependencies found in React Native Directory")
		return nil
	}

	width := 0
	for _, d := range decorations {
		width = max(width, runewidth.StringWidth(d.Name))
	}
	for _, d := range decorations {
		pos := fmt.Sprintf("%d:%d", d.Anchor.Line+1, d.Anchor.Character+1)
		label := StyleNumber.Render(d.Label)
		if d.Unmaintained {
			label = StyleWarning.Render(d.Label)
		}
		name := runewidth.FillRight(d.Name, width)
		fmt.Fprintf(c.out, "%s  %s  %s\n", StyleDim.Render(fmt.Sprintf("%-7s", pos)), name, label)
	}

	if !hover {
		return nil
	}
	for _, d := range decorations {
		rendered, err := renderMarkdown(c.out, d.Hover)
		if err != nil {
			return err
		}
		fmt.Fprint(c.out, rendered)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
