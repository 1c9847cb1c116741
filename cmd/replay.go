package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/docfile"
	"github.com/zjrosen/spanedit/internal/editor"
	"github.com/zjrosen/spanedit/internal/ui/markdown"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay an editing script and print the resulting document",
	Long: `Replay runs the steps of a script against its document: input intents,
caret moves, selections, styles and pastes. Steps with an expect field fail
the replay when the document text differs.

Example:
  spanedit replay script.yaml                     # Print the final text
  spanedit replay script.yaml --diff              # Show what the script changed
  spanedit replay script.yaml -o markdown --render
  spanedit replay script.yaml -o yaml > out.yaml  # Save as a document file`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

type replayOptions struct {
	Format string
	Diff   bool
	Steps  bool
	Render bool
	Width  int
}

var replayOpts replayOptions

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayOpts.Format, "output", "o", "text",
		"output format: text, tree, markdown or yaml")
	replayCmd.Flags().BoolVar(&replayOpts.Diff, "diff", false,
		"print the text changes instead of the final text")
	replayCmd.Flags().BoolVar(&replayOpts.Steps, "steps", false,
		"print the outcome of every step first")
	replayCmd.Flags().BoolVar(&replayOpts.Render, "render", false,
		"render markdown output for the terminal")
	replayCmd.Flags().IntVar(&replayOpts.Width, "width", 80,
		"wrap width for rendered markdown")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("spanedit-replay")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	provider, shutdown, err := initTracing()
	if err != nil {
		return err
	}
	defer shutdown()

	return replay(cmd.Context(), cmd.OutOrStdout(), args[0], cfg, replayOpts, editor.WithTracer(provider.Tracer()))
}

func (o replayOptions) validate() error {
	switch o.Format {
	case "text", "tree", "markdown", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}
	if o.Diff && o.Format != "text" {
		return fmt.Errorf("--diff only applies to text output")
	}
	if o.Render && o.Format != "markdown" {
		return fmt.Errorf("--render only applies to markdown output")
	}
	return nil
}

// replay runs the script at path and writes the result to w.
func replay(ctx context.Context, w io.Writer, path string, cfg config.Config, opts replayOptions, editorOpts ...editor.Option) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	script, err := docfile.LoadScript(path)
	if err != nil {
		return err
	}
	e, err := script.NewEditor(cfg.Editor, editorOpts...)
	if err != nil {
		return err
	}
	defer e.Dispose()

	before := e.Text()
	results, err := script.Run(ctx, e)
	if opts.Steps {
		for _, r := range results {
			fmt.Fprintf(w, "%3d %-14s %-12s %s\n", r.Index, r.Kind, r.Result, strconv.Quote(r.Text))
		}
	}
	if err != nil {
		return err
	}

	doc := e.Document()
	switch opts.Format {
	case "tree":
		_, err = io.WriteString(w, docfile.Tree(doc))
	case "markdown":
		out := docfile.Markdown(doc)
		if opts.Render {
			r, rerr := markdown.New(opts.Width, cfg.UI.MarkdownStyle)
			if rerr != nil {
				return rerr
			}
			if out, err = r.Render(out); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, out)
	case "yaml":
		f := docfile.FromDocument(doc, nil)
		if r, ok := e.Controller().Range(); ok {
			f = docfile.FromDocument(doc, &r)
		}
		err = docfile.Encode(w, f)
	default:
		text := e.Text()
		if opts.Diff {
			text = docfile.Diff(before, text)
		}
		_, err = fmt.Fprintln(w, text)
	}
	return err
}
