package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/pipeline"
)

// renderOpts holds flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats
	detailed bool     // show step distances in node-link labels
	noCache  bool
	refresh  bool
}

// extensions maps each format to its file suffix.
var extensions = map[string]string{
	pipeline.FormatText:     ".loop.txt",
	pipeline.FormatClean:    ".clean.txt",
	pipeline.FormatInterior: ".interior.txt",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatJSON:     ".json",
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts       renderOpts
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render the grid and its loop",
		Long: `Render draws the grid and its loop in one or more formats:

  text      box-drawing view of the whole grid
  clean     box-drawing view with tiles off the loop blanked
  interior  clean view with enclosed tiles marked I
  dot       Graphviz DOT of the loop
  svg       node-link drawing of the loop
  json      snapshot of the walked grid, accepted as input by every command

A single format is written to --output, or to stdout when --output is
omitted. Several formats are written next to a base path derived from
--output or the input file name. An output path that names the input file
is refused.`,
		Example: `  looptrace render input.txt -f interior
  looptrace render input.txt -f svg -o loop.svg
  looptrace render input.txt -f text,dot,svg --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = splitFormats(formatsStr)
			return c.runRender(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatText, "output format(s): "+strings.Join(pipeline.AllFormats, ", ")+" (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show step distances in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

// splitFormats parses the --format flag into a slice of output formats.
func splitFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || ext == ".txt" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. It refuses a
// path that names the input file.
func outputPaths(output, input string, formats []string) (map[string]string, error) {
	base := basePath(output, input)
	paths := make(map[string]string, len(formats))
	for _, format := range formats {
		path := base + extensions[format]
		if len(formats) == 1 {
			path = output
		}
		if input != "stdin" && sameFile(path, input) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s output %s would overwrite the input; pass --output", format, path)
		}
		paths[format] = path
	}
	return paths, nil
}

// sameFile reports whether a and b name the same file.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := pipeline.ValidateFormats(opts.formats); err != nil {
		return err
	}
	if len(opts.formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}

	input, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	source := input.source
	if len(opts.formats) > 1 && opts.output == "" && source == "stdin" {
		return errors.New(errors.ErrCodeInvalidInput, "rendering several formats from stdin needs --output")
	}

	runner, err := c.newRunner(ctx, opts.noCache, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	solveOpts := c.solveOptions(opts.formats...)
	solveOpts.Source = source
	solveOpts.Detailed = opts.detailed
	solveOpts.Refresh = opts.refresh

	var spin *Spinner
	if slices.Contains(opts.formats, pipeline.FormatSVG) {
		spin = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Laying out loop...")
		spin.Start()
	}
	res, err := input.solve(ctx, runner, solveOpts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	logger.Debugf("Rendered %d artifacts in %s", len(res.Artifacts), res.Stats.RenderTime)

	out := cmd.OutOrStdout()
	if len(opts.formats) == 1 && opts.output == "" {
		_, err := out.Write(res.Artifacts[opts.formats[0]])
		return err
	}

	paths, err := outputPaths(opts.output, source, opts.formats)
	if err != nil {
		return err
	}
	for _, format := range opts.formats {
		path := paths[format]
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		logger.Infof("Generated %s", path)
		printFile(out, path)
	}
	return nil
}
