package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// solveFlags holds flags for the solve command.
type solveFlags struct {
	json    bool
	quiet   bool
	record  bool
	noCache bool
	refresh bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve [file|-]",
		Short: "Print the farthest loop distance and the enclosed tile count",
		Long: `Solve reads a pipe grid, walks the loop through S and prints two answers:
the number of steps to the loop tile farthest from S, and the number of tiles
enclosed by the loop.

The grid is read from the named file, or from stdin when the file is omitted
or "-". A JSON snapshot written by "render -f json" is accepted in place of
grid text.`,
		Example: `  looptrace solve input.txt
  cat input.txt | looptrace solve --json
  looptrace solve input.txt --record
  looptrace solve loop.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only the two answers, one per line")
	cmd.Flags().BoolVar(&flags.record, "record", false, "save the solve to the history store")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, args []string, flags solveFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	input, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	source := input.source

	runner, err := c.newRunner(ctx, flags.noCache, flags.record)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.solveOptions()
	opts.Source = source
	opts.Record = flags.record
	opts.Refresh = flags.refresh

	prog := newProgress(logger)
	res, err := input.solve(ctx, runner, opts)
	if err != nil {
		return err
	}
	logger.Debug("solve stats", "parse", res.Stats.ParseTime, "walk", res.Stats.WalkTime, "classify", res.Stats.ClassifyTime)

	out := cmd.OutOrStdout()
	switch {
	case flags.json:
		return writeJSON(out, res)
	case flags.quiet:
		fmt.Fprintln(out, res.HalfLength)
		fmt.Fprintln(out, res.InteriorCount)
		return nil
	}

	prog.done("Solved " + source)
	printSuccess(out, "Loop traced from %s (%s)", formatCoord(res.Start.X, res.Start.Y), res.StartKind)
	printKeyValue(out, "Farthest", StyleNumber.Render(strconv.Itoa(res.HalfLength))+StyleDim.Render(" steps"))
	printKeyValue(out, "Enclosed", StyleNumber.Render(strconv.Itoa(res.InteriorCount))+StyleDim.Render(" tiles"))
	if res.RecordID != "" {
		printKeyValue(out, "Record", res.RecordID)
	}
	printStats(out, res.Width, res.Height, res.LoopLength, res.CacheInfo.ResultHit || res.CacheInfo.SnapshotHit)
	return nil
}

func formatCoord(x, y int) string {
	return fmt.Sprintf("(%d, %d)", x, y)
}
