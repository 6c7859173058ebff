package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
	snapshot "github.com/matzehuels/looptrace/pkg/io"
	"github.com/matzehuels/looptrace/pkg/loop"
	"github.com/matzehuels/looptrace/pkg/pipeline"
)

// gridInput is what a command reads: raw grid text, or a grid already
// walked and imported from a JSON snapshot.
type gridInput struct {
	source string
	raw    []byte
	grid   *grid.Grid
	loop   *loop.Loop
}

// walked reports whether the input came from a snapshot.
func (in *gridInput) walked() bool { return in.grid != nil }

// solve runs the pipeline on the input, skipping the parse and walk for a snapshot.
func (in *gridInput) solve(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	if in.walked() {
		return runner.SolveWalked(ctx, in.grid, in.loop, opts)
	}
	return runner.Solve(ctx, in.raw, opts)
}

// loadInput reads a grid file, a .json snapshot file, or either from stdin.
func loadInput(cmd *cobra.Command, args []string) (*gridInput, error) {
	if len(args) == 1 && isSnapshotPath(args[0]) {
		g, l, err := snapshot.ImportJSON(args[0])
		if err != nil {
			return nil, err
		}
		loggerFromContext(cmd.Context()).Debug("imported snapshot", "path", args[0], "loop", l.Length())
		return &gridInput{source: args[0], grid: g, loop: l}, nil
	}

	raw, source, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if looksLikeSnapshot(raw) {
		g, l, err := snapshot.ReadWalked(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		return &gridInput{source: source, grid: g, loop: l}, nil
	}
	return &gridInput{source: source, raw: raw}, nil
}

func isSnapshotPath(path string) bool {
	return path != "-" && strings.EqualFold(filepath.Ext(path), ".json")
}

// looksLikeSnapshot reports whether data is JSON. No grid tile is '{'.
func looksLikeSnapshot(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// readInput reads the grid from the file named by args[0], or from stdin
// when no argument or "-" is given. It returns the data and a source label.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if readsStdin(args) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", args[0])
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", args[0])
	}
	return data, args[0], nil
}

func readsStdin(args []string) bool {
	return len(args) == 0 || args[0] == "-"
}
