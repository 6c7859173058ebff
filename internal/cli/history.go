package cli

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/looptrace/pkg/history"
)

// historyCommand creates the history command group.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded solves",
		Long:  `History lists and shows solves saved with solve --record or the API's ?record=true.`,
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent solves, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(ctx, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if records == nil {
					records = []history.Record{}
				}
				return writeJSON(out, records)
			}
			if len(records) == 0 {
				printInfo(out, "No recorded solves")
				return nil
			}
			io.WriteString(out, historyTable(records)+"\n")
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "maximum number of records")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded solve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rec)
			}
			printKeyValue(out, "ID", rec.ID)
			printKeyValue(out, "Source", rec.Source)
			printKeyValue(out, "Recorded", rec.CreatedAt.Local().Format(time.DateTime))
			printKeyValue(out, "Grid", strconv.Itoa(rec.Width)+"x"+strconv.Itoa(rec.Height))
			printKeyValue(out, "Start", formatCoord(rec.Start.X, rec.Start.Y)+" "+rec.StartKind)
			printKeyValue(out, "Loop", strconv.Itoa(rec.LoopLength)+" tiles")
			printKeyValue(out, "Farthest", StyleNumber.Render(strconv.Itoa(rec.HalfLength)))
			printKeyValue(out, "Enclosed", StyleNumber.Render(strconv.Itoa(rec.Interior)))
			printKeyValue(out, "Input", rec.InputHash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")

	return cmd
}

// historyTable renders records as a bordered table.
func historyTable(records []history.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			r.Source,
			strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height),
			strconv.Itoa(r.HalfLength),
			strconv.Itoa(r.Interior),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Recorded", "Source", "Grid", "Farthest", "Enclosed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0, 1:
				return lipgloss.NewStyle().Foreground(colorGray)
			case 4, 5:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
