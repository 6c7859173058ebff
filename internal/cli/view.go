package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/loop"
	"github.com/matzehuels/looptrace/pkg/pipeline"
	"github.com/matzehuels/looptrace/pkg/render"
)

// viewCommand creates the interactive grid viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Browse the grid and its loop interactively",
		Long: `View opens a grid file or JSON snapshot in a scrollable terminal viewer.
The terminal's stdin carries the keys, so the grid cannot be piped in.

Keys:
  arrows, h j k l   scroll
  pgup, pgdown      scroll a page
  g, G              jump to the top or bottom
  c                 toggle hiding tiles off the loop
  i                 toggle marking enclosed tiles
  s                 toggle input symbols and box-drawing runes
  q                 quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if readsStdin(args) {
				return errors.New(errors.ErrCodeInvalidInput, "view reads keys from stdin; pass the grid as a file")
			}
			input, err := loadInput(cmd, args)
			if err != nil {
				return err
			}
			g, l := input.grid, input.loop
			if !input.walked() {
				if g, err = pipeline.Parse(ctx, input.raw); err != nil {
					return err
				}
				if l, err = pipeline.Walk(ctx, g); err != nil {
					return err
				}
			}
			m := newViewerModel(input.source, g, l, pipeline.Classify(ctx, g))

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// viewerModel - Interactive grid viewer
// =============================================================================

// viewerModel is the bubbletea model for the grid viewer.
type viewerModel struct {
	source   string
	grid     *grid.Grid
	loop     *loop.Loop
	interior int

	clean    bool
	marked   bool
	symbols  bool
	offsetX  int
	offsetY  int
	width    int
	height   int
	quitting bool
}

// viewerChrome is the number of lines taken by the header and footer.
const viewerChrome = 4

func newViewerModel(source string, g *grid.Grid, l *loop.Loop, interior int) viewerModel {
	return viewerModel{
		source:   source,
		grid:     g,
		loop:     l,
		interior: interior,
		width:    80,
		height:   24,
	}
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.offsetY--
		case "down", "j":
			m.offsetY++
		case "left", "h":
			m.offsetX--
		case "right", "l":
			m.offsetX++
		case "pgup":
			m.offsetY -= m.rows()
		case "pgdown", " ":
			m.offsetY += m.rows()
		case "g", "home":
			m.offsetY = 0
		case "G", "end":
			m.offsetY = m.grid.Height()
		case "c":
			m.clean = !m.clean
		case "i":
			m.marked = !m.marked
		case "s":
			m.symbols = !m.symbols
		}
	}
	m.clamp()
	return m, nil
}

// rows is the number of grid rows that fit below the header.
func (m viewerModel) rows() int {
	return max(1, m.height-viewerChrome)
}

func (m *viewerModel) clamp() {
	m.offsetY = min(max(0, m.offsetY), max(0, m.grid.Height()-m.rows()))
	m.offsetX = min(max(0, m.offsetX), max(0, m.grid.Width()-m.width))
}

func (m viewerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := StyleTitle.Render(m.source) + StyleDim.Render(fmt.Sprintf("  %dx%d", m.grid.Width(), m.grid.Height()))
	answers := fmt.Sprintf("farthest %s  enclosed %s",
		StyleNumber.Render(fmt.Sprint(m.loop.HalfLength())), StyleNumber.Render(fmt.Sprint(m.interior)))
	b.WriteString(header + "  " + answers + "\n\n")

	lines := strings.Split(strings.TrimSuffix(render.Text(m.grid, m.textOptions()...), "\n"), "\n")
	end := min(len(lines), m.offsetY+m.rows())
	for y := m.offsetY; y < end; y++ {
		b.WriteString(m.styleRow(y, []rune(lines[y])))
		b.WriteByte('\n')
	}

	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m viewerModel) textOptions() []render.TextOption {
	var opts []render.TextOption
	if m.clean || m.marked {
		opts = append(opts, render.WithClean())
	}
	if m.marked {
		opts = append(opts, render.WithInterior())
	}
	if m.symbols {
		opts = append(opts, render.WithSymbols())
	}
	return opts
}

// styleRow colors the visible part of row y. Runs of equally styled cells
// are rendered together.
func (m viewerModel) styleRow(y int, cells []rune) string {
	var b strings.Builder
	end := min(len(cells), m.offsetX+m.width)

	var run []rune
	var runStyle lipgloss.Style
	flush := func() {
		if len(run) > 0 {
			b.WriteString(runStyle.Render(string(run)))
			run = run[:0]
		}
	}
	for x := m.offsetX; x < end; x++ {
		style := m.cellStyle(grid.Coordinate{X: x, Y: y}, cells[x])
		if len(run) > 0 && style.GetForeground() != runStyle.GetForeground() {
			flush()
		}
		runStyle = style
		run = append(run, cells[x])
	}
	flush()
	return b.String()
}

func (m viewerModel) cellStyle(c grid.Coordinate, r rune) lipgloss.Style {
	switch {
	case c == m.grid.Start():
		return styleStart
	case r == render.InteriorMark && m.marked:
		return styleInterior
	case m.grid.OnLoop(c):
		return styleLoop
	default:
		return styleJunk
	}
}

func (m viewerModel) footer() string {
	toggle := func(key, name string, on bool) string {
		if on {
			return StyleValue.Render(key + " " + name)
		}
		return StyleDim.Render(key + " " + name)
	}
	parts := []string{
		toggle("c", "clean", m.clean),
		toggle("i", "interior", m.marked),
		toggle("s", "symbols", m.symbols),
		StyleDim.Render("q quit"),
	}
	return strings.Join(parts, StyleDim.Render("  ·  "))
}
