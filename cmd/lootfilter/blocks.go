package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lootfilter/filter"
)

func newBlocksCmd(a *app) *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "blocks [flags] <file|->",
		Short: "List the blocks of a rule file",
		Long: `blocks prints one row per block: the one-based line where the block starts,
its type, the category, name and priority decomposed from its header, and
the number of attribute lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			doc := a.parser().Parse(string(data))
			out := cmd.OutOrStdout()

			st := plainStyles()
			if isTerminal(out) {
				st = colorStyles()
			}

			err = renderBlocks(out, doc, st, showIDs)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "show-ids", false, "include block IDs")

	return cmd
}

type blockStyles struct {
	header lipgloss.Style
	cell   lipgloss.Style
	types  map[filter.BlockType]lipgloss.Style
}

func plainStyles() blockStyles {
	return blockStyles{
		header: lipgloss.NewStyle(),
		cell:   lipgloss.NewStyle(),
		types:  map[filter.BlockType]lipgloss.Style{},
	}
}

func colorStyles() blockStyles {
	return blockStyles{
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		cell:   lipgloss.NewStyle(),
		types: map[filter.BlockType]lipgloss.Style{
			filter.Show:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			filter.Hide:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			filter.Minimal:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			filter.Continue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		},
	}
}

func renderBlocks(w io.Writer, doc filter.Document, st blockStyles, showIDs bool) error {
	headers := []string{"LINE", "TYPE", "CATEGORY", "NAME", "PRIORITY", "LINES"}
	if showIDs {
		headers = append(headers, "ID")
	}

	rows := make([][]string, 0, len(doc))
	for _, b := range doc {
		row := []string{
			strconv.Itoa(b.StartLine + 1),
			string(b.Type),
			b.Category,
			b.Name,
			b.Priority,
			strconv.Itoa(len(b.Lines)),
		}

		if showIDs {
			row = append(row, string(b.ID))
		}

		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for _, row := range append([][]string{headers}, rows...) {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	_, err := fmt.Fprintln(w, formatRow(headers, widths, func(int) lipgloss.Style { return st.header }))
	if err != nil {
		return err
	}

	for i, row := range rows {
		typeStyle, ok := st.types[doc[i].Type]
		if !ok {
			typeStyle = st.cell
		}

		line := formatRow(row, widths, func(col int) lipgloss.Style {
			if col == 1 {
				return typeStyle
			}

			return st.cell
		})

		_, err = fmt.Fprintln(w, line)
		if err != nil {
			return err
		}
	}

	return nil
}

// formatRow pads every cell but the last to its column width. Padding is
// added outside the styled text.
func formatRow(cells []string, widths []int, style func(int) lipgloss.Style) string {
	var sb strings.Builder

	for i, c := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}

		sb.WriteString(style(i).Render(c))

		if i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
	}

	return strings.TrimRight(sb.String(), " ")
}
