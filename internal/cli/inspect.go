package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/compiler"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/render"
)

// inspectCommand creates the inspect command, which prints the planned
// layout of a chart without drawing it.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [spec.json]",
		Short: "Show the planned layout of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(args[0])
			if err != nil {
				return err
			}
			frame, err := compiler.Plan(spec)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(frame)
			}
			printFrame(spec, frame)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the frame as JSON")
	return cmd
}

func printFrame(spec *chart.Spec, f render.Frame) {
	fmt.Fprintln(uiOut, StyleTitle.Render(string(f.Kind) + " chart"))
	printKeyValue("Canvas", fmt.Sprintf("%s × %s", num(f.Width), num(f.Height)))
	if f.Empty {
		printKeyValue("Data", "empty (placeholder)")
		return
	}
	printKeyValue("Plot area", fmt.Sprintf("%s × %s at (%s, %s)",
		num(f.ChartWidth), num(f.ChartHeight), num(f.Bounds.Left), num(f.Bounds.Top)))
	if f.Kind != chart.KindPie {
		printKeyValue("Y axis", fmt.Sprintf("0 – %s step %s", num(f.Axis.YMax), num(f.Axis.TickStep)))
		rotate := "horizontal"
		if f.Labels.ShouldRotate {
			rotate = "rotated 45°"
		}
		printKeyValue("X labels", rotate)
		if f.Stacked {
			printKeyValue("Bars", "stacked")
		}
	}
	if !f.Legend.Active() {
		printKeyValue("Legend", "none")
		return
	}
	printKeyValue("Legend", fmt.Sprintf("%s, %d items, %d columns",
		f.Legend.Position, f.Legend.ItemCount, f.Legend.Columns))
	printNewline()
	fmt.Fprintln(uiOut, legendTable(layout.LegendItems(spec)))
}

func legendTable(items []layout.LegendItem) string {
	rows := make([][]string, len(items))
	for i, it := range items {
		share := ""
		if it.Percentage != nil {
			share = strconv.FormatFloat(*it.Percentage, 'f', 1, 64) + "%"
		}
		rows[i] = []string{lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render("■"), it.Text, num(it.Value), share}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Label", "Value", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
