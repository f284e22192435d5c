package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerCells = cellStyle.Bold(true)
)

// PrintTable renders rows below headers. An empty row set prints the
// placeholder instead of an empty frame.
func (p *Printer) PrintTable(headers []string, rows [][]string, placeholder string) {
	if len(rows) == 0 {
		p.PrintSecondary(placeholder)
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && p.colors {
				return headerCells
			}
			return cellStyle
		})
	fmt.Fprintln(p.out, t.Render())
}
