package markdown

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/opbatch/internal/model"
	"github.com/rogersnm/opbatch/internal/validate"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
	selectedStyle  = lipgloss.NewStyle().Bold(true)
)

// OperationRow is one line of the operation table.
type OperationRow struct {
	Operation model.Operation
	Errors    []string
	Selected  bool
}

// OperationRows pairs ops with their per-operation errors, keyed as the
// validator keys them (validate.OperationKeys), and marks the operation whose
// key is selected.
func OperationRows(ops []model.Operation, errs map[string][]string, selected string) []OperationRow {
	rows := make([]OperationRow, len(ops))
	keys := validate.OperationKeys(ops)
	for i, op := range ops {
		key := keys[i]
		rows[i] = OperationRow{
			Operation: op,
			Errors:    errs[key],
			Selected:  selected != "" && key == selected,
		}
	}
	return rows
}

func RenderOperationTable(rows []OperationRow) string {
	if len(rows) == 0 {
		return "No operations."
	}
	cells := make([][]string, len(rows))
	selectedRow := -1
	for i, r := range rows {
		marker := ""
		if r.Selected {
			marker = "▶"
			selectedRow = i
		}
		status := validStyle.Render("ok")
		if len(r.Errors) > 0 {
			status = invalidStyle.Render(strings.Join(r.Errors, "; "))
		}
		cells[i] = []string{marker, strconv.Itoa(i + 1), string(r.Operation.Kind()), model.Describe(r.Operation), status}
	}
	return renderTable([]string{"", "#", "Kind", "Description", "Status"}, cells, selectedRow)
}

func renderTable(headers []string, rows [][]string, selectedRow int) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerRowStyle
			case selectedRow:
				return selectedStyle
			}
			return cellStyle
		})
	return t.Render()
}
