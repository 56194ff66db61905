package dag

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/opbatch/internal/model"
)

var (
	editStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // white
	createStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	deleteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	externalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

func kindStyle(op model.Operation) lipgloss.Style {
	switch {
	case len(model.DeletedIDs(op)) > 0:
		return deleteStyle
	case len(model.CreatedIDs(op)) > 0:
		return createStyle
	default:
		return editStyle
	}
}

// RenderASCII draws the graph as a tree from operations with no in-batch
// dependencies down to the operations that use their objects.
func RenderASCII(g *Graph) string {
	if g.Len() == 0 {
		return "No operations."
	}

	roots := g.Roots()
	if len(roots) == 0 {
		return "No root operations (every operation depends on another)."
	}

	visited := make(map[int]bool)
	var sb strings.Builder

	for i, root := range roots {
		if i > 0 {
			sb.WriteString("\n")
		}
		renderNode(&sb, g, root, "", true, visited)
	}

	return sb.String()
}

func renderNode(sb *strings.Builder, g *Graph, i int, prefix string, isLast bool, visited map[int]bool) {
	op, ok := g.Node(i)
	if !ok {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		connector = ""
	}

	label := kindStyle(op).Render(fmt.Sprintf("%s %s", Label(i), model.Describe(op)))
	if ext := g.External(i); len(ext) > 0 && prefix == "" {
		label += " " + externalStyle.Render("(uses "+strings.Join(ext, ", ")+")")
	}

	if visited[i] {
		sb.WriteString(prefix + connector + label + " (see above)\n")
		return
	}
	visited[i] = true

	sb.WriteString(prefix + connector + label + "\n")

	children := g.Dependents(i)

	childPrefix := prefix
	if prefix == "" {
		childPrefix = "    "
	} else if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}

	for n, child := range children {
		renderNode(sb, g, child, childPrefix, n == len(children)-1, visited)
	}
}
