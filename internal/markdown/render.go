package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/opbatch/internal/validate"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func StateStyle(state validate.State) lipgloss.Style {
	switch state {
	case validate.StateInvalid:
		return invalidStyle
	case validate.StateWarning:
		return warningStyle
	default:
		return validStyle
	}
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderState(state validate.State) string {
	return StateStyle(state).Render(string(state))
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}

// RenderReport lists a validation report's errors then its warnings under a
// state header.
func RenderReport(r validate.Report) string {
	fields := []string{
		RenderField("State", RenderState(r.State())),
		RenderField("Errors", fmt.Sprint(len(r.Errors))),
		RenderField("Warnings", fmt.Sprint(len(r.Warnings))),
	}
	var sb strings.Builder
	sb.WriteString(RenderEntityHeader("Validation", fields))
	for _, e := range r.Errors {
		sb.WriteString(invalidStyle.Render("  ✗ "+e) + "\n")
	}
	for _, w := range r.Warnings {
		sb.WriteString(warningStyle.Render("  ! "+w) + "\n")
	}
	return sb.String()
}
