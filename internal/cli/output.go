package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ethan-wit/moving-items/internal/calculator"
	"github.com/ethan-wit/moving-items/internal/models"
)

var (
	// Color styles for terminal output
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")
)

// Output prints styled messages for the operator.
type Output struct {
	w            io.Writer
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	mutedStyle   lipgloss.Style
	primaryStyle lipgloss.Style
}

// NewOutput writes to w, picking colors from w's capabilities.
func NewOutput(w io.Writer) *Output {
	r := lipgloss.NewRenderer(w)
	return &Output{
		w:            w,
		successStyle: r.NewStyle().Foreground(colorSuccess).Bold(true),
		warningStyle: r.NewStyle().Foreground(colorWarning).Bold(true),
		errorStyle:   r.NewStyle().Foreground(colorError).Bold(true),
		infoStyle:    r.NewStyle().Foreground(colorInfo),
		mutedStyle:   r.NewStyle().Foreground(colorMuted),
		primaryStyle: r.NewStyle().Foreground(colorPrimary).Bold(true),
	}
}

// Success prints a success message
func (o *Output) Success(format string, args ...any) {
	fmt.Fprint(o.w, o.successStyle.Render("✓ "))
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Warning prints a warning message
func (o *Output) Warning(format string, args ...any) {
	fmt.Fprint(o.w, o.warningStyle.Render("⚠ "))
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Error prints an error message
func (o *Output) Error(format string, args ...any) {
	fmt.Fprint(o.w, o.errorStyle.Render("✗ "))
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Info prints an info message
func (o *Output) Info(format string, args ...any) {
	fmt.Fprint(o.w, o.infoStyle.Render("ℹ "))
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Muted prints a muted message
func (o *Output) Muted(format string, args ...any) {
	fmt.Fprintln(o.w, o.mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Primary prints a primary message
func (o *Output) Primary(format string, args ...any) {
	fmt.Fprintln(o.w, o.primaryStyle.Render(fmt.Sprintf(format, args...)))
}

// Items prints user items as a table.
func (o *Output) Items(items []*models.UserItem) {
	rows := make([][]string, 0, len(items))
	for _, ui := range items {
		rows = append(rows, []string{
			strconv.FormatInt(ui.UserID, 10),
			ui.ItemName,
			strconv.Itoa(ui.DesiredQuantity),
			strconv.Itoa(ui.Quantity),
			strconv.Itoa(ui.Missing()),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(o.mutedStyle).
		Headers("USER", "ITEM", "DESIRED", "QUANTITY", "STILL NEEDED").
		Rows(rows...)

	fmt.Fprintln(o.w, t.String())
}

// Progress prints list totals under an items table.
func (o *Output) Progress(p calculator.Progress) {
	o.Muted("%d of %d items complete, %d still needed (%.0f%%)", p.Complete, p.Items, p.Missing, p.Percent())
}
