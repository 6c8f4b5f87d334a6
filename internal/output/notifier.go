package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Banner prints action notifications as one-line colored banners. Colors
// are dropped automatically when w is not a terminal.
type Banner struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
}

// NewBanner creates a Banner writing to w.
func NewBanner(w io.Writer) *Banner {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().Bold(true).Padding(0, 1)

	return &Banner{
		w:       w,
		success: base.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#16A34A")),
		failure: base.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#DC2626")),
	}
}

// Success prints msg in the success style.
func (b *Banner) Success(msg string) {
	fmt.Fprintln(b.w, b.success.Render(msg))
}

// Error prints msg in the error style.
func (b *Banner) Error(msg string) {
	fmt.Fprintln(b.w, b.failure.Render(msg))
}
