// Package output renders scoring results for the terminal and for
// machine consumption.
package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/eri-adepoju/sqlscore/pkg/score"
)

// Styles holds the lipgloss styles used by table rendering.
type Styles struct {
	Header      lipgloss.Style
	Low         lipgloss.Style
	Medium      lipgloss.Style
	Complex     lipgloss.Style
	Unparseable lipgloss.Style
	Dim         lipgloss.Style
	Mismatch    lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Low:         lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		Medium:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
		Complex:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // red
		Unparseable: lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // magenta
		Dim:         lipgloss.NewStyle().Faint(true),
		Mismatch:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// TierStyle returns the style for a tier label.
func (s *Styles) TierStyle(t score.Tier) lipgloss.Style {
	switch t {
	case score.TierLow:
		return s.Low
	case score.TierMedium:
		return s.Medium
	case score.TierComplex:
		return s.Complex
	default:
		return s.Unparseable
	}
}
