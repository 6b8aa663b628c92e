// Package report renders resolution registries and mapping tables for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/cppdeps/internal/adapters/detector"
	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/ui/output"
	"go.trai.ch/cppdeps/internal/ui/style"
	"go.trai.ch/zerr"
)

const columnGap = "  "

// Renderer writes reports to a writer in table or JSON form.
type Renderer struct {
	w io.Writer

	plain   lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	caution lipgloss.Style
	failure lipgloss.Style
}

// NewRenderer creates a Renderer on w. NO_COLOR disables styling.
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())

	return &Renderer{
		w:       w,
		plain:   r.NewStyle(),
		header:  r.NewStyle().Bold(true).Foreground(style.Iris),
		muted:   r.NewStyle().Foreground(style.Slate),
		success: r.NewStyle().Foreground(style.Green),
		caution: r.NewStyle().Foreground(style.Yellow),
		failure: r.NewStyle().Foreground(style.Red),
	}
}

// registryJSON is the JSON document of a resolution report.
type registryJSON struct {
	Fingerprint  string           `json:"fingerprint"`
	Dependencies *domain.Registry `json:"dependencies"`
}

// Registry renders one resolution pass. The fingerprint identifies the registry contents.
func (r *Renderer) Registry(reg *domain.Registry, fingerprint string, format detector.Format) error {
	if format == detector.FormatJSON {
		return r.writeJSON(registryJSON{Fingerprint: fingerprint, Dependencies: reg})
	}

	rows := make([][]cell, 0, reg.Len())
	var resolved, ambiguous, missing int

	for _, rec := range reg.All() {
		target := "-"
		if name, ok := rec.TargetName(); ok {
			target = name
		}

		var status cell
		switch rec.Status() {
		case domain.StatusResolved:
			resolved++
			status = cell{text: style.Check + " " + rec.Status().String(), style: r.success}
		case domain.StatusTargetAmbiguous:
			ambiguous++
			status = cell{text: style.Tilde + " " + rec.Status().String(), style: r.caution}
		default:
			missing++
			status = cell{text: style.Cross + " " + rec.Status().String(), style: r.failure}
		}

		rows = append(rows, []cell{
			{text: rec.Dependency.String(), style: r.plain},
			status,
			{text: target, style: r.plain},
			{text: rec.Strategy.String(), style: r.muted},
		})
	}

	if err := r.table([]string{"DEPENDENCY", "STATUS", "TARGET", "STRATEGY"}, rows); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d resolved, %d low confidence, %d not found", resolved, ambiguous, missing)
	return r.writeLine(r.muted.Render(summary))
}

// mappingJSON is the JSON form of one mapping table entry.
type mappingJSON struct {
	Name   string `json:"name"`
	Probe  string `json:"probe"`
	Target string `json:"target"`
	Origin string `json:"origin"`
}

// Mappings renders the effective mapping table.
func (r *Renderer) Mappings(entries []domain.MappingEntry, format detector.Format) error {
	if format == detector.FormatJSON {
		out := make([]mappingJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, mappingJSON{
				Name:   e.DependencyName.String(),
				Probe:  e.ProbeName,
				Target: e.TargetName,
				Origin: e.Origin.String(),
			})
		}
		return r.writeJSON(out)
	}

	rows := make([][]cell, 0, len(entries))
	for _, e := range entries {
		origin := cell{text: e.Origin.String(), style: r.muted}
		if e.Origin == domain.OriginCustom {
			origin.style = r.header
		}
		rows = append(rows, []cell{
			{text: e.DependencyName.String(), style: r.plain},
			{text: e.ProbeName, style: r.plain},
			{text: e.TargetName, style: r.plain},
			origin,
		})
	}

	return r.table([]string{"NAME", "PROBE", "TARGET", "ORIGIN"}, rows)
}

// cell is one table value with an optional style.
type cell struct {
	text  string
	style lipgloss.Style
}

// table writes left-aligned columns padded to the widest value.
// Padding is computed on the unstyled text so colors never shift alignment.
func (r *Renderer) table(headers []string, rows [][]cell) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c.text))
		}
	}

	head := make([]cell, len(headers))
	for i, h := range headers {
		head[i] = cell{text: h, style: r.header}
	}

	if err := r.writeLine(renderRow(head, widths)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := r.writeLine(renderRow(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

func renderRow(row []cell, widths []int) string {
	parts := make([]string, len(row))
	for i, c := range row {
		text := c.text
		if i < len(row)-1 {
			text += strings.Repeat(" ", widths[i]-lipgloss.Width(c.text))
		}
		parts[i] = c.style.Render(text)
	}
	return strings.Join(parts, columnGap)
}

func (r *Renderer) writeLine(line string) error {
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

func (r *Renderer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}
	return r.writeLine(string(data))
}
