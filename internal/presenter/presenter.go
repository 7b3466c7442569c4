// Package presenter renders tables and messages to the terminal.
package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Presenter renders rows with named columns and one-line messages.
type Presenter interface {
	Table(headers []string, rows [][]string) error
	Message(format string, args ...any)
}

// MarkdownPresenter writes tables as markdown. When styled, the markdown is rendered
// for the terminal with glamour; otherwise the raw markdown is written, which reads
// fine in pipes and log files.
type MarkdownPresenter struct {
	out      io.Writer
	renderer *glamour.TermRenderer
}

// NewMarkdownPresenter creates a presenter writing to out.
func NewMarkdownPresenter(out io.Writer, styled bool) (*MarkdownPresenter, error) {
	p := &MarkdownPresenter{out: out}
	if styled {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(120),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		p.renderer = r
	}
	return p, nil
}

// Table writes a table with the given column headers.
func (p *MarkdownPresenter) Table(headers []string, rows [][]string) error {
	md := MarkdownTable(headers, rows)
	if p.renderer != nil {
		rendered, err := p.renderer.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		md = rendered
	}
	_, err := io.WriteString(p.out, md)
	return err
}

// Message writes a single line.
func (p *MarkdownPresenter) Message(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// MarkdownTable formats headers and rows as a GitHub flavored markdown table.
// Rows shorter than headers are padded with empty cells.
func MarkdownTable(headers []string, rows [][]string) string {
	var b strings.Builder

	writeRow(&b, headers)

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = ":---"
	}
	writeRow(&b, sep)

	for _, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)
		writeRow(&b, cells)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
