package presenter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "skillpulse/internal/errors"
	"skillpulse/pkg/contracts/domain"
)

// ConsolePresenter prints views as aligned text tables
type ConsolePresenter struct {
	out     io.Writer
	logger  *slog.Logger
	printer *message.Printer
	caser   cases.Caser
}

// NewConsolePresenter creates a presenter writing to out
func NewConsolePresenter(out io.Writer, logger *slog.Logger) *ConsolePresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsolePresenter{
		out:     out,
		logger:  logger,
		printer: message.NewPrinter(language.English),
		caser:   cases.Title(language.English),
	}
}

// Present writes each view, with a heading whenever the question changes
func (p *ConsolePresenter) Present(ctx context.Context, views []View) error {
	var current domain.Question
	for i, v := range views {
		if err := ctx.Err(); err != nil {
			return err
		}

		if v.Question != current {
			current = v.Question
			if i > 0 {
				fmt.Fprintln(p.out)
			}
			heading := v.Question.Title()
			fmt.Fprintln(p.out, heading)
			fmt.Fprintln(p.out, strings.Repeat("=", len(heading)))
		}

		if err := p.writeTable(v.Table); err != nil {
			return apperrors.NewRenderError(fmt.Sprintf("failed to print table %s", v.Table.Name), err)
		}
	}

	p.logger.DebugContext(ctx, "Printed views", slog.Int("views", len(views)))
	return nil
}

func (p *ConsolePresenter) writeTable(t *Table) error {
	fmt.Fprintf(p.out, "\n%s\n", t.Title)
	if t.Len() == 0 {
		_, err := fmt.Fprintln(p.out, "  (no rows)")
		return err
	}

	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', tabwriter.AlignRight)

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = p.caser.String(strings.ReplaceAll(c.Name, "_", " "))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t")+"\t")

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = p.FormatCell(t.Columns[i].Kind, cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

// FormatCell renders a value for display
func (p *ConsolePresenter) FormatCell(kind ColumnKind, cell any) string {
	v, numeric := Float(cell)
	if !numeric {
		return fmt.Sprint(cell)
	}

	switch kind {
	case KindInteger:
		return p.printer.Sprintf("%d", int64(v))
	case KindPercent:
		return p.printer.Sprintf("%.1f%%", v)
	case KindCurrency:
		return p.printer.Sprintf("$%.0f", v)
	}
	return fmt.Sprint(cell)
}
