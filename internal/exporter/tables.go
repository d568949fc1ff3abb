package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"skillpulse/internal/config"
	"skillpulse/internal/infrastructure"
	"skillpulse/internal/presenter"
)

// TableExporter writes each view's table to tables/<name>.csv
type TableExporter struct {
	writer  *CSVWriter
	paths   *config.Paths
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
}

// NewTableExporter creates a table exporter rooted at paths
func NewTableExporter(paths *config.Paths, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *TableExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableExporter{
		writer:  NewCSVWriter(paths, logger),
		paths:   paths,
		logger:  logger,
		metrics: metrics,
	}
}

// Present implements presenter.Presenter
func (e *TableExporter) Present(ctx context.Context, views []presenter.View) error {
	_, err := e.Export(ctx, views)
	return err
}

// Outputs lists the files Present writes for views
func (e *TableExporter) Outputs(views []presenter.View) []string {
	files := make([]string, len(views))
	for i, v := range views {
		files[i] = e.paths.TableFile(v.Table.Name)
	}
	return files
}

// Export writes the tables and returns the files written, in view order
func (e *TableExporter) Export(ctx context.Context, views []presenter.View) ([]string, error) {
	files := make([]string, 0, len(views))
	for _, v := range views {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		path, err := e.writeTable(v.Table)
		if err != nil {
			return files, err
		}
		files = append(files, path)
		e.metrics.RecordTable(ctx, string(v.Question))

		e.logger.InfoContext(ctx, "Table exported",
			slog.String("table", v.Table.Name),
			slog.String("question", string(v.Question)),
			slog.Int("rows", v.Table.Len()),
			slog.String("path", e.paths.Relative(path)))
	}
	return files, nil
}

func (e *TableExporter) writeTable(t *presenter.Table) (string, error) {
	stream, err := e.writer.CreateStreamWriter(e.paths.TableFile(t.Name), t.Headers())
	if err != nil {
		return "", err
	}

	for i, row := range t.Rows {
		if err := stream.WriteRecord(formatRow(t.Columns, row)); err != nil {
			stream.Close()
			return "", fmt.Errorf("table %s row %d: %w", t.Name, i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return "", err
	}
	return stream.Path(), nil
}
