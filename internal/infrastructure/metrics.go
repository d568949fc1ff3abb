package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the instruments recorded during a run
type PipelineMetrics struct {
	RowsRead        metric.Int64Counter
	RowsDropped     metric.Int64Counter
	PostingsKept    metric.Int64Counter
	MalformedDates  metric.Int64Counter
	MissingSalary   metric.Int64Counter
	InvalidSalary   metric.Int64Counter
	StepsTotal      metric.Int64Counter
	StepDuration    metric.Float64Histogram
	TablesWritten   metric.Int64Counter
	ChartsRendered  metric.Int64Counter
	MemoryAllocated metric.Int64Gauge
	Goroutines      metric.Int64Gauge
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"skillpulse_rows_read",
		metric.WithDescription("Raw rows read from the input source"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"skillpulse_rows_dropped",
		metric.WithDescription("Rows dropped during cleaning, by reason"),
	)
	if err != nil {
		return nil, err
	}

	postingsKept, err := meter.Int64Counter(
		"skillpulse_postings_kept",
		metric.WithDescription("Postings that survived cleaning and filtering"),
	)
	if err != nil {
		return nil, err
	}

	malformedDates, err := meter.Int64Counter(
		"skillpulse_malformed_dates",
		metric.WithDescription("Kept postings whose posted date could not be parsed"),
	)
	if err != nil {
		return nil, err
	}

	missingSalary, err := meter.Int64Counter(
		"skillpulse_missing_salary",
		metric.WithDescription("Kept postings without a usable salary"),
	)
	if err != nil {
		return nil, err
	}

	invalidSalary, err := meter.Int64Counter(
		"skillpulse_invalid_salary",
		metric.WithDescription("Salary cells that were present but not a positive number"),
	)
	if err != nil {
		return nil, err
	}

	stepsTotal, err := meter.Int64Counter(
		"skillpulse_steps",
		metric.WithDescription("Pipeline steps executed, by status"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"skillpulse_step_duration",
		metric.WithDescription("Pipeline step duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	tablesWritten, err := meter.Int64Counter(
		"skillpulse_tables_written",
		metric.WithDescription("Result tables written"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"skillpulse_charts_rendered",
		metric.WithDescription("Charts rendered into the workbook"),
	)
	if err != nil {
		return nil, err
	}

	memoryAllocated, err := meter.Int64Gauge(
		"skillpulse_memory_allocated",
		metric.WithDescription("Heap bytes allocated at the end of the run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	goroutines, err := meter.Int64Gauge(
		"skillpulse_goroutines",
		metric.WithDescription("Goroutines at the end of the run"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsRead:        rowsRead,
		RowsDropped:     rowsDropped,
		PostingsKept:    postingsKept,
		MalformedDates:  malformedDates,
		MissingSalary:   missingSalary,
		InvalidSalary:   invalidSalary,
		StepsTotal:      stepsTotal,
		StepDuration:    stepDuration,
		TablesWritten:   tablesWritten,
		ChartsRendered:  chartsRendered,
		MemoryAllocated: memoryAllocated,
		Goroutines:      goroutines,
	}, nil
}

// LoadCounts is the loader's row accounting for one input source
type LoadCounts struct {
	Read           int
	Kept           int
	Dropped        map[string]int // by reason
	MalformedDates int
	MissingSalary  int
	InvalidSalary  int
}

// RecordLoad records the loader's row accounting
func (m *PipelineMetrics) RecordLoad(ctx context.Context, counts LoadCounts) {
	if m == nil {
		return
	}
	m.RowsRead.Add(ctx, int64(counts.Read))
	m.PostingsKept.Add(ctx, int64(counts.Kept))
	m.MalformedDates.Add(ctx, int64(counts.MalformedDates))
	m.MissingSalary.Add(ctx, int64(counts.MissingSalary))
	m.InvalidSalary.Add(ctx, int64(counts.InvalidSalary))
	for reason, n := range counts.Dropped {
		m.RowsDropped.Add(ctx, int64(n), metric.WithAttributes(attribute.String("reason", reason)))
	}
}

// RecordStep records one step execution
func (m *PipelineMetrics) RecordStep(ctx context.Context, step string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	)

	m.StepsTotal.Add(ctx, 1, attrs)
	m.StepDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordTable records a written result table
func (m *PipelineMetrics) RecordTable(ctx context.Context, question string) {
	if m == nil {
		return
	}
	m.TablesWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("question", question)))
}

// RecordChart records a rendered chart
func (m *PipelineMetrics) RecordChart(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.ChartsRendered.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordRuntime snapshots Go runtime statistics
func (m *PipelineMetrics) RecordRuntime(ctx context.Context) {
	if m == nil {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.MemoryAllocated.Record(ctx, int64(ms.Alloc))
	m.Goroutines.Record(ctx, int64(runtime.NumGoroutine()))
}
