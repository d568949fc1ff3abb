package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skillpulse/internal/config"
	"skillpulse/internal/dataprocessing"
	apperrors "skillpulse/internal/errors"
	"skillpulse/internal/exporter"
	"skillpulse/internal/infrastructure"
	"skillpulse/internal/presenter"
	"skillpulse/pkg/contracts"
	"skillpulse/pkg/contracts/domain"
)

// Step IDs
const (
	StepLoad     = "load"
	StepAnalyze  = "analyze"
	StepPresent  = "present"
	StepManifest = "manifest"
)

// Producer is implemented by presenters that write files
type Producer interface {
	Outputs(views []presenter.View) []string
}

// LoadStep reads, cleans and filters the input postings
type LoadStep struct {
	BaseStage
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
}

// NewLoadStep creates the load step
func NewLoadStep(logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *LoadStep {
	return &LoadStep{
		BaseStage: NewBaseStage(StepLoad, "Load and clean postings"),
		logger:    logger,
		metrics:   metrics,
	}
}

// Execute implements Step
func (s *LoadStep) Execute(ctx context.Context, state *OperationState) error {
	ds, err := dataprocessing.LoadFile(ctx, state.Request.Input, dataprocessing.LoadOptions{
		Country: state.Request.Country,
		Logger:  s.logger,
	})
	if err != nil {
		return err
	}

	r := ds.Report
	s.metrics.RecordLoad(ctx, infrastructure.LoadCounts{
		Read:           r.RowsRead,
		Kept:           r.Kept,
		Dropped:        r.Dropped(),
		MalformedDates: r.MalformedDates,
		MissingSalary:  r.MissingSalary,
		InvalidSalary:  r.InvalidSalaries,
	})
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"rows.read":    r.RowsRead,
		"rows.kept":    r.Kept,
		"rows.dropped": r.DroppedRows(),
	})

	state.Dataset = ds
	return nil
}

// AnalyzeStep aggregates and ranks the requested questions
type AnalyzeStep struct {
	BaseStage
	logger *slog.Logger
}

// NewAnalyzeStep creates the analysis step
func NewAnalyzeStep(logger *slog.Logger) *AnalyzeStep {
	return &AnalyzeStep{
		BaseStage: NewBaseStage(StepAnalyze, "Aggregate and rank"),
		logger:    logger,
	}
}

// Execute implements Step
func (s *AnalyzeStep) Execute(ctx context.Context, state *OperationState) error {
	if state.Dataset == nil {
		return apperrors.NewValidationError("no dataset loaded", nil)
	}
	opts := state.Request.Options
	if err := opts.Validate(); err != nil {
		return err
	}

	postings := state.Dataset.Postings
	var results Results

	for _, q := range state.Request.Questions {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch q {
		case domain.QuestionDemand:
			r := dataprocessing.AnalyzeDemand(postings, opts)
			results.Demand = &r
		case domain.QuestionTrend:
			r := dataprocessing.AnalyzeTrend(postings, opts)
			results.Trend = &r
		case domain.QuestionPay:
			r := dataprocessing.AnalyzePay(postings, opts)
			results.Pay = &r
		case domain.QuestionOptimal:
			r := dataprocessing.AnalyzeOptimal(postings, opts)
			results.Optimal = &r
		default:
			return apperrors.NewValidationError(fmt.Sprintf("unknown question %q", q), nil)
		}

		infrastructure.AddSpanEvent(ctx, "question.analysed", map[string]interface{}{"question": string(q)})
		s.logger.DebugContext(ctx, "Question analysed", slog.String("question", string(q)))
	}

	state.Results = results
	state.Views = results.Views()
	return nil
}

// PresentStep renders the views with each presenter in turn
type PresentStep struct {
	BaseStage
	presenters []presenter.Presenter
}

// NewPresentStep creates the render step
func NewPresentStep(presenters ...presenter.Presenter) *PresentStep {
	return &PresentStep{
		BaseStage:  NewBaseStage(StepPresent, "Render tables and charts"),
		presenters: presenters,
	}
}

// Execute implements Step
func (s *PresentStep) Execute(ctx context.Context, state *OperationState) error {
	for _, p := range s.presenters {
		if err := p.Present(ctx, state.Views); err != nil {
			return err
		}
		if producer, ok := p.(Producer); ok {
			state.AddArtifacts(producer.Outputs(state.Views)...)
		}
	}
	return nil
}

// ManifestStep writes the run manifest
type ManifestStep struct {
	BaseStage
	paths *config.Paths
	// files written after the pipeline, such as the metrics textfile
	extra []string
}

// NewManifestStep creates the manifest step
func NewManifestStep(paths *config.Paths, extra ...string) *ManifestStep {
	return &ManifestStep{
		BaseStage: NewBaseStage(StepManifest, "Write run manifest"),
		paths:     paths,
		extra:     extra,
	}
}

// Execute implements Step
func (s *ManifestStep) Execute(ctx context.Context, state *OperationState) error {
	input, err := exporter.DescribeInput(state.Request.Input)
	if err != nil {
		return err
	}

	questions := make([]string, len(state.Request.Questions))
	for i, q := range state.Request.Questions {
		questions[i] = string(q)
	}

	m := &exporter.Manifest{
		RunID:      state.ID,
		Version:    contracts.GetVersionInfo(),
		StartedAt:  state.StartTime.UTC(),
		FinishedAt: time.Now().UTC(),
		Questions:  questions,
		Input:      input,
		Country:    state.Request.Country,
		Options:    state.Request.Options,
	}
	if state.Dataset != nil {
		m.CleanReport = state.Dataset.Report
	}
	m.AddArtifacts(s.paths, state.Artifacts...)
	m.AddArtifacts(s.paths, s.extra...)
	m.AddArtifacts(s.paths, s.paths.ManifestFile)

	if err := exporter.WriteManifest(s.paths.ManifestFile, m); err != nil {
		return err
	}
	state.AddArtifacts(s.paths.ManifestFile)
	return nil
}
