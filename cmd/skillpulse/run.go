package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"skillpulse/internal/config"
	"skillpulse/internal/dataprocessing"
	"skillpulse/internal/exporter"
	"skillpulse/internal/infrastructure"
	"skillpulse/internal/operations"
	"skillpulse/internal/presenter"
	"skillpulse/internal/validation"
	"skillpulse/pkg/contracts"
	"skillpulse/pkg/contracts/domain"
)

// runAnalysis loads configuration, wires the pipeline and runs it for questions
func runAnalysis(cmd *cobra.Command, flags *cliFlags, questions []domain.Question) error {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()
	slog.SetDefault(logger)

	paths, err := config.GetPaths(cfg.Output.Dir)
	if err != nil {
		return err
	}
	files := validation.NewFileValidator(logger)
	if err := files.ValidateInputFile(cfg.Analysis.Input); err != nil {
		return err
	}
	if err := files.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.TraceExporter = cfg.Telemetry.TraceExporter
	otelCfg.TraceFile = paths.TracesFile
	otelCfg.TraceWriter = cmd.ErrOrStderr()
	otelCfg.SampleRatio = cfg.Telemetry.SampleRatio
	otelCfg.EnableMetrics = cfg.Telemetry.MetricsFile

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			infrastructure.WithError(logger, err).Warn("Telemetry shutdown failed")
		}
	}()

	var metrics *infrastructure.PipelineMetrics
	if cfg.Telemetry.MetricsFile {
		if metrics, err = infrastructure.NewPipelineMetrics(providers.Meter); err != nil {
			return err
		}
	}

	manager, err := buildPipeline(cfg, paths, logger, metrics, providers, cmd)
	if err != nil {
		return err
	}

	ctx := infrastructure.EnsureRunID(cmd.Context())
	runID := infrastructure.GetRunID(ctx)

	logger.InfoContext(ctx, "Starting skillpulse",
		slog.String("version", contracts.Version),
		slog.String("input", cfg.Analysis.Input),
		slog.String("output_dir", paths.OutputDir))

	state := operations.NewOperationState(runID, operations.RunRequest{
		Input:     cfg.Analysis.Input,
		Country:   cfg.Analysis.Country,
		Questions: questions,
		Options:   analysisOptions(cfg.Analysis),
	})
	runErr := manager.Execute(ctx, state)

	if cfg.Telemetry.MetricsFile {
		if err := providers.WriteMetrics(paths.MetricsFile); err != nil {
			infrastructure.WithError(logger, err).Warn("Failed to write metrics")
		}
	}

	if runErr != nil {
		return runErr
	}

	logger.InfoContext(ctx, "Run complete",
		slog.Duration("duration", state.Duration()),
		slog.Int("artifacts", len(state.Artifacts)))
	return nil
}

func buildPipeline(cfg *config.Config, paths *config.Paths, logger *slog.Logger,
	metrics *infrastructure.PipelineMetrics, providers *infrastructure.OTelProviders, cmd *cobra.Command) (*operations.Manager, error) {
	var presenters []presenter.Presenter
	if cfg.Output.Tables {
		presenters = append(presenters, exporter.NewTableExporter(paths, logger, metrics))
	}
	if cfg.Output.Workbook {
		presenters = append(presenters, presenter.NewWorkbookPresenter(paths.WorkbookFile, logger, metrics))
	}
	if cfg.Output.Console {
		presenters = append(presenters, presenter.NewConsolePresenter(cmd.OutOrStdout(), logger))
	}

	steps := []operations.Step{
		operations.NewLoadStep(logger, metrics),
		operations.NewAnalyzeStep(logger),
		operations.NewPresentStep(presenters...),
	}
	if cfg.Output.Manifest {
		var extra []string
		if cfg.Telemetry.MetricsFile {
			extra = append(extra, paths.MetricsFile)
		}
		if cfg.Telemetry.TraceExporter == "file" {
			extra = append(extra, paths.TracesFile)
		}
		steps = append(steps, operations.NewManifestStep(paths, extra...))
	}

	manager := operations.NewManager(
		operations.WithLogger(logger),
		operations.WithTracer(providers.Tracer),
		operations.WithMetrics(metrics),
	)
	for _, step := range steps {
		if err := manager.RegisterStep(step); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

// analysisOptions maps configuration onto analysis options
func analysisOptions(a config.AnalysisConfig) dataprocessing.AnalysisOptions {
	return dataprocessing.AnalysisOptions{
		FocusTitle:         a.FocusTitle,
		TopTitles:          a.TopTitles,
		TopN:               a.TopN,
		SalaryTopN:         a.SalaryTopN,
		DistributionTitles: a.DistributionTitles,
		MinDemandPercent:   a.MinDemandPercent,
		Ascending:          a.Ascending,
	}
}
