package operations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"skillpulse/internal/infrastructure"
)

// TracerName names the tracer used for step spans
const TracerName = "skillpulse.operations"

// Manager runs registered steps sequentially. A failed step skips the rest.
type Manager struct {
	registry *Registry
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithTracer sets the tracer for step spans
func WithTracer(tracer trace.Tracer) ManagerOption {
	return func(m *Manager) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(metrics *infrastructure.PipelineMetrics) ManagerOption {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager with an empty registry
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: NewRegistry(),
		tracer:   noop.NewTracerProvider().Tracer(TracerName),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = infrastructure.WithComponent(m.logger, "operations")
	return m
}

// RegisterStep adds a step to run after those already registered
func (m *Manager) RegisterStep(step Step) error {
	return m.registry.Register(step)
}

// Steps returns the registered steps in order
func (m *Manager) Steps() []Step {
	return m.registry.List()
}

// Execute runs every step against state and returns the first failure
func (m *Manager) Execute(ctx context.Context, state *OperationState) error {
	ctx = infrastructure.WithRunID(ctx, state.ID)
	ctx, span := m.tracer.Start(ctx, "operation.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", state.ID),
			attribute.String("run.input", state.Request.Input),
		),
	)
	defer span.End()

	steps := m.registry.List()
	for _, step := range steps {
		state.addStage(NewStepState(step.ID(), step.Name()))
	}

	state.Start()
	m.logOperationStart(ctx, state)

	var runErr error
	for _, step := range steps {
		stepState := state.GetStage(step.ID())

		if runErr != nil {
			stepState.Skip("previous step failed")
			m.logStageSkipped(ctx, step.ID(), stepState.Message)
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			stepState.Skip("run cancelled")
			m.logStageSkipped(ctx, step.ID(), stepState.Message)
			continue
		}

		if err := m.executeStep(ctx, step, stepState, state); err != nil {
			runErr = NewStepError(step.ID(), err)
		}
	}

	m.metrics.RecordRuntime(ctx)

	switch {
	case runErr == nil:
		state.Complete()
	case errors.Is(runErr, context.Canceled):
		state.Cancel()
	default:
		state.Fail(runErr)
	}

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
	}
	m.logOperationComplete(ctx, state)
	return runErr
}

func (m *Manager) executeStep(ctx context.Context, step Step, stepState *StepState, state *OperationState) error {
	ctx, span := m.tracer.Start(ctx, "operation.step."+step.ID(),
		trace.WithAttributes(attribute.String("step.id", step.ID())))
	defer span.End()

	stepState.Start()
	m.logStageStart(ctx, step.ID(), step.Name())

	start := time.Now()
	err := step.Execute(ctx, state)
	duration := time.Since(start)
	m.metrics.RecordStep(ctx, step.ID(), duration, err)

	if err != nil {
		stepState.Fail(err)
		infrastructure.RecordError(ctx, err)
		m.logStageError(ctx, step.ID(), err)
		return err
	}

	stepState.Complete()
	m.logStageComplete(ctx, step.ID(), duration)
	return nil
}
