package operations

import (
	"context"
	"log/slog"
	"time"
)

// logOperationStart logs the start of a run
func (m *Manager) logOperationStart(ctx context.Context, state *OperationState) {
	questions := make([]string, len(state.Request.Questions))
	for i, q := range state.Request.Questions {
		questions[i] = string(q)
	}
	m.logger.InfoContext(ctx, "operation_start",
		slog.String("input", state.Request.Input),
		slog.String("country", state.Request.Country),
		slog.Any("questions", questions),
		slog.Int("steps", len(state.Steps)))
}

// logOperationComplete logs the end of a run
func (m *Manager) logOperationComplete(ctx context.Context, state *OperationState) {
	level := slog.LevelInfo
	if state.GetStatus() != OperationStatusCompleted {
		level = slog.LevelError
	}
	m.logger.Log(ctx, level, "operation_complete",
		slog.String("status", string(state.GetStatus())),
		slog.Duration("duration", state.Duration()),
		slog.Int("artifacts", len(state.Artifacts)))
}

// logStageStart logs the start of a step
func (m *Manager) logStageStart(ctx context.Context, stepID, name string) {
	m.logger.InfoContext(ctx, "stage_start",
		slog.String("step", stepID),
		slog.String("name", name))
}

// logStageComplete logs the completion of a step
func (m *Manager) logStageComplete(ctx context.Context, stepID string, duration time.Duration) {
	m.logger.InfoContext(ctx, "stage_complete",
		slog.String("step", stepID),
		slog.Duration("duration", duration))
}

// logStageError logs a step error
func (m *Manager) logStageError(ctx context.Context, stepID string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	m.logger.ErrorContext(ctx, "stage_error",
		slog.String("step", stepID),
		slog.String("error", errorMsg))
}

// logStageSkipped logs a step that did not run
func (m *Manager) logStageSkipped(ctx context.Context, stepID, reason string) {
	m.logger.WarnContext(ctx, "stage_skipped",
		slog.String("step", stepID),
		slog.String("reason", reason))
}
