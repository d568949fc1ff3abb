package operations

import (
	"context"
	"sync"
	"time"
)

// Step represents a single step of a pipeline run
type Step interface {
	// ID returns the unique identifier for this step
	ID() string

	// Name returns the human-readable name for this step
	Name() string

	// Execute runs the step against the shared run state
	Execute(ctx context.Context, state *OperationState) error
}

// StepStatus represents the current status of a step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepState represents the runtime state of a step
type StepState struct {
	mu        sync.RWMutex
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     error      `json:"-"`
}

// NewStepState creates a new step state with default values
func NewStepState(id, name string) *StepState {
	return &StepState{
		ID:     id,
		Name:   name,
		Status: StepStatusPending,
	}
}

// Start marks the step as active and sets the start time
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.StartTime = &now
	s.Status = StepStatusActive
}

// Complete marks the step as completed and sets the end time
func (s *StepState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
}

// Fail marks the step as failed with the given error
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	s.Error = err
}

// Skip marks the step as skipped with the given reason
func (s *StepState) Skip(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = StepStatusSkipped
	s.Message = reason
}

// GetStatus returns the current status
func (s *StepState) GetStatus() StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// Duration returns the duration of the step execution
func (s *StepState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// BaseStage provides the identity half of a Step
type BaseStage struct {
	id   string
	name string
}

// NewBaseStage creates a new base step
func NewBaseStage(id, name string) BaseStage {
	return BaseStage{id: id, name: name}
}

// ID returns the step ID
func (b *BaseStage) ID() string {
	if b == nil {
		return ""
	}
	return b.id
}

// Name returns the step name
func (b *BaseStage) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}
