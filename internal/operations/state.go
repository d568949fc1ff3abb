package operations

import (
	"sync"
	"time"

	"skillpulse/internal/dataprocessing"
	"skillpulse/internal/presenter"
	"skillpulse/pkg/contracts/domain"
)

// OperationStatusValue represents the overall run status
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// Results holds the answer to each requested question; unrequested ones stay nil
type Results struct {
	Demand  *dataprocessing.DemandResult
	Trend   *dataprocessing.TrendResult
	Pay     *dataprocessing.PayResult
	Optimal *dataprocessing.OptimalResult
}

// Views lays out every available result in report order
func (r Results) Views() []presenter.View {
	var views []presenter.View
	if r.Demand != nil {
		views = append(views, presenter.DemandViews(*r.Demand)...)
	}
	if r.Trend != nil {
		views = append(views, presenter.TrendViews(*r.Trend)...)
	}
	if r.Pay != nil {
		views = append(views, presenter.PayViews(*r.Pay)...)
	}
	if r.Optimal != nil {
		views = append(views, presenter.OptimalViews(*r.Optimal)...)
	}
	return views
}

// OperationState is the state of one pipeline run, shared by its steps
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`

	// Step states in execution order
	Steps []*StepState `json:"steps"`

	Request   RunRequest              `json:"request"`
	Dataset   *dataprocessing.Dataset `json:"-"`
	Results   Results                 `json:"-"`
	Views     []presenter.View        `json:"-"`
	Artifacts []string                `json:"artifacts"`

	Error error `json:"-"`
}

// RunRequest describes what a run should answer
type RunRequest struct {
	Input     string                         `json:"input"`
	Country   string                         `json:"country"`
	Questions []domain.Question              `json:"questions"`
	Options   dataprocessing.AnalysisOptions `json:"options"`
}

// Wants reports whether q was requested
func (r RunRequest) Wants(q domain.Question) bool {
	for _, want := range r.Questions {
		if want == q {
			return true
		}
	}
	return false
}

// NewOperationState creates a new run state
func NewOperationState(id string, req RunRequest) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Request:   req,
	}
}

// Start marks the run as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the run as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the run as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the run as cancelled
func (p *OperationState) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
}

// GetStatus returns the run status
func (p *OperationState) GetStatus() OperationStatusValue {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Status
}

// GetStage returns the state of a specific step, or nil
func (p *OperationState) GetStage(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, s := range p.Steps {
		if s.ID == stepID {
			return s
		}
	}
	return nil
}

// addStage appends a step state
func (p *OperationState) addStage(state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps = append(p.Steps, state)
}

// AddArtifacts records files written by the run
func (p *OperationState) AddArtifacts(files ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Artifacts = append(p.Artifacts, files...)
}

// Duration returns the duration of the run
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// HasFailures returns true if any step has failed
func (p *OperationState) HasFailures() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, s := range p.Steps {
		if s.GetStatus() == StepStatusFailed {
			return true
		}
	}
	return false
}
