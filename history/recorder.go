// Package history persists simulation runs so past decisions can be
// reviewed. Recording is optional; without a database path the no-op
// recorder is used and nothing is kept.
package history

// Run is one recorded simulation run over a portfolio.
type Run struct {
	ID         int64
	// Date is the simulation date in ISO-8601.
	Date       string
	// Portfolio is the path of the portfolio CSV the run was loaded from.
	Portfolio  string
	CashBefore float64
	CashAfter  float64
	// ActionCount is filled by Runs; listings do not carry the actions.
	ActionCount int
	Actions     []RunAction
}

// RunAction is one action of a recorded run.
type RunAction struct {
	Symbol    string
	Kind      string
	Shares    float64
	Price     float64
	CashDelta float64
	Reason    string
}

// Recorder persists simulation runs for later review.
type Recorder interface {
	// RecordRun stores a run and its actions, filling run.ID.
	RecordRun(run *Run) error
	// Runs returns the most recent runs, newest first, without their actions.
	Runs(limit int) ([]Run, error)
	// Actions returns the actions of one recorded run, in log order.
	Actions(runID int64) ([]RunAction, error)
	Close() error
}

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *Run) error                { return nil }
func (n *NoopRecorder) Runs(_ int) ([]Run, error)             { return nil, nil }
func (n *NoopRecorder) Actions(_ int64) ([]RunAction, error)  { return nil, nil }
func (n *NoopRecorder) Close() error                          { return nil }
