package progress

import "time"

// RunState is the lifecycle state of a seeding run.
type RunState string

// RunState values.
const (
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// IsTerminal returns true once the run has finished either way.
func (s RunState) IsTerminal() bool {
	return s == RunCompleted || s == RunFailed
}

// Run is one invocation of the seeder.
type Run struct {
	id           string
	state        RunState
	startedAt    time.Time
	finishedAt   *time.Time
	reset        bool
	seed         uint64
	errorMessage string
}

// NewRun starts a run.
func NewRun(id string, startedAt time.Time, reset bool, seed uint64) Run {
	return Run{
		id:        id,
		state:     RunRunning,
		startedAt: startedAt.UTC(),
		reset:     reset,
		seed:      seed,
	}
}

// ReconstructRun recreates a run from persistence.
func ReconstructRun(
	id string,
	state RunState,
	startedAt time.Time,
	finishedAt *time.Time,
	reset bool,
	seed uint64,
	errorMessage string,
) Run {
	return Run{
		id:           id,
		state:        state,
		startedAt:    startedAt,
		finishedAt:   finishedAt,
		reset:        reset,
		seed:         seed,
		errorMessage: errorMessage,
	}
}

// ID returns the run id.
func (r Run) ID() string { return r.id }

// State returns the run state.
func (r Run) State() RunState { return r.state }

// StartedAt returns when the run started.
func (r Run) StartedAt() time.Time { return r.startedAt }

// FinishedAt returns when the run ended, or nil.
func (r Run) FinishedAt() *time.Time { return r.finishedAt }

// Reset reports whether the run emptied the store first.
func (r Run) Reset() bool { return r.reset }

// Seed returns the random seed the run drew from.
func (r Run) Seed() uint64 { return r.seed }

// Error returns the failure message.
func (r Run) Error() string { return r.errorMessage }

// Complete marks the run completed.
func (r Run) Complete(at time.Time) Run {
	return r.finish(RunCompleted, at, "")
}

// Fail marks the run failed with msg.
func (r Run) Fail(at time.Time, msg string) Run {
	return r.finish(RunFailed, at, msg)
}

func (r Run) finish(state RunState, at time.Time, msg string) Run {
	at = at.UTC()
	r.state = state
	r.finishedAt = &at
	r.errorMessage = msg
	return r
}

// Duration returns the elapsed time of a finished run.
func (r Run) Duration() time.Duration {
	if r.finishedAt == nil {
		return 0
	}
	return r.finishedAt.Sub(r.startedAt)
}
