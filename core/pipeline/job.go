package pipeline

import "fmt"

// State is a job's position in the pipeline. Every job moves through
// LOADED → EXTRACTED → TRANSFORMED → REPLACED → SERIALIZED; any stage
// failure moves it to the terminal FAILED state. No stage is retried
// automatically; the only recovery mechanism is the transformer's
// internal identity fallback.
type State string

const (
	StateCreated     State = "CREATED"
	StateLoaded      State = "LOADED"
	StateExtracted   State = "EXTRACTED"
	StateTransformed State = "TRANSFORMED"
	StateReplaced    State = "REPLACED"
	StateSerialized  State = "SERIALIZED"
	StateFailed      State = "FAILED"
)

// Job tracks one pipeline run.
type Job struct {
	Input string
	State State
	Err   error
}

func newJob(input string) *Job {
	return &Job{Input: input, State: StateCreated}
}

func (j *Job) advance(s State) {
	j.State = s
}

func (j *Job) fail(stage string, err error) *Job {
	j.State = StateFailed
	j.Err = fmt.Errorf("%s: %w", stage, err)
	return j
}

// Failed reports whether the job reached the terminal failure state.
func (j *Job) Failed() bool {
	return j.State == StateFailed
}
