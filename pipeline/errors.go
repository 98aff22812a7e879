package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-motion/motion/binder"
)

// ErrNoResult is returned by Commit for a nil result.
var ErrNoResult = errors.New("pipeline: no result to commit")

// Stage names a pipeline step.
type Stage string

const (
	StageDecode   Stage = "decode"
	StageFilter   Stage = "filter"
	StageEnvelope Stage = "envelope"
	StageTimeline Stage = "timeline"
	StageBind     Stage = "bind"
)

// StageError reports which stage aborted a run. Role is set for the
// per-drive stages.
type StageError struct {
	Stage Stage
	Role  binder.Role
	Err   error
}

func (e *StageError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("pipeline: %s (%s): %v", e.Stage, e.Role, e.Err)
	}
	return fmt.Sprintf("pipeline: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage of a StageError in err's chain.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
