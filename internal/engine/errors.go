package engine

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch indicates a vector of the wrong length reached the
// engine. This is a systemic bug, not bad data, so it fails the whole call.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Stage identifies a pipeline step for error reporting and logging.
type Stage int

const (
	StageIdle Stage = iota
	StageVectorizing
	StageScoring
	StageDiversifying
	StageExplaining
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageVectorizing:
		return "vectorizing"
	case StageScoring:
		return "scoring"
	case StageDiversifying:
		return "diversifying"
	case StageExplaining:
		return "explaining"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ItemError reports a single candidate that failed vectorization or
// scoring. The item is excluded and the batch continues.
type ItemError struct {
	ItemID string
	Stage  Stage
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %s failed during %s: %v", e.ItemID, e.Stage, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// PipelineError wraps a failure that aborts a whole Recommend call,
// annotated with the stage it happened in.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed during %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func IsPipelineError(err error) bool {
	var target *PipelineError
	return errors.As(err, &target)
}
