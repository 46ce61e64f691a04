package services

import "fmt"

// Stages that can abort a run. Cleaning and scoring recover locally.
const (
	StageCluster = "cluster"
	StageDemand  = "demand"
)

// StageError attributes a failed run to the stage that aborted it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
