package domain

import (
	"context"
	"errors"
)

// ErrorKind classifies a terminal pipeline failure.
type ErrorKind string

const (
	InvalidTripParameters      ErrorKind = "InvalidTripParameters"
	EmptySelection             ErrorKind = "EmptySelection"
	NarrativeGenerationFailed  ErrorKind = "NarrativeGenerationFailed"
	MalformedGeneratorResponse ErrorKind = "MalformedGeneratorResponse"
)

// Stage is a pipeline state. Failed and Done are terminal.
type Stage string

const (
	StageIdle                Stage = "idle"
	StageFiltering           Stage = "filtering"
	StageAllocating          Stage = "allocating"
	StageRequestingNarrative Stage = "requesting_narrative"
	StageReconciling         Stage = "reconciling"
	StageDone                Stage = "done"
	StageFailed              Stage = "failed"
)

// PlanError is the single terminal failure a pipeline run produces.
// Stage is the state the run was in when it failed.
type PlanError struct {
	Kind  ErrorKind
	Stage Stage
	Msg   string
	Err   error
}

func (e *PlanError) Error() string {
	s := string(e.Kind)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *PlanError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was caused by the caller's deadline
// or cancellation.
func (e *PlanError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded) || errors.Is(e.Err, context.Canceled)
}

// KindOf returns the ErrorKind carried by err, or "" if err is not a PlanError.
func KindOf(err error) ErrorKind {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err is a PlanError of kind k.
func IsKind(err error, k ErrorKind) bool { return KindOf(err) == k }
