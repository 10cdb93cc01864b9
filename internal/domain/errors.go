package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
)

type FailureKind string

const (
	FailureGeneration  FailureKind = "generation"
	FailureValidation  FailureKind = "validation"
	FailurePersistence FailureKind = "persistence"
)

// AnalysisFailure is raised anywhere in the generate, validate, persist chain.
// Pass is "basic" or "deep".
type AnalysisFailure struct {
	Kind      FailureKind
	Pass      string
	Retryable bool
	Err       error
}

func (e *AnalysisFailure) Error() string {
	if e == nil {
		return "analysis failure"
	}
	msg := fmt.Sprintf("%s analysis %s failure", e.Pass, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AnalysisFailure) Unwrap() error { return e.Err }

// AsAnalysisFailure extracts an *AnalysisFailure from err's chain.
func AsAnalysisFailure(err error) (*AnalysisFailure, bool) {
	var af *AnalysisFailure
	if errors.As(err, &af) && af != nil {
		return af, true
	}
	return nil, false
}
