// Package errors provides the error-kind classification used across the
// probing pipeline. None of these are ever returned up the call stack as
// fatal (spec §7 "Propagation policy. No error ever aborts the overall
// run."); they are attached to log fields and counters so callers can
// tell a compile-reject from a spawn-fail without parsing message
// strings. Adapted from the teacher's AppError/ErrorType shape
// (internal/shared/errors/errors.go) with the HTTP status coupling
// removed, since nothing in this module is an HTTP handler.
package errors

import (
	"errors"
	"fmt"
)

// Kind enumerates exactly the error kinds spec §7 distinguishes.
type Kind string

const (
	KindCompileReject     Kind = "compile_reject"
	KindRuntimeReject     Kind = "runtime_reject"
	KindSpawnFail         Kind = "spawn_fail"
	KindReadinessTimeout  Kind = "readiness_timeout"
	KindProbeTimeout      Kind = "probe_timeout"
	KindProbeError        Kind = "probe_error"
	KindHardBatchTimeout  Kind = "hard_batch_timeout"
	KindPolicyReject      Kind = "policy_reject"
)

// PipelineError carries a Kind alongside the usual wrapped error chain.
type PipelineError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// New constructs a PipelineError of the given kind.
func New(kind Kind, message string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the Kind from err, or "" if err is not (or does not
// wrap) a *PipelineError.
func KindOf(err error) Kind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Is reports whether err is (or wraps) a PipelineError of kind k.
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}
