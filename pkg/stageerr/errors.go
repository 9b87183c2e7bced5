// Package stageerr defines the fatal error kinds the rebalance pipeline can
// produce (spec §7). All of them are fatal to the pipeline step that raised
// them — none are meant to be caught and retried inside the core; a
// throttled partition is a valid outcome and is never represented as an
// error.
//
// This mirrors the shape of the teacher's pkg/errors.PermanentError: a
// small wrapper type plus an As-based predicate, extended with a Kind so
// callers can branch on which of the three fatal §7 error kinds occurred, and with
// a GRPCStatus method so a transport layer can call status.FromError
// without a bespoke mapping table.
package stageerr

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind enumerates the fatal error kinds from spec §7. MissingParticipantVersion
// is intentionally absent: it is a warning, never an error value.
type Kind string

const (
	KindMissingInput             Kind = "MissingInput"
	KindMissingControllerVersion Kind = "MissingControllerVersion"
	KindIncompatibleVersion      Kind = "IncompatibleVersion"
)

// StageError is a fatal, structured error raised by the compatibility gate
// or the intermediate computer.
type StageError struct {
	Kind    Kind
	Message string
	// Fields carries structured context (e.g. "controller", "participant",
	// "controllerVersion", "participantVersion", "missing") for logging
	// without string-parsing Message.
	Fields map[string]string
	Err    error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StageError) Unwrap() error { return e.Err }

// GRPCStatus lets status.FromError(err) recognize a *StageError without the
// caller needing a bespoke Kind->code mapping table of its own.
func (e *StageError) GRPCStatus() *status.Status {
	return status.New(codeFor(e.Kind), e.Error())
}

func codeFor(k Kind) codes.Code {
	switch k {
	case KindMissingInput:
		return codes.FailedPrecondition
	case KindMissingControllerVersion, KindIncompatibleVersion:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// MissingInput reports that one or more required stage attributes were
// absent. missing names the attributes, e.g. []string{"currentState", "cache"}.
func MissingInput(missing []string) error {
	return &StageError{
		Kind:    KindMissingInput,
		Message: "missing required stage attributes",
		Fields:  map[string]string{"missing": fmt.Sprint(missing)},
	}
}

// MissingControllerVersion reports that the controller has no declared, or
// an unparseable, version.
func MissingControllerVersion(controller string, cause error) error {
	return &StageError{
		Kind:    KindMissingControllerVersion,
		Message: fmt.Sprintf("controller %q has no usable version", controller),
		Fields:  map[string]string{"controller": controller},
		Err:     cause,
	}
}

// IncompatibleVersion reports that participant's primary version is
// incompatible with the controller's.
func IncompatibleVersion(controller, controllerVersion, participant, participantVersion string) error {
	return &StageError{
		Kind:    KindIncompatibleVersion,
		Message: "controller and participant versions are incompatible",
		Fields: map[string]string{
			"controller":         controller,
			"controllerVersion":  controllerVersion,
			"participant":        participant,
			"participantVersion": participantVersion,
		},
	}
}

// IsFatal reports whether err is a *StageError (all StageErrors are fatal;
// there is no non-fatal variant, so this is simply a type predicate kept
// for readability at call sites, mirroring the teacher's IsPermanent).
func IsFatal(err error) bool {
	var se *StageError
	return errors.As(err, &se)
}

// As extracts *StageError from err, if present.
func As(err error) (*StageError, bool) {
	var se *StageError
	ok := errors.As(err, &se)
	return se, ok
}
