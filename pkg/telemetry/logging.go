// Package telemetry sets up structured logging and per-invocation
// correlation IDs for the rebalance pipeline, and a debug dump helper for
// interactively inspecting an intermediate assignment.
//
// Grounded on the teacher's cli/run.go (zerologr.New(&log.Logger) wrapping
// a zerolog.Logger for controller-runtime) and pkg/discovery/discovery.go
// (uuid.NewUUID() for identifying discovery nodes) — here reused to
// identify one Compute invocation across its log lines.
package telemetry

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Beaver-Company/helix/pkg/model"
)

// NewLogger returns a zerolog.Logger writing structured, leveled output to
// stderr, matching the teacher's zerolog-everywhere convention.
func NewLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// NewInvocationID mints a correlation ID for one Compute call, so its log
// lines (and any published decision summaries) can be joined back together.
func NewInvocationID() string {
	return uuid.NewString()
}

// DumpAssignment pretty-prints out for interactive debugging (a --debug CLI
// flag). Grounded on github.com/davecgh/go-spew, which the teacher's go.mod
// requires but only reaches from a commented-out call site
// (pkg/resource/manager.go:400) — wired here into a real, reachable path.
func DumpAssignment(log zerolog.Logger, out model.IntermediateStateOutput) {
	log.Debug().Msg(spew.Sdump(out))
}
