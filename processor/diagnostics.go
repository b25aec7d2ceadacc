package processor

import (
	"github.com/tributary-io/tributary/types"
	"github.com/tributary-io/tributary/utils/logger"
)

type (
	// Diagnostics receives per-event failure notifications. Failures reported
	// here are informational: the event has already been handled (passed
	// through unmodified or recovered) by the time the observer is called.
	Diagnostics interface {
		// EventFailure reports a failure that left the event unmodified
		EventFailure(event *types.Event, err error)
		// RecoveredFailure reports a failure the processor recovered from
		// on its own, e.g. by falling back to generated column names
		RecoveredFailure(event *types.Event, err error)
	}

	// DiagnosticsAware processors accept an injected observer at build time
	DiagnosticsAware interface {
		SetDiagnostics(Diagnostics)
	}

	logDiagnostics struct{}
)

// DefaultDiagnostics logs failures through the process logger.
func DefaultDiagnostics() Diagnostics {
	return logDiagnostics{}
}

func (logDiagnostics) EventFailure(event *types.Event, err error) {
	logger.Errorf("failed to process event [%v]: %s", event.Data(), err)
}

func (logDiagnostics) RecoveredFailure(event *types.Event, err error) {
	logger.Debugf("recovered from failure on event [%v]: %s", event.Data(), err)
}
