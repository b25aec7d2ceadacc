package processor

import (
	"fmt"

	"github.com/tributary-io/tributary/constants"
	"github.com/tributary-io/tributary/types"
	"github.com/tributary-io/tributary/utils"
)

type (
	// NewFunc constructs an unconfigured processor instance
	NewFunc func() Processor

	Config interface {
		Validate() error
	}

	// Processor is one stage of the pipeline. Execute receives a batch of
	// events and must return the same events in the same order, mutated in
	// place; a processor never drops or reorders events.
	Processor interface {
		GetConfigRef() Config
		Spec() any
		Type() string
		// Init prepares the processor after its config has been
		// unmarshalled and validated
		Init() error
		Execute(events []*types.Event) []*types.Event
		// PrepareForShutdown signals no more batches will arrive
		PrepareForShutdown()
		IsReadyForShutdown() bool
		Shutdown()
	}
)

var Registered = map[constants.ProcessorType]NewFunc{}

// Build resolves a registered processor by name, feeds it the raw settings
// block from the pipeline definition, validates and inits it.
func Build(name constants.ProcessorType, settings map[string]any, diagnostics Diagnostics) (Processor, error) {
	newFunc, found := Registered[name]
	if !found {
		return nil, fmt.Errorf("unknown processor plugin %q", name)
	}

	proc := newFunc()
	if err := utils.Unmarshal(settings, proc.GetConfigRef()); err != nil {
		return nil, fmt.Errorf("failed to read %s processor settings: %s", name, err)
	}
	if err := proc.GetConfigRef().Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s processor settings: %s", name, err)
	}
	if observed, ok := proc.(DiagnosticsAware); ok && diagnostics != nil {
		observed.SetDiagnostics(diagnostics)
	}
	if err := proc.Init(); err != nil {
		return nil, fmt.Errorf("failed to init %s processor: %s", name, err)
	}

	return proc, nil
}
