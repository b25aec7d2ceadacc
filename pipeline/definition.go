package pipeline

import (
	"fmt"

	"github.com/mitchellh/hashstructure"

	"github.com/tributary-io/tributary/constants"
	"github.com/tributary-io/tributary/utils"
)

type (
	// StageDefinition is one entry of the processors list: a single-key map
	// from plugin name to its raw settings block.
	StageDefinition map[constants.ProcessorType]map[string]any

	Definition struct {
		Name       string            `json:"name" validate:"required"`
		Workers    int               `json:"workers,omitempty"`
		BatchSize  int               `json:"batch_size,omitempty"`
		Processors []StageDefinition `json:"processors" validate:"required,min=1"`
	}
)

func LoadDefinition(path string) (*Definition, error) {
	definition := &Definition{}
	if err := utils.UnmarshalFile(path, definition); err != nil {
		return nil, err
	}
	return definition, nil
}

func (d *Definition) Validate() error {
	if d.Workers <= 0 {
		d.Workers = constants.DefaultThreadCount
	}
	if d.BatchSize <= 0 {
		d.BatchSize = constants.DefaultBatchSize
	}

	for idx, stage := range d.Processors {
		if len(stage) != 1 {
			return fmt.Errorf("processors[%d] must hold exactly one plugin, found %d", idx, len(stage))
		}
	}

	return utils.Validate(d)
}

// Hash produces a stable identity for the definition, used to tag runs of
// the same pipeline across restarts.
func (d *Definition) Hash() (uint64, error) {
	return hashstructure.Hash(d, nil)
}
