package protocol

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tributary-io/tributary/constants"
	"github.com/tributary-io/tributary/processor"
	"github.com/tributary-io/tributary/utils"
	"github.com/tributary-io/tributary/utils/logger"
)

// specCmd prints the default settings of one plugin, or of every registered
// plugin when no name is passed.
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "spec command",
	RunE: func(_ *cobra.Command, args []string) error {
		names := make([]constants.ProcessorType, 0, len(processor.Registered))
		for name := range processor.Registered {
			names = append(names, name)
		}

		if len(args) > 0 {
			requested := constants.ProcessorType(args[0])
			if !utils.ExistInArray(names, requested) {
				return fmt.Errorf("unknown processor plugin %q", requested)
			}
			names = []constants.ProcessorType{requested}
		}

		specs := map[string]any{}
		for _, name := range names {
			specs[string(name)] = processor.Registered[name]().Spec()
		}

		encoded, err := json.MarshalIndent(specs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode plugin specs: %s", err)
		}

		logger.Info(string(encoded))
		return nil
	},
}
