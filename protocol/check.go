package protocol

import (
	"github.com/spf13/cobra"

	"github.com/tributary-io/tributary/pipeline"
	"github.com/tributary-io/tributary/processor"
	"github.com/tributary-io/tributary/utils/logger"
)

// checkCmd validates the pipeline definition and builds every stage without
// processing any events.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check command",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadDefinition()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		pipe, err := pipeline.New(definition, processor.DefaultDiagnostics())
		if err != nil {
			return err
		}

		logger.Infof("pipeline %s is valid: %d stage(s), %d worker(s), batch size %d",
			pipe.ID(), len(definition.Processors), definition.Workers, definition.BatchSize)
		return nil
	},
}
