package protocol

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tributary-io/tributary/constants"
	"github.com/tributary-io/tributary/pipeline"
	"github.com/tributary-io/tributary/utils"
	"github.com/tributary-io/tributary/utils/logger"
)

var (
	pipelinePath string
	inputPath    string
	outputPath   string
	batchSize    int
	workers      int

	definition *pipeline.Definition

	commands = []*cobra.Command{}
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tributary",
	Short: "root command",
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.SetDefault(constants.ConfigFolder, os.TempDir())
		if pipelinePath != "" {
			configFolder := utils.Ternary(filepath.Dir(pipelinePath) == ".", os.TempDir(), filepath.Dir(pipelinePath)).(string)
			viper.Set(constants.ConfigFolder, configFolder)
		}

		// logger uses CONFIG_FOLDER
		logger.Init()

		if len(args) == 0 {
			return cmd.Help()
		}

		if ok := utils.IsValidSubcommand(commands, args[0]); !ok {
			return fmt.Errorf("'%s' is an invalid command. Use 'tributary --help' to display usage guide", args[0])
		}

		return nil
	},
}

// loadDefinition reads and validates the pipeline definition file, applying
// CLI overrides for workers and batch size.
func loadDefinition() error {
	if pipelinePath == "" {
		return fmt.Errorf("--pipeline not passed")
	}

	loaded, err := pipeline.LoadDefinition(pipelinePath)
	if err != nil {
		return err
	}
	if workers > 0 {
		loaded.Workers = workers
	}
	if batchSize > 0 {
		loaded.BatchSize = batchSize
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	definition = loaded
	return nil
}

func Execute() {
	RootCmd.AddCommand(commands...)
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
	if err := RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func init() {
	commands = append(commands, specCmd, checkCmd, runCmd)
	RootCmd.PersistentFlags().StringVarP(&pipelinePath, "pipeline", "", "", "(Required) Pipeline definition file")
	RootCmd.PersistentFlags().StringVarP(&inputPath, "input", "", "", "Newline-delimited JSON input file, '-' for stdin")
	RootCmd.PersistentFlags().StringVarP(&outputPath, "output", "", "", "Output file for processed events, '-' for stdout")
	RootCmd.PersistentFlags().IntVarP(&batchSize, "batch-size", "", 0, "(Optional) Events per batch, overrides the definition")
	RootCmd.PersistentFlags().IntVarP(&workers, "workers", "", 0, "(Optional) Concurrent batch workers, overrides the definition")
}
