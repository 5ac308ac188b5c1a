package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/andromoze/internal/buildinfo"
	"github.com/cleared-dev/andromoze/internal/config"
	"github.com/cleared-dev/andromoze/internal/logger"
	"github.com/cleared-dev/andromoze/internal/model"
)

// Exit codes returned by the andromoze binary.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitSchema         = 2
	ExitClassification = 3
	ExitFormat         = 4
)

type rootOptions struct {
	inputFile  string
	outputFile string
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "andromoze",
		Short:   "Convert AndroMoney exports into MOZE import files",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := logger.New(cmd.ErrOrStderr(), opts.verbose)
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.inputFile, "input_file", config.DefaultInputFile,
		fmt.Sprintf("Input Filename (default: %s)", config.DefaultInputFile))
	flags.StringVar(&opts.outputFile, "output_file", config.DefaultOutputFile,
		fmt.Sprintf("Output Filename (default: %s)", config.DefaultOutputFile))
	flags.StringVar(&opts.configPath, "config", "",
		fmt.Sprintf("config file (default: ./%s when present)", config.DefaultFileName))
	flags.BoolVar(&opts.verbose, "verbose", false, "log each conversion step")

	rootCmd.AddCommand(newTransformatCommand(opts))
	rootCmd.AddCommand(newExtractCommand(opts))
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

// loadConfig resolves the configuration for a run. File paths given on the
// command line win over the config file.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			path = config.DefaultFileName
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
		logger.FromContext(cmd.Context()).Debug().Str("config", path).Msg("loaded config")
	}

	if cmd.Flags().Changed("input_file") || cfg.Files.Input == "" {
		cfg.Files.Input = o.inputFile
	}
	if cmd.Flags().Changed("output_file") || cfg.Files.Output == "" {
		cfg.Files.Output = o.outputFile
	}
	return cfg, nil
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var schemaErr *model.SchemaError
	var classErr *model.ClassificationError
	var formatErr *model.FormatError
	switch {
	case errors.As(err, &schemaErr):
		return ExitSchema
	case errors.As(err, &classErr):
		return ExitClassification
	case errors.As(err, &formatErr):
		return ExitFormat
	default:
		return ExitFailure
	}
}
