package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/config"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:               "tutor",
	Short:             "tutor - practice and check propositional logic exercises",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// setup builds the logger and loads the configuration for every command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = newLogger(verbose)
	if err != nil {
		return err
	}

	if err := config.LoadDotenv(logger); err != nil {
		return err
	}
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	return cfg.ApplyEnv(os.LookupEnv)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	config.Encoding = "console"
	config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return config.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for lint and check runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(canonCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(serveCmd)
}
