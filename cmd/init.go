package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/config"
)

var forceInit bool

// initCmd: tutor init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with the default settings",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile, forceInit); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", cfgFile)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing configuration file")
}

func initConfigurationFile(configurationPath string, force bool) error {
	if configurationPath == "" {
		configurationPath = config.DefaultPath
	}
	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite it", configurationPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return config.Write(configurationPath, config.Default())
}
