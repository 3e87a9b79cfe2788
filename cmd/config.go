package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/riverwqi/internal/config"
)

var configWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after merging defaults, the config file, RIVERWQI_*
environment variables and flags. With --write the configuration is saved to a
config file riverwqi can load again: YAML for .yaml/.yml paths, JSON otherwise.`,
	Args: cobra.NoArgs,
	Run:  runCommand(runConfig),
}

func init() {
	configCmd.Flags().StringVar(&configWrite, "write", "", "Save the effective configuration to this file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	if configWrite != "" {
		if err := config.SaveConfig(cfg, configWrite); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Printf("Configuration written to %s\n", configWrite)
		}
		return nil
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
