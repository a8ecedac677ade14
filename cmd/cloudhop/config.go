package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cloudhop/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tuning as YAML",
	Long: `Print the tuning found by the config search. Speeds are the base
values; the difficulty preset scales them when a game starts. Redirect
the output to a file to start a custom config.

Search order: --config, ~/.cloudhop/configs/cloudhop.yaml,
./configs/cloudhop.yaml, built-in defaults.

Examples:
  cloudhop config
  cloudhop config --difficulty hard > ~/.cloudhop/configs/cloudhop.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		cfg.Difficulty.Preset = preset
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
