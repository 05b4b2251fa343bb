package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/barscope/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage barscope configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  barscope config init -o barscope.yaml
  barscope config validate -f barscope.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

Example:
  barscope config init -o barscope.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  barscope config validate -f barscope.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "barscope.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(w, "\nEdit the file and run with:")
	fmt.Fprintf(w, "  barscope build --config %s --bars <bars.csv>\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(w, "  Symbol: %s (%.0f minute bars, %s)\n", cfg.Symbol, cfg.TimeframeMinutes, cfg.Timezone)
	fmt.Fprintf(w, "  Indicators: ATR %d, EMA %d, volume z %d\n",
		cfg.Indicators.ATRPeriod, cfg.Indicators.EMAPeriod, cfg.Indicators.VolumeZLookback)
	fmt.Fprintf(w, "  Output: %s %s\n", cfg.Output.Format, cfg.Output.Path)
	return nil
}
