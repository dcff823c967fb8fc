package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/shuttle/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, the config
file, environment variables, and flags.`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Fprintf(out, "# config file: %s\n", file)
	} else {
		fmt.Fprintf(out, "# no config file found (defaults shown); create one at %s\n", config.ConfigFile())
	}

	fmt.Fprintf(out, "copy.buffer_size: %d\n", cfg.Copy.BufferSize)
	fmt.Fprintf(out, "watch.debounce_ms: %d\n", cfg.Watch.DebounceMs)
	fmt.Fprintf(out, "tui.progress: %t\n", cfg.TUI.Progress)
	fmt.Fprintf(out, "logging.level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "logging.dir: %s\n", cfg.Logging.Dir)
	return nil
}
