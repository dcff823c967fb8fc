package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/shuttle/internal/config"
	"github.com/Iron-Ham/shuttle/internal/errors"
)

// Process exit codes. Usage errors and runtime errors are reported
// distinctly so callers can tell a bad invocation from a failed copy.
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitRuntime = 13
)

var rootCmd = &cobra.Command{
	Use:   "shuttle <source> <destination>",
	Short: "Cooperative fiber-based file copier",
	Long: `Shuttle copies a file through a single shared buffer using two
cooperatively scheduled fibers: a reader that fills the buffer and a
writer that drains it, handing control back and forth one round at a
time. Exactly one fiber runs at any instant, so the buffer needs no
locking.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.NewUsageError("expected exactly two arguments: <source> <destination>")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCopy(cmd, args[0], args[1])
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/shuttle/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	// Flag defaults mirror config.Default: a bound flag's default takes
	// precedence over viper.SetDefault, so the two must agree.
	rootCmd.Flags().Int("buffer-size", config.Default().Copy.BufferSize, "shared buffer capacity in bytes")
	_ = viper.BindPFlag("copy.buffer_size", rootCmd.Flags().Lookup("buffer-size"))
	rootCmd.Flags().Bool("progress", true, "show a progress bar when stdout is a terminal")
	_ = viper.BindPFlag("tui.progress", rootCmd.Flags().Lookup("progress"))
	rootCmd.Flags().BoolP("force", "f", false, "overwrite the destination if it exists")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SHUTTLE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., SHUTTLE_COPY_BUFFER_SIZE for copy.buffer_size
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
