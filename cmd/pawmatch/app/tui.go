package app

import (
	"github.com/spf13/cobra"

	pawapp "github.com/five82/pawmatch/internal/app"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().String("prefs", "", "Path to preferences file (default $XDG_CONFIG_HOME/pawmatch/prefs.toml)")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	prefsPath, _ := cmd.Flags().GetString("prefs")

	return pawapp.Run(cmd.Context(), pawapp.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		LogLevel:   logLevel,
	})
}
