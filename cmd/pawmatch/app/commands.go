// Package app holds the pawmatch command line.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	pawapp "github.com/five82/pawmatch/internal/app"
	"github.com/five82/pawmatch/internal/config"
	"github.com/five82/pawmatch/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:               "pawmatch",
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	Short:             "Find an adoptable dog from the terminal",
	Long: `pawmatch searches a remote catalog of adoptable dogs. Filter by breed, zip
code and age, keep a list of favorites and ask the catalog to pick a match.

Run without a subcommand to open the interactive interface.`,
	RunE: runTUI,
}

var rootOnce sync.Once

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootOnce.Do(func() {
		rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/pawmatch/config.toml)")
		rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

		rootCmd.AddCommand(tuiCmd)
		rootCmd.AddCommand(breedsCmd)
		rootCmd.AddCommand(searchCmd)
		rootCmd.AddCommand(matchCmd)
		rootCmd.AddCommand(versionCmd)
	})
	return rootCmd
}

// cliServices loads config, builds a stderr logger and signs in. Callers
// must call the returned cleanup, which logs out.
func cliServices(cmd *cobra.Command) (*pawapp.Services, func(), error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	logger, err := logging.New(logging.Options{Writer: os.Stderr, Level: cfg.LogLevel})
	if err != nil {
		logger.Warn("Invalid log level, using info", "error", err)
	}
	slog.SetDefault(logger)

	svc, err := pawapp.NewServices(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if err := svc.Login(ctx); err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	cleanup := func() {
		if err := svc.Session.Logout(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Logout failed", "error", err)
		}
	}
	return svc, cleanup, nil
}
