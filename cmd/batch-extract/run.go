package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/batch-extract/internal/archive"
	"github.com/pdiddy/batch-extract/internal/batch"
	"github.com/pdiddy/batch-extract/internal/logging"
	"github.com/pdiddy/batch-extract/internal/password"
	"github.com/pdiddy/batch-extract/pkg/types"
)

// bindFlags binds the named command flags to viper keys. Several commands
// share flag names, so binding happens when the command runs rather than
// in init.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig collects the batch settings from flags, environment and the
// config file.
func loadConfig() types.ExtractConfig {
	return types.ExtractConfig{
		SourceDir:           viper.GetString("source"),
		DestDir:             viper.GetString("dest"),
		PasswordsDir:        viper.GetString("passwords_dir"),
		MaxPasswordAttempts: viper.GetInt("max_password_attempts"),
		NonInteractive:      viper.GetBool("non_interactive"),
		Progress:            viper.GetBool("progress"),
		ReportPath:          viper.GetString("report"),
		ReportFormat:        types.ReportFormat(viper.GetString("report_format")),
		ScratchDir:          viper.GetString("scratch_dir"),
	}
}

func newLogger() (*zap.Logger, error) {
	return logging.New(viper.GetBool("verbose"))
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// newOrchestrator builds the pipeline for one batch. Each batch gets its
// own password cache, seeded from the passwords folder when one is set.
func newOrchestrator(cfg types.ExtractConfig, asker password.Asker, w io.Writer, log *zap.Logger) (*batch.Orchestrator, error) {
	cache := password.NewCache()
	if cfg.PasswordsDir != "" {
		seeds, err := password.LoadSeeds(cfg.PasswordsDir, log)
		if err != nil {
			return nil, err
		}
		cache.Seed(seeds)
		if len(seeds) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded %d password(s) from %s\n", len(seeds), cfg.PasswordsDir)
		}
	}

	var progress io.Writer
	if cfg.Progress {
		progress = os.Stderr
	}

	neg := password.NewNegotiator(cache, asker, w, log)
	return batch.New(archive.DefaultRegistry(), neg, batch.Config{
		MaxPasswordAttempts: cfg.Attempts(),
		Progress:            progress,
		Color:               !color.NoColor,
	}, w, log), nil
}

// writeReport saves the report when a report path is configured.
func writeReport(cfg types.ExtractConfig, r types.BatchReport) error {
	if cfg.ReportPath == "" {
		return nil
	}
	if err := batch.WriteReport(cfg.ReportPath, cfg.ReportFormat, r); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", cfg.ReportPath)
	return nil
}

// defaultScratchRoot returns the folder holding the running executable,
// or the working directory when it cannot be determined.
func defaultScratchRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
