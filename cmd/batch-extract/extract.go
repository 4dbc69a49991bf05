package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/batch-extract/internal/console"
	"github.com/pdiddy/batch-extract/internal/password"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract every archive in a folder",
	Long: `Extract runs one batch: scan the source folder, verify each archive,
and extract the valid ones into <dest>/<archive name>. Password prompts are
read from stdin unless --non-interactive is set, in which case protected
archives without a known password are skipped.

Exits non-zero after the summary when a non-interactive batch had failures.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("source", "", "folder containing the archives")
	extractCmd.Flags().String("dest", "", "output root; each archive gets its own subfolder")
	extractCmd.Flags().Bool("non-interactive", false, "never prompt; skip archives that need an unknown password")
	extractCmd.Flags().Int("max-password-attempts", 3, "password submissions allowed per archive")
	extractCmd.Flags().Bool("progress", true, "show a byte counter while extracting")
	extractCmd.Flags().String("report", "", "write the batch report to this file")
	extractCmd.Flags().String("report-format", "text", "report format: text, json or yaml")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"source":                "source",
		"dest":                  "dest",
		"non-interactive":       "non_interactive",
		"max-password-attempts": "max_password_attempts",
		"progress":              "progress",
		"report":                "report",
		"report-format":         "report_format",
	}); err != nil {
		return err
	}
	cfg := loadConfig()
	if cfg.SourceDir == "" || cfg.DestDir == "" {
		return fmt.Errorf("both --source and --dest are required")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var asker password.Asker = password.Unattended{}
	if !cfg.NonInteractive {
		asker = console.NewPasswordAsker(console.New(os.Stdin, os.Stdout))
	}

	orch, err := newOrchestrator(cfg, asker, os.Stdout, log)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	report, err := orch.Run(ctx, cfg.SourceDir, cfg.DestDir)
	if err != nil {
		return err
	}
	if err := writeReport(cfg, report); err != nil {
		return err
	}

	if cfg.NonInteractive && report.HasFailures() {
		return fmt.Errorf("%d archive(s) failed extraction", report.Failed)
	}
	return nil
}
