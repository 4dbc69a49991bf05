package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/batch-extract/internal/archive"
	"github.com/pdiddy/batch-extract/internal/scan"
	"github.com/pdiddy/batch-extract/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every archive in a folder without extracting",
	Long: `Verify scans the source folder and opens each archive or multi-part set
to check that it is readable. Archives that need a password are reported as
locked; no password is asked for. Nothing is written.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("source", "", "folder containing the archives")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"source": "source"}); err != nil {
		return err
	}
	cfg := loadConfig()
	if cfg.SourceDir == "" {
		return fmt.Errorf("--source is required")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	res, err := scan.Dir(cfg.SourceDir)
	if err != nil {
		return err
	}
	if res.Empty() {
		fmt.Printf("No archives found in %s\n", cfg.SourceDir)
		return nil
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	part := verify.New(archive.DefaultRegistry(), os.Stdout, log).All(ctx, res.Targets())
	fmt.Printf("\n%d archive(s) can be extracted, %d problem(s)\n", len(part.Proceed), len(part.Problems))
	if len(part.Problems) > 0 {
		return fmt.Errorf("%d archive(s) failed verification", len(part.Problems))
	}
	return nil
}
