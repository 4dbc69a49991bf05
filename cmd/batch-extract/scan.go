package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/batch-extract/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the archives and multi-part sets found in a folder",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("source", "", "folder to scan")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"source": "source"}); err != nil {
		return err
	}
	cfg := loadConfig()
	if cfg.SourceDir == "" {
		return fmt.Errorf("--source is required")
	}

	res, err := scan.Dir(cfg.SourceDir)
	if err != nil {
		return err
	}

	fmt.Printf("Multi-part sets: %d\n", len(res.Groups))
	for _, key := range scan.SortedKeys(res.Groups) {
		g := res.Groups[key]
		parts := make([]string, 0, len(g.Parts))
		for _, p := range g.Parts {
			parts = append(parts, p.Name)
		}
		fmt.Printf("  %s: %s\n", g.Base, strings.Join(parts, ", "))
	}

	fmt.Printf("Single archives: %d\n", len(res.Standalone))
	for _, e := range res.Standalone {
		fmt.Printf("  %s (%s)\n", e.Name, e.Format)
	}

	if len(res.Ignored) > 0 {
		fmt.Printf("Ignored files: %d\n", len(res.Ignored))
		for _, name := range res.Ignored {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}
