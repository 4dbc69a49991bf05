package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/batch-extract/internal/console"
	"github.com/pdiddy/batch-extract/internal/picker"
)

// runSession is the root command: an interactive loop over batches.
func runSession(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = defaultScratchRoot()
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var dialog picker.Picker
	if p, err := picker.Detect(); err == nil {
		dialog = p
		log.Debug("folder dialog available", zap.String("picker", p.Name()))
	} else {
		log.Debug("no folder dialog", zap.Error(err))
	}

	c := console.New(os.Stdin, os.Stdout)
	asker := console.NewPasswordAsker(c)
	folders := console.NewFolderChooser(c, dialog, cfg.ScratchDir, log)

	ctx, stop := signalContext(cmd)
	defer stop()

	session := console.NewSession(c, folders, func(ctx context.Context, source, dest string) error {
		run := cfg
		run.SourceDir = source
		run.DestDir = dest

		orch, err := newOrchestrator(run, asker, os.Stdout, log)
		if err != nil {
			return err
		}
		report, err := orch.Run(ctx, source, dest)
		if err != nil {
			return err
		}
		return writeReport(run, report)
	})
	return session.Run(ctx)
}
