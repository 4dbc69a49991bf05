// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const banner = `
==============================================
  batch-extract: unpack a folder of archives
  zip, rar and 7z, split volumes, passwords
==============================================`

// BatchFunc runs one batch from source into dest.
type BatchFunc func(ctx context.Context, source, dest string) error

// Session is the interactive loop: choose folders, run a batch, offer
// another.
type Session struct {
	c       *Console
	folders *FolderChooser
	run     BatchFunc
}

// NewSession returns a session that runs batches with run.
func NewSession(c *Console, folders *FolderChooser, run BatchFunc) *Session {
	return &Session{c: c, folders: folders, run: run}
}

// Run loops until the user declines another batch or input ends. Choosing
// quit at a folder menu cancels the current batch only. An error from the
// batch itself is reported and the user may try again.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.c.out, banner)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.once(ctx)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.c.out, "\nGoodbye.")
			return nil
		case errors.Is(err, ErrQuit):
			fmt.Fprintln(s.c.out, "\nBatch cancelled.")
		case err != nil:
			fmt.Fprintf(s.c.out, "\nBatch error: %v\n", err)
		}

		again, err := s.c.Choose("\nRun another batch? (Y/N): ", yesNo)
		if err != nil || again == "n" {
			fmt.Fprintln(s.c.out, "\nGoodbye.")
			return nil
		}
	}
}

func (s *Session) once(ctx context.Context) error {
	src, err := s.folders.Source()
	if err != nil {
		return err
	}
	dest, err := s.folders.Dest()
	if err != nil {
		return err
	}
	return s.run(ctx, src, dest)
}
