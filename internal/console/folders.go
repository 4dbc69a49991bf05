// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package console

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/batch-extract/internal/picker"
)

const (
	scratchInput  = "batch_extract_input_temp"
	scratchOutput = "batch_extract_output_temp"
)

// FolderChooser asks for the source and destination folders, either an
// existing folder (through a dialog when one is available) or a scratch
// folder created next to the program.
type FolderChooser struct {
	c           *Console
	picker      picker.Picker
	scratchRoot string
	log         *zap.Logger
}

// NewFolderChooser returns a chooser. p may be nil, in which case folder
// paths are typed on the console.
func NewFolderChooser(c *Console, p picker.Picker, scratchRoot string, log *zap.Logger) *FolderChooser {
	return &FolderChooser{c: c, picker: p, scratchRoot: scratchRoot, log: log}
}

// Source returns the folder holding the archives. Choosing the scratch
// folder waits for the user to copy archives into it.
func (f *FolderChooser) Source() (string, error) {
	choice, err := f.c.Choose("\nUse an existing folder with your archives? [Y]es / [N]o, use a scratch folder / [Q]uit: ", yesNoQuit)
	if err != nil {
		return "", err
	}
	switch choice {
	case "q":
		return "", ErrQuit
	case "y":
		return f.existing("Select the folder with your archives")
	}

	dir, err := f.scratch(scratchInput)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(f.c.out, "Copy your archives into %s\n", dir)
	if err := f.c.WaitEnter("Press Enter when the files are in place..."); err != nil {
		return "", err
	}
	return dir, nil
}

// Dest returns the output root.
func (f *FolderChooser) Dest() (string, error) {
	choice, err := f.c.Choose("Extract into an existing folder? [Y]es / [N]o, use a scratch folder / [Q]uit: ", yesNoQuit)
	if err != nil {
		return "", err
	}
	switch choice {
	case "q":
		return "", ErrQuit
	case "y":
		return f.existing("Select the output folder")
	}

	dir, err := f.scratch(scratchOutput)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(f.c.out, "Extracting into %s\n", dir)
	return dir, nil
}

// existing asks for a folder that already exists, through the dialog when
// available and on the console otherwise. A cancelled dialog falls back to
// the console.
func (f *FolderChooser) existing(title string) (string, error) {
	if f.picker != nil {
		dir, err := f.picker.PickFolder(title)
		switch {
		case err == nil:
			if isDir(dir) {
				return dir, nil
			}
			fmt.Fprintf(f.c.out, "%s is not a folder.\n", dir)
		case errors.Is(err, picker.ErrCancelled):
			fmt.Fprintln(f.c.out, "No folder selected.")
		default:
			f.log.Warn("folder dialog failed", zap.String("picker", f.picker.Name()), zap.Error(err))
		}
	}

	for {
		dir, err := f.c.ReadLine(title + ": ")
		if err != nil {
			return "", err
		}
		if dir == "" {
			continue
		}
		if isDir(dir) {
			return dir, nil
		}
		fmt.Fprintf(f.c.out, "%s is not a folder, please try again.\n", dir)
	}
}

func (f *FolderChooser) scratch(name string) (string, error) {
	dir := filepath.Join(f.scratchRoot, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating scratch folder %s: %w", dir, err)
	}
	return dir, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
