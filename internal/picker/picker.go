// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package picker opens a desktop folder-selection dialog through zenity or
// kdialog when either is installed.
package picker

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	binZenity  = "zenity"
	binKdialog = "kdialog"
)

// ErrCancelled is returned when the user closes the dialog without
// choosing a folder.
var ErrCancelled = errors.New("folder selection cancelled")

// Picker asks the user for a folder.
type Picker interface {
	// Name returns the dialog program ("zenity" or "kdialog").
	Name() string

	// Available reports whether the program exists on PATH.
	Available() bool

	// PickFolder shows the dialog and returns the chosen folder.
	PickFolder(title string) (string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
	Getenv(key string) string
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (o *osExecutor) Getenv(key string) string {
	return os.Getenv(key)
}

// dialog implements Picker for one dialog program. Zenity and kdialog
// differ only in binary name and argument layout.
type dialog struct {
	bin  string
	args func(title string) []string
	exec executor
}

func (d *dialog) Name() string { return d.bin }

func (d *dialog) Available() bool {
	_, err := d.exec.LookPath(d.bin)
	return err == nil
}

func (d *dialog) PickFolder(title string) (string, error) {
	out, err := d.exec.Output(d.bin, d.args(title)...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Both programs exit 1 when the dialog is dismissed.
			return "", ErrCancelled
		}
		return "", fmt.Errorf("running %s: %w", d.bin, err)
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

func newZenity(exec executor) *dialog {
	return &dialog{
		bin: binZenity,
		args: func(title string) []string {
			return []string{"--file-selection", "--directory", "--title=" + title}
		},
		exec: exec,
	}
}

func newKdialog(exec executor) *dialog {
	return &dialog{
		bin: binKdialog,
		args: func(title string) []string {
			return []string{"--getexistingdirectory", ".", "--title", title}
		},
		exec: exec,
	}
}

var defaultExec = &osExecutor{}

// Detect tries zenity first, falls back to kdialog. It returns an error if
// there is no graphical session or neither program is installed.
func Detect() (Picker, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Picker, error) {
	if exec.Getenv("DISPLAY") == "" && exec.Getenv("WAYLAND_DISPLAY") == "" {
		return nil, fmt.Errorf("no graphical session for a folder dialog")
	}

	zenity := newZenity(exec)
	if zenity.Available() {
		return zenity, nil
	}

	kdialog := newKdialog(exec)
	if kdialog.Available() {
		return kdialog, nil
	}

	return nil, fmt.Errorf(
		"no folder dialog available: neither %s nor %s found",
		binZenity, binKdialog,
	)
}
