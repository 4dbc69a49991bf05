// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package picker

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool   // binary -> whether LookPath succeeds
	env           map[string]string // environment variables
	outputs       map[string]string // "bin arg1 arg2" -> stdout
	outputErr     error
	calls         []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Output(name string, args ...string) ([]byte, error) {
	key := name + " " + strings.Join(args, " ")
	m.calls = append(m.calls, key)
	if m.outputErr != nil {
		return nil, m.outputErr
	}
	return []byte(m.outputs[key]), nil
}

func (m *mockExecutor) Getenv(key string) string {
	return m.env[key]
}

var x11 = map[string]string{"DISPLAY": ":0"}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name:     "zenity available",
			exec:     &mockExecutor{availableBins: map[string]bool{"zenity": true, "kdialog": true}, env: x11},
			wantName: "zenity",
		},
		{
			name:     "kdialog fallback when zenity missing",
			exec:     &mockExecutor{availableBins: map[string]bool{"kdialog": true}, env: x11},
			wantName: "kdialog",
		},
		{
			name:     "wayland session counts",
			exec:     &mockExecutor{availableBins: map[string]bool{"zenity": true}, env: map[string]string{"WAYLAND_DISPLAY": "wayland-0"}},
			wantName: "zenity",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{availableBins: map[string]bool{}, env: x11},
			wantErr: true,
		},
		{
			name:    "no graphical session",
			exec:    &mockExecutor{availableBins: map[string]bool{"zenity": true}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := detect(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got picker %s", p.Name())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestPickFolder(t *testing.T) {
	tests := []struct {
		name       string
		dialog     func(executor) *dialog
		exec       *mockExecutor
		wantPath   string
		wantCancel bool
		wantErr    bool
		wantCall   string
	}{
		{
			name:   "zenity returns trimmed path",
			dialog: newZenity,
			exec: &mockExecutor{outputs: map[string]string{
				"zenity --file-selection --directory --title=Pick source": "/home/u/archives\n",
			}},
			wantPath: "/home/u/archives",
			wantCall: "zenity --file-selection --directory --title=Pick source",
		},
		{
			name:   "kdialog argument layout",
			dialog: newKdialog,
			exec: &mockExecutor{outputs: map[string]string{
				"kdialog --getexistingdirectory . --title Pick source": "/data\n",
			}},
			wantPath: "/data",
			wantCall: "kdialog --getexistingdirectory . --title Pick source",
		},
		{
			name:       "empty output is a cancel",
			dialog:     newZenity,
			exec:       &mockExecutor{},
			wantCancel: true,
		},
		{
			name:       "exit status is a cancel",
			dialog:     newZenity,
			exec:       &mockExecutor{outputErr: &exec.ExitError{}},
			wantCancel: true,
		},
		{
			name:    "launch failure",
			dialog:  newZenity,
			exec:    &mockExecutor{outputErr: errors.New("exec format error")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.dialog(tt.exec)
			got, err := d.PickFolder("Pick source")

			switch {
			case tt.wantCancel:
				if !errors.Is(err, ErrCancelled) {
					t.Fatalf("expected ErrCancelled, got %v", err)
				}
			case tt.wantErr:
				if err == nil || errors.Is(err, ErrCancelled) {
					t.Fatalf("expected launch error, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.wantPath {
					t.Errorf("PickFolder() = %q, want %q", got, tt.wantPath)
				}
				if len(tt.exec.calls) != 1 || tt.exec.calls[0] != tt.wantCall {
					t.Errorf("calls = %v, want [%s]", tt.exec.calls, tt.wantCall)
				}
			}
		})
	}
}
