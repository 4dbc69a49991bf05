// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReportFormat selects how a batch report is written to disk.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
	ReportYAML ReportFormat = "yaml"
)

// DefaultMaxPasswordAttempts bounds password submissions per archive.
const DefaultMaxPasswordAttempts = 3

// ExtractConfig holds settings for one batch run.
type ExtractConfig struct {
	// SourceDir is the folder scanned for archives (non-recursive).
	SourceDir string `json:"source" yaml:"source"`

	// DestDir is the output root; each archive extracts into its own
	// subfolder.
	DestDir string `json:"dest" yaml:"dest"`

	// PasswordsDir is an optional folder of password files used to seed
	// the password cache. File name is the archive file name, content is
	// the password.
	PasswordsDir string `json:"passwords_dir,omitempty" yaml:"passwords_dir,omitempty"`

	// MaxPasswordAttempts bounds password submissions per archive (default 3).
	MaxPasswordAttempts int `json:"max_password_attempts" yaml:"max_password_attempts"`

	// NonInteractive answers every password prompt with skip.
	NonInteractive bool `json:"non_interactive" yaml:"non_interactive"`

	// Progress shows a byte counter while extracting.
	Progress bool `json:"progress" yaml:"progress"`

	// ReportPath, when set, receives the batch report.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`

	// ReportFormat is text, json or yaml (default text).
	ReportFormat ReportFormat `json:"report_format,omitempty" yaml:"report_format,omitempty"`

	// ScratchDir is where the interactive session creates its input and
	// output scratch folders (default: the executable's directory).
	ScratchDir string `json:"scratch_dir,omitempty" yaml:"scratch_dir,omitempty"`
}

// Attempts returns MaxPasswordAttempts, falling back to the default.
func (c ExtractConfig) Attempts() int {
	if c.MaxPasswordAttempts <= 0 {
		return DefaultMaxPasswordAttempts
	}
	return c.MaxPasswordAttempts
}
