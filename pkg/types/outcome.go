// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// VerificationStatus is the verdict of a non-destructive integrity check.
type VerificationStatus string

const (
	VerifyValid            VerificationStatus = "valid"
	VerifyNeedsPassword    VerificationStatus = "needs_password"
	VerifyNeedsOtherVolume VerificationStatus = "needs_other_volume"
	VerifyCorrupt          VerificationStatus = "corrupt"
)

// VerificationResult is produced once per target and never mutated.
type VerificationResult struct {
	Status VerificationStatus `json:"status" yaml:"status"`

	// Reason carries the driver message for corrupt archives and a short
	// explanation for the other statuses.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Proceed reports whether the target may go on to extraction.
func (r VerificationResult) Proceed() bool {
	return r.Status == VerifyValid || r.Status == VerifyNeedsPassword
}

// Valid returns a result with status valid.
func Valid() VerificationResult {
	return VerificationResult{Status: VerifyValid}
}

// NeedsPassword returns a result with status needs_password.
func NeedsPassword(reason string) VerificationResult {
	return VerificationResult{Status: VerifyNeedsPassword, Reason: reason}
}

// NeedsOtherVolume returns a result with status needs_other_volume.
func NeedsOtherVolume(reason string) VerificationResult {
	return VerificationResult{Status: VerifyNeedsOtherVolume, Reason: reason}
}

// Corrupt returns a result with status corrupt.
func Corrupt(reason string) VerificationResult {
	return VerificationResult{Status: VerifyCorrupt, Reason: reason}
}

// ExtractionStatus is the terminal state of one extraction.
type ExtractionStatus string

const (
	ExtractionSuccess ExtractionStatus = "success"
	ExtractionSkipped ExtractionStatus = "skipped"
	ExtractionFailed  ExtractionStatus = "failed"
)

// ExtractionOutcome records what happened to one target.
type ExtractionOutcome struct {
	Status ExtractionStatus `json:"status" yaml:"status"`

	// Target is the destination folder name of the archive.
	Target string `json:"target" yaml:"target"`

	// Archive is the file name of the main volume.
	Archive string `json:"archive" yaml:"archive"`

	// OutputPath is the folder the contents were written to.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Reason explains a skip or failure.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Attempts counts extraction attempts, including the initial one
	// without a password.
	Attempts int `json:"attempts" yaml:"attempts"`

	// Cause is the underlying error for skips and failures.
	Cause error `json:"-" yaml:"-"`
}

// Problem is one archive excluded from or skipped during a batch.
type Problem struct {
	Archive string `json:"archive" yaml:"archive"`
	Reason  string `json:"reason" yaml:"reason"`
}

// BatchReport aggregates a full batch run.
type BatchReport struct {
	SourceDir string `json:"source_dir" yaml:"source_dir"`
	DestDir   string `json:"dest_dir" yaml:"dest_dir"`

	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`

	// Skipped lists archives the user skipped or that were skipped by abort.
	Skipped []Problem `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Problems lists archives excluded by verification.
	Problems []Problem `json:"problems,omitempty" yaml:"problems,omitempty"`

	// Ignored lists files in the source folder that are not archives.
	Ignored []string `json:"ignored,omitempty" yaml:"ignored,omitempty"`

	Outcomes []ExtractionOutcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`

	// Aborted is true when the user stopped the batch.
	Aborted bool `json:"aborted" yaml:"aborted"`

	// NotAttempted lists targets never reached because of an abort.
	NotAttempted []string `json:"not_attempted,omitempty" yaml:"not_attempted,omitempty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}

// Total returns the number of targets extracted, skipped or failed. Skipped
// includes standalone archives passed over as part of an extracted
// multi-part set, which never reach extraction. Verification problems are
// not counted.
func (r BatchReport) Total() int {
	return r.Succeeded + len(r.Skipped) + r.Failed
}

// HasFailures reports whether any extraction failed.
func (r BatchReport) HasFailures() bool {
	return r.Failed > 0
}

// Add records an extraction outcome.
func (r *BatchReport) Add(o ExtractionOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case ExtractionSuccess:
		r.Succeeded++
	case ExtractionFailed:
		r.Failed++
	case ExtractionSkipped:
		r.Skipped = append(r.Skipped, Problem{Archive: o.Archive, Reason: o.Reason})
	}
}
