// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"errors"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/m-mizutani/goerr/v2"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// Error taxonomy. Driver and engine errors wrap one of these so callers
// can branch with errors.Is.
var (
	ErrCorrupt           = errors.New("archive is corrupt")
	ErrNeedsPassword     = errors.New("archive needs a password")
	ErrNeedsOtherVolume  = errors.New("archive needs another volume")
	ErrWrongPassword     = errors.New("wrong password")
	ErrTooManyAttempts   = errors.New("too many password attempts")
	ErrUserSkipped       = errors.New("skipped by user")
	ErrUserAborted       = errors.New("aborted by user")
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	ErrIO                = errors.New("filesystem error")
)

// passwordMarkers are substrings that library error messages use when a
// password is missing or does not decrypt the data.
var passwordMarkers = []string{"password", "encrypt", "decrypt", "authentication"}

// volumeMarkers are substrings that library error messages use when the
// volume set is incomplete or the first volume is not the one opened.
var volumeMarkers = []string{"volume"}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// isPasswordError reports whether err means the data is encrypted and the
// password was missing or wrong.
func isPasswordError(err error) bool {
	if errors.Is(err, ErrNeedsPassword) || errors.Is(err, ErrWrongPassword) {
		return true
	}
	var re *sevenzip.ReadError
	if errors.As(err, &re) && re.Encrypted {
		return true
	}
	return containsAny(err.Error(), passwordMarkers)
}

// ClassifyError maps a library error raised while verifying an archive to a
// verification result. Password markers take precedence over volume
// markers, which take precedence over corruption.
func ClassifyError(err error) types.VerificationResult {
	switch {
	case err == nil:
		return types.Valid()
	case isPasswordError(err):
		return types.NeedsPassword(err.Error())
	case errors.Is(err, ErrNeedsOtherVolume) || containsAny(err.Error(), volumeMarkers):
		return types.NeedsOtherVolume(err.Error())
	default:
		return types.Corrupt(err.Error())
	}
}

// wrapFailure converts a library error raised during extraction into the
// taxonomy, carrying the archive path and whether a password was in use.
func wrapFailure(err error, path, password string) error {
	var kind error
	switch {
	case errors.Is(err, ErrIO):
		return err
	case isPasswordError(err) && password == "":
		kind = ErrNeedsPassword
	case isPasswordError(err):
		kind = ErrWrongPassword
	case errors.Is(err, ErrNeedsOtherVolume) || containsAny(err.Error(), volumeMarkers):
		kind = ErrNeedsOtherVolume
	default:
		kind = ErrCorrupt
	}
	return goerr.Wrap(kind, err.Error(),
		goerr.V("archive", path),
		goerr.V("with_password", password != ""),
	)
}

// ioFailure wraps a filesystem error raised while writing output.
func ioFailure(err error, path string) error {
	return goerr.Wrap(ErrIO, err.Error(), goerr.V("path", path))
}
