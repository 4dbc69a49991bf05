// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mholt/archives"
)

// Sniff identifies an archive by its leading bytes, ignoring the file name.
// It returns the conventional extension of the detected format (".zip",
// ".rar", ".7z", ".tar.gz", ...) or "" when nothing matches.
func Sniff(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	format, _, err := archives.Identify(ctx, "", f)
	if errors.Is(err, archives.NoMatch) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("identifying %s: %w", path, err)
	}
	return format.Extension(), nil
}
