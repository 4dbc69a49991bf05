// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive implements the per-format drivers that verify and extract
// zip, rar and 7z archives, including byte-split volume sets.
package archive

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// Request describes one extraction attempt.
type Request struct {
	// Path is the archive file, or the first volume of a set.
	Path string

	// Dest is the folder the contents are written to. It must exist.
	Dest string

	// Password is empty for an attempt without a password.
	Password string

	// Progress, when set, receives a copy of every byte written.
	Progress io.Writer
}

// Driver verifies and extracts one archive container family. Zip, rar and
// 7z each have a driver.
type Driver interface {
	// Format returns the container family the driver reads.
	Format() types.ArchiveFormat

	// Verify opens the archive without a password and without writing
	// output, enumerates its entries and reads the first file.
	Verify(ctx context.Context, path string) types.VerificationResult

	// Extract writes every entry under req.Dest. Errors wrap one of the
	// package's sentinel errors.
	Extract(ctx context.Context, req Request) (Stats, error)
}

// Registry selects the driver for an entry's container family.
type Registry struct {
	drivers map[types.ArchiveFormat]Driver
}

// NewRegistry builds a registry from the given drivers. A later driver for
// the same family replaces an earlier one.
func NewRegistry(drivers ...Driver) *Registry {
	r := &Registry{drivers: make(map[types.ArchiveFormat]Driver)}
	for _, d := range drivers {
		r.drivers[d.Format()] = d
	}
	return r
}

// DefaultRegistry returns the zip, rar and 7z drivers.
func DefaultRegistry() *Registry {
	return NewRegistry(NewZip(), NewRar(), NewSevenZip())
}

// For returns the driver for e.Container.
func (r *Registry) For(e types.ArchiveEntry) (Driver, error) {
	d, ok := r.drivers[e.Container]
	if !ok {
		return nil, goerr.Wrap(ErrUnsupportedFormat, "no driver",
			goerr.V("archive", e.Name),
			goerr.V("container", string(e.Container)),
		)
	}
	return d, nil
}
