// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package password

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

// SeedFile is the optional YAML map, inside the passwords folder, from
// archive file name to password.
const SeedFile = "passwords.yaml"

// seedKey folds an archive file name so seeds match regardless of case.
func seedKey(name string) string {
	return strings.ToLower(filepath.Base(name))
}

// LoadSeeds reads known archive passwords from dir. Passwords come from
// SeedFile, a YAML map such as
//
//	photos.7z.001: s3cret
//	backup.part1.rar: hunter2
//
// and from single-password files named after the archive they unlock
// (the first volume for a multi-part set), whose trimmed contents are the
// password. A file overrides a SeedFile entry for the same archive. Keys
// are lower-cased archive file names.
//
// A missing directory is not an error. A malformed SeedFile is.
func LoadSeeds(dir string, log *zap.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading passwords directory %s: %w", dir, err)
	}

	seeds, err := loadSeedFile(filepath.Join(dir, SeedFile))
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || name == SeedFile {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read password file", zap.String("file", name), zap.Error(err))
			continue
		}
		if pw := strings.TrimSpace(string(data)); pw != "" {
			seeds[seedKey(name)] = pw
		}
	}

	log.Debug("loaded archive passwords", zap.String("dir", dir), zap.Int("count", len(seeds)))
	return seeds, nil
}

func loadSeedFile(path string) (map[string]string, error) {
	seeds := make(map[string]string)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return seeds, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for name, pw := range raw {
		if pw != "" {
			seeds[seedKey(name)] = pw
		}
	}
	return seeds, nil
}
