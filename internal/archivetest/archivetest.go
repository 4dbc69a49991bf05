// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archivetest builds archive fixtures for tests: zip files written
// on the fly and the checked-in 7z and rar samples.
package archivetest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeka/zip"
)

// Sample fixtures under internal/archive/testdata.
const (
	// SevenZipPlain is a small unencrypted 7z archive.
	SevenZipPlain = "plain.7z"
	// SevenZipHeadersEncrypted has encrypted headers; password is SevenZipPassword.
	SevenZipHeadersEncrypted = "headers-encrypted.7z"
	// SevenZipContentEncrypted has plain headers and encrypted content.
	SevenZipContentEncrypted = "content-encrypted.7z"
	// SevenZipPassword opens both encrypted 7z samples.
	SevenZipPassword = "password"

	// RarFirstVolume and RarSecondVolume hold test.txt, the output of
	// `seq 0 2000`, split across two rar volumes.
	RarFirstVolume  = "test.part01.rar"
	RarSecondVolume = "test.part02.rar"
	RarContentSHA1  = "4da7f88f69b44a3fdb705667019a65f4c6e058a3"

	// ZipCrypto was written by `zip -P` with traditional PKWARE encryption.
	// It holds inside.txt (stored) and docs/notes.txt (deflated, `seq 1 500`).
	ZipCrypto          = "zipcrypto.zip"
	ZipCryptoPassword  = "secret"
	ZipCryptoInside    = "hidden in plain sight\n"
	ZipCryptoNotesSHA1 = "a7d9d7bba6e12d57909a32656d537ca7a27db53a"
)

// SevenZipVolumes lists the six volumes of the multi-volume 7z sample.
var SevenZipVolumes = []string{
	"multi.7z.001", "multi.7z.002", "multi.7z.003",
	"multi.7z.004", "multi.7z.005", "multi.7z.006",
}

// Dir returns the directory holding the sample fixtures.
func Dir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "archive", "testdata")
}

// Copy copies a sample fixture into dir under newName (or its own name when
// newName is empty) and returns the new path.
func Copy(t *testing.T, fixture, dir, newName string) string {
	t.Helper()
	if newName == "" {
		newName = fixture
	}
	data, err := os.ReadFile(filepath.Join(Dir(), fixture))
	require.NoError(t, err)
	dst := filepath.Join(dir, newName)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
	return dst
}

// ZipBytes builds a zip archive in memory. Entries are written in name
// order. A non-empty password encrypts every entry with WinZip AES-256.
func ZipBytes(t *testing.T, files map[string]string, password string) []byte {
	t.Helper()
	return zipBytes(t, files, password, zip.AES256Encryption)
}

// ZipCryptoBytes is ZipBytes with traditional PKWARE encryption.
func ZipCryptoBytes(t *testing.T, files map[string]string, password string) []byte {
	t.Helper()
	return zipBytes(t, files, password, zip.StandardEncryption)
}

func zipBytes(t *testing.T, files map[string]string, password string, method zip.EncryptionMethod) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		var (
			w   io.Writer
			err error
		)
		if password != "" {
			w, err = zw.Encrypt(name, password, method)
		} else {
			w, err = zw.Create(name)
		}
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// WriteZip writes a zip archive to path.
func WriteZip(t *testing.T, path string, files map[string]string, password string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, ZipBytes(t, files, password), 0o644))
	return path
}

// WriteSplit writes data as numbered byte-split volumes prefix.001,
// prefix.002, ... of at most size bytes each, returning the volume paths.
func WriteSplit(t *testing.T, prefix string, data []byte, size int) []string {
	t.Helper()
	var paths []string
	for i := 0; len(data) > 0; i++ {
		n := size
		if n > len(data) {
			n = len(data)
		}
		p := fmt.Sprintf("%s.%03d", prefix, i+1)
		require.NoError(t, os.WriteFile(p, data[:n], 0o644))
		paths = append(paths, p)
		data = data[n:]
	}
	return paths
}

// WriteFile writes arbitrary content, for corrupt or non-archive files.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
