// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/batch-extract/internal/archive"
	"github.com/pdiddy/batch-extract/internal/archivetest"
	"github.com/pdiddy/batch-extract/internal/password"
	"github.com/pdiddy/batch-extract/pkg/types"
)

// fakeRar stands in for rar archives, which cannot be created in tests. It
// needs the password "secret" and writes one file.
type fakeRar struct {
	extracted []string
}

func (f *fakeRar) Format() types.ArchiveFormat { return types.FormatRar }

func (f *fakeRar) Verify(context.Context, string) types.VerificationResult {
	return types.NeedsPassword("encrypted headers")
}

func (f *fakeRar) Extract(_ context.Context, req archive.Request) (archive.Stats, error) {
	if req.Password != "secret" {
		return archive.Stats{}, archive.ErrWrongPassword
	}
	f.extracted = append(f.extracted, filepath.Base(req.Path))
	if err := os.WriteFile(filepath.Join(req.Dest, "inside.txt"), []byte("rar"), 0o644); err != nil {
		return archive.Stats{}, err
	}
	return archive.Stats{Files: 1, Bytes: 3}, nil
}

type scriptedAsker struct {
	answers []password.Answer
	asked   []string
}

func (s *scriptedAsker) Ask(archive string, _ int) (password.Answer, error) {
	s.asked = append(s.asked, archive)
	if len(s.answers) == 0 {
		return password.Answer{Decision: password.DecisionSkip}, nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func newOrchestrator(rar archive.Driver, asker password.Asker) (*Orchestrator, *bytes.Buffer) {
	var out bytes.Buffer
	reg := archive.NewRegistry(archive.NewZip(), archive.NewSevenZip(), rar)
	neg := password.NewNegotiator(password.NewCache(), asker, &out, zap.NewNop())
	return New(reg, neg, Config{MaxPasswordAttempts: 3}, &out, zap.NewNop()), &out
}

func TestRunEndToEnd(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "D")

	archivetest.WriteZip(t, filepath.Join(src, "a.zip"),
		map[string]string{"one.txt": "1", "two.txt": "2"}, "")
	archivetest.WriteFile(t, filepath.Join(src, "b.rar"), "rar bytes")
	for i, v := range archivetest.SevenZipVolumes {
		archivetest.Copy(t, v, src, "c.7z.00"+string(rune('1'+i)))
	}
	archivetest.WriteFile(t, filepath.Join(src, "readme.txt"), "not an archive")

	rar := &fakeRar{}
	asker := &scriptedAsker{answers: []password.Answer{{Decision: password.DecisionPassword, Password: "secret"}}}
	o, out := newOrchestrator(rar, asker)

	report, err := o.Run(context.Background(), src, dest)
	require.NoError(t, err, out.String())

	assert.Equal(t, 3, report.Succeeded, out.String())
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Problems)
	assert.False(t, report.Aborted)
	assert.Equal(t, []string{"readme.txt"}, report.Ignored)
	assert.Equal(t, []string{"b.rar"}, asker.asked)
	assert.Equal(t, []string{"b.rar"}, rar.extracted)

	assert.FileExists(t, filepath.Join(dest, "a", "one.txt"))
	assert.FileExists(t, filepath.Join(dest, "a", "two.txt"))
	assert.FileExists(t, filepath.Join(dest, "b", "inside.txt"))
	entries, err := os.ReadDir(filepath.Join(dest, "c"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	assert.Contains(t, out.String(), "Batch summary: 3 extracted, 0 skipped, 0 failed (total: 3)")
}

func TestRunCorruptArchiveExcluded(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	archivetest.WriteZip(t, filepath.Join(src, "good.zip"), map[string]string{"g.txt": "g"}, "")
	archivetest.WriteFile(t, filepath.Join(src, "bad.zip"), "this is not a zip")

	o, out := newOrchestrator(&fakeRar{}, &scriptedAsker{})
	report, err := o.Run(context.Background(), src, dest)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, report.Problems, 1)
	assert.Equal(t, "bad.zip", report.Problems[0].Archive)
	assert.NoDirExists(t, filepath.Join(dest, "bad"))
	assert.Contains(t, out.String(), "Problem archives (not extracted):")
}

func TestRunAbortStopsBatch(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	archivetest.WriteZip(t, filepath.Join(src, "a.zip"), map[string]string{"a.txt": "a"}, "pa")
	archivetest.WriteZip(t, filepath.Join(src, "b.zip"), map[string]string{"b.txt": "b"}, "pb")
	archivetest.WriteZip(t, filepath.Join(src, "c.zip"), map[string]string{"c.txt": "c"}, "")

	asker := &scriptedAsker{answers: []password.Answer{{Decision: password.DecisionAbort}}}
	o, _ := newOrchestrator(&fakeRar{}, asker)

	report, err := o.Run(context.Background(), src, dest)
	require.NoError(t, err)

	assert.True(t, report.Aborted)
	assert.Equal(t, []string{"a.zip"}, asker.asked)
	assert.Equal(t, []string{"b.zip", "c.zip"}, report.NotAttempted)
	assert.Equal(t, 0, report.Succeeded)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "aborted by user", report.Skipped[0].Reason)
	assert.NoFileExists(t, filepath.Join(dest, "c", "c.txt"))
}

func TestRunSkipContinues(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	archivetest.WriteZip(t, filepath.Join(src, "a.zip"), map[string]string{"a.txt": "a"}, "pa")
	archivetest.WriteZip(t, filepath.Join(src, "b.zip"), map[string]string{"b.txt": "b"}, "")

	asker := &scriptedAsker{answers: []password.Answer{{Decision: password.DecisionSkip}}}
	o, _ := newOrchestrator(&fakeRar{}, asker)

	report, err := o.Run(context.Background(), src, dest)
	require.NoError(t, err)

	assert.False(t, report.Aborted)
	assert.Equal(t, 1, report.Succeeded)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "a.zip", report.Skipped[0].Archive)
	assert.FileExists(t, filepath.Join(dest, "b", "b.txt"))
}

func TestRunStandaloneCoveredByGroup(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	for i, v := range archivetest.SevenZipVolumes {
		archivetest.Copy(t, v, src, "set.7z.00"+string(rune('1'+i)))
	}
	archivetest.WriteZip(t, filepath.Join(src, "set-extras.zip"), map[string]string{"x.txt": "x"}, "")
	archivetest.WriteZip(t, filepath.Join(src, "other.zip"), map[string]string{"o.txt": "o"}, "")

	o, _ := newOrchestrator(&fakeRar{}, &scriptedAsker{})
	report, err := o.Run(context.Background(), src, dest)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "set-extras.zip", report.Skipped[0].Archive)
	assert.NoDirExists(t, filepath.Join(dest, "set-extras"))
	assert.DirExists(t, filepath.Join(dest, "other"))
}

func TestRunSkippedGroupDoesNotCoverStandalone(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	archivetest.Copy(t, archivetest.SevenZipHeadersEncrypted, src, "a.7z.001")
	archivetest.WriteZip(t, filepath.Join(src, "apple.zip"), map[string]string{"core.txt": "seeds"}, "")

	asker := &scriptedAsker{answers: []password.Answer{{Decision: password.DecisionSkip}}}
	o, _ := newOrchestrator(&fakeRar{}, asker)
	report, err := o.Run(context.Background(), src, dest)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.7z.001"}, asker.asked)
	assert.Equal(t, 1, report.Succeeded)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, types.Problem{Archive: "a.7z.001", Reason: "skipped by user"}, report.Skipped[0])
	assert.FileExists(t, filepath.Join(dest, "apple", "core.txt"))
}

func TestRunEmptyAndMissing(t *testing.T) {
	o, out := newOrchestrator(&fakeRar{}, &scriptedAsker{})

	report, err := o.Run(context.Background(), t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total())
	assert.Contains(t, out.String(), "No archives found")

	_, err = o.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
}

func TestRunNothingValid(t *testing.T) {
	src := t.TempDir()
	archivetest.WriteFile(t, filepath.Join(src, "bad.7z"), "nope")

	o, out := newOrchestrator(&fakeRar{}, &scriptedAsker{})
	report, err := o.Run(context.Background(), src, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, report.Problems, 1)
	assert.Contains(t, out.String(), "Nothing valid to extract.")
}

func TestRunCancelledContext(t *testing.T) {
	src := t.TempDir()
	archivetest.WriteZip(t, filepath.Join(src, "a.zip"), map[string]string{"a.txt": "a"}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o, _ := newOrchestrator(&fakeRar{}, &scriptedAsker{})
	report, err := o.Run(ctx, src, t.TempDir())
	require.NoError(t, err)
	assert.True(t, report.Aborted)
	assert.Equal(t, []string{"a.zip"}, report.NotAttempted)
}

func TestWriteReport(t *testing.T) {
	report := types.BatchReport{
		SourceDir: "/in",
		DestDir:   "/out",
		Succeeded: 2,
		Failed:    1,
		Problems:  []types.Problem{{Archive: "bad.zip", Reason: "corrupt"}},
		Outcomes: []types.ExtractionOutcome{
			{Status: types.ExtractionSuccess, Archive: "a.zip", Target: "a", OutputPath: "/out/a"},
			{Status: types.ExtractionFailed, Archive: "c.7z", Target: "c", Reason: "too many password attempts"},
		},
	}
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "report.json")
		require.NoError(t, WriteReport(path, types.ReportJSON, report))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.EqualValues(t, 2, got["succeeded"])
		assert.EqualValues(t, 1, got["failed"])
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "report.yaml")
		require.NoError(t, WriteReport(path, types.ReportYAML, report))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, "/out", got["dest_dir"])
	})

	t.Run("text", func(t *testing.T) {
		path := filepath.Join(dir, "report.txt")
		require.NoError(t, WriteReport(path, types.ReportText, report))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Batch summary: 2 extracted, 0 skipped, 1 failed (total: 3)")
		assert.Contains(t, string(data), "bad.zip (corrupt)")
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, WriteReport(filepath.Join(dir, "r"), "xml", report))
	})
}
