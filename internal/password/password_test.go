// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package password

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedAsker replays a fixed list of answers and records each prompt.
type scriptedAsker struct {
	answers []Answer
	err     error
	prompts []string
}

func (s *scriptedAsker) Ask(archive string, attempt int) (Answer, error) {
	s.prompts = append(s.prompts, archive)
	if s.err != nil {
		return Answer{}, s.err
	}
	if len(s.answers) == 0 {
		return Answer{Decision: DecisionAbort}, nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name        string
		cached      string
		answers     []Answer
		want        Outcome
		wantPW      string
		wantPrompts int
		wantCached  bool
		wantNotice  bool
	}{
		{
			name:        "cache hit skips prompt",
			cached:      "fromcache",
			want:        Resolved,
			wantPW:      "fromcache",
			wantPrompts: 0,
			wantCached:  true,
		},
		{
			name:        "password is cached",
			answers:     []Answer{{Decision: DecisionPassword, Password: "secret"}},
			want:        Resolved,
			wantPW:      "secret",
			wantPrompts: 1,
			wantCached:  true,
		},
		{
			name: "empty password re-prompts",
			answers: []Answer{
				{Decision: DecisionPassword, Password: ""},
				{Decision: DecisionPassword, Password: "secret"},
			},
			want:        Resolved,
			wantPW:      "secret",
			wantPrompts: 2,
			wantCached:  true,
			wantNotice:  true,
		},
		{
			name:        "skip",
			answers:     []Answer{{Decision: DecisionSkip}},
			want:        Skipped,
			wantPrompts: 1,
		},
		{
			name:        "abort",
			answers:     []Answer{{Decision: DecisionAbort}},
			want:        Aborted,
			wantPrompts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewCache()
			path := filepath.Join("/src", "b.rar")
			if tt.cached != "" {
				cache.Put(path, tt.cached)
			}
			asker := &scriptedAsker{answers: tt.answers}
			var out bytes.Buffer
			n := NewNegotiator(cache, asker, &out, zap.NewNop())

			res, err := n.Negotiate(path, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, tt.wantPW, res.Password)
			assert.Len(t, asker.prompts, tt.wantPrompts)
			for _, p := range asker.prompts {
				assert.Equal(t, "b.rar", p)
			}

			_, cached := cache.Get(path)
			assert.Equal(t, tt.wantCached, cached)
			assert.Equal(t, tt.wantNotice, out.Len() > 0, out.String())
		})
	}
}

func TestNegotiateAskerError(t *testing.T) {
	boom := errors.New("stdin closed")
	n := NewNegotiator(NewCache(), &scriptedAsker{err: boom}, &bytes.Buffer{}, zap.NewNop())

	_, err := n.Negotiate("/src/a.zip", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestUnattendedSkips(t *testing.T) {
	n := NewNegotiator(NewCache(), Unattended{}, &bytes.Buffer{}, zap.NewNop())
	res, err := n.Negotiate("/src/a.zip", 1)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Outcome)
}

func TestCacheForgetAndSeed(t *testing.T) {
	c := NewCache()
	c.Seed(map[string]string{"a.zip": "pa", "Photos.7Z.001": "pb"})
	assert.Equal(t, 2, c.Len())

	pw, ok := c.Get(filepath.Join("/src", "photos.7z.001"))
	require.True(t, ok, "seed matches regardless of case")
	assert.Equal(t, "pb", pw)

	c.Put(filepath.Join("/src", "a.zip"), "typed")
	pw, _ = c.Get(filepath.Join("/src", "a.zip"))
	assert.Equal(t, "typed", pw, "entered password takes precedence over seed")

	c.Forget(filepath.Join("/src", "a.zip"))
	_, ok = c.Get(filepath.Join("/src", "a.zip"))
	assert.False(t, ok, "forget drops the seed too")
	assert.Equal(t, 1, c.Len())
}

func TestLoadSeeds(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads password files, trims and folds case",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "Photos.7z.001", "  s3cret  \n")
				writeFile(t, dir, "b.rar", "rarpass")
				return dir
			},
			want: map[string]string{"photos.7z.001": "s3cret", "b.rar": "rarpass"},
		},
		{
			name: "reads passwords.yaml map",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, SeedFile, "Backup.part1.rar: hunter2\nc.zip: zpass\nempty.zip: \"\"\n")
				return dir
			},
			want: map[string]string{"backup.part1.rar": "hunter2", "c.zip": "zpass"},
		},
		{
			name: "password file overrides yaml entry",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, SeedFile, "c.zip: old\n")
				writeFile(t, dir, "C.ZIP", "new")
				return dir
			},
			want: map[string]string{"c.zip": "new"},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files, dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "a.zip", "pw")
				writeFile(t, dir, "empty.zip", " \n")
				writeFile(t, dir, ".gitkeep", "x")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
				return dir
			},
			want: map[string]string{"a.zip": "pw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadSeeds(tt.setup(t), zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSeedsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SeedFile, "- not\n- a map\n")
	_, err := LoadSeeds(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestNegotiateUsesSeedWithoutPrompt(t *testing.T) {
	cache := NewCache()
	cache.Seed(map[string]string{"photos.7z.001": "s3cret"})
	asker := &scriptedAsker{}
	n := NewNegotiator(cache, asker, &bytes.Buffer{}, zap.NewNop())

	res, err := n.Negotiate(filepath.Join("/src", "PHOTOS.7z.001"), 1)
	require.NoError(t, err)
	assert.Equal(t, Resolution{Outcome: Resolved, Password: "s3cret", FromCache: true}, res)
	assert.Empty(t, asker.prompts)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
