package selector_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birmerge/internal/domain"
	"birmerge/internal/selector"
)

func writeFile(t *testing.T, dir, name string, modTime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestSelector_Lexicographic(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, dir, "b.txt", now.Add(-time.Hour))
	writeFile(t, dir, "a.txt", now.Add(-2*time.Hour))
	writeFile(t, dir, "c.txt", now)
	writeFile(t, dir, "0.json", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0.txt"), 0o755))

	s, err := selector.New(domain.SelectionLexicographic)
	require.NoError(t, err)

	got, err := s.Select(dir, ".txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.txt"), got)
}

func TestSelector_DefaultsToLexicographic(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, dir, "z.txt", now)
	writeFile(t, dir, "m.txt", now.Add(-time.Hour))

	s, err := selector.New("")
	require.NoError(t, err)

	got, err := s.Select(dir, ".txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "m.txt"), got)
}

func TestSelector_Newest(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().Truncate(time.Second)
	writeFile(t, dir, "a.txt", now.Add(-2*time.Hour))
	writeFile(t, dir, "b.txt", now)
	writeFile(t, dir, "c.txt", now.Add(-time.Hour))

	s, err := selector.New(domain.SelectionNewest)
	require.NoError(t, err)

	got, err := s.Select(dir, ".txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.txt"), got)
}

func TestSelector_NewestTieBreaksByName(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().Truncate(time.Second)
	writeFile(t, dir, "y.txt", now)
	writeFile(t, dir, "x.txt", now)

	s, err := selector.New(domain.SelectionNewest)
	require.NoError(t, err)

	got, err := s.Select(dir, ".txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.txt"), got)
}

func TestSelector_NoInput(t *testing.T) {
	s, err := selector.New(domain.SelectionLexicographic)
	require.NoError(t, err)

	dir := t.TempDir()
	writeFile(t, dir, "data.json", time.Now())

	_, err = s.Select(dir, ".txt")
	assert.ErrorIs(t, err, domain.ErrNoInput)

	_, err = s.Select(filepath.Join(dir, "missing"), ".txt")
	assert.ErrorIs(t, err, domain.ErrNoInput)
}

func TestSelector_New_InvalidPolicy(t *testing.T) {
	_, err := selector.New("random")
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
