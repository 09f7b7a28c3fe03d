package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

func TestBatchFilename(t *testing.T) {
	assert.Equal(t, "grid_batch_1.png", BatchFilename(1))
	assert.Equal(t, "grid_batch_12.png", BatchFilename(12))
}

func TestSaver_CreatesDirectoryIdempotently(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "grids")
	s := NewSaver(dir)
	canvas := vgimg.New(vg.Inch, vg.Inch)

	for n := 1; n <= 2; n++ {
		path, err := s.Emit(n, canvas)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, BatchFilename(n)), path)
		assert.FileExists(t, path)
	}
}

func TestSaver_UnwritableDirectory(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewSaver(filepath.Join(blocker, "grids")).Emit(1, vgimg.New(vg.Inch, vg.Inch))
	assert.Error(t, err)
}
