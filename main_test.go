package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/briancolinger/haze-grid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	ok := gridParams{DatasetDir: "data", BatchSize: 3}
	assert.NoError(t, ok.validate())

	noDir := ok
	noDir.DatasetDir = "  "
	assert.ErrorIs(t, noDir.validate(), errMissingDatasetDir)

	badBatch := ok
	badBatch.BatchSize = 0
	assert.ErrorIs(t, badBatch.validate(), errInvalidBatchSize)
}

func TestRootCmdDefaults(t *testing.T) {
	cmd := newRootCmd()
	flags := cmd.Flags()

	dir, err := flags.GetString("dataset")
	require.NoError(t, err)
	assert.Equal(t, "Dense_Haze_NTIRE19", dir)

	out, err := flags.GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "output_grids", out)

	ids, err := flags.GetStringSlice("ids")
	require.NoError(t, err)
	assert.Equal(t, defaultIDs, ids)
	assert.Len(t, ids, 27)

	size, err := flags.GetInt("batch-size")
	require.NoError(t, err)
	assert.Equal(t, grid.DefaultBatchSize, size)
}

func TestRun_MissingDatasetIsNotAnError(t *testing.T) {
	params := gridParams{
		DatasetDir: filepath.Join(t.TempDir(), "absent"),
		OutputDir:  t.TempDir(),
		IDs:        []string{"01"},
		BatchSize:  3,
	}
	assert.NoError(t, run(params))
}

func TestRun_MissingBaseFoldersIsNotAnError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "hazy"), 0o755))
	out := filepath.Join(t.TempDir(), "grids")

	params := gridParams{DatasetDir: root, OutputDir: out, IDs: []string{"01"}, BatchSize: 3}
	assert.NoError(t, run(params))
	assert.NoDirExists(t, out)
}

func TestNewOutput(t *testing.T) {
	assert.IsType(t, &grid.Saver{}, newOutput("grids"))
	assert.NotNil(t, newOutput(""))
}
