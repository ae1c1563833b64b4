package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadDiffsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffs.arrow")

	samples := []string{"images/a.jpg", "images/b.png", "images/c.jpeg"}
	diffs := [][]float32{
		{0.0001, 0.002, 0.0, 0.5},
		{0.25, 0.125, 0.0625, 0.03125},
		{1.0, 0.0, 0.75, 0.5},
	}
	runInfo := map[string]string{
		"checkpoint": "models/ckpt.onnx",
		"converted":  "bundle/",
		"image_size": "224",
	}

	require.NoError(t, WriteDiffs(path, samples, diffs, runInfo))

	gotSamples, gotDiffs, gotInfo, err := ReadDiffs(path)
	require.NoError(t, err)

	assert.Equal(t, samples, gotSamples)
	require.Len(t, gotDiffs, len(diffs))
	for i := range diffs {
		assert.Equal(t, diffs[i], gotDiffs[i], "row %d", i)
	}
	assert.Equal(t, runInfo, gotInfo)
}

func TestWriteDiffsRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffs.arrow")
	err := WriteDiffs(path, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no difference rows")
}

func TestWriteDiffsRejectsCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffs.arrow")
	err := WriteDiffs(path, []string{"a.png"}, [][]float32{{0.1}, {0.2}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match row count")
}

func TestWriteDiffsRejectsRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffs.arrow")
	err := WriteDiffs(path, []string{"a.png", "b.png"}, [][]float32{{0.1, 0.2}, {0.1}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ragged difference matrix")
}

func TestReadDiffsMissingFile(t *testing.T) {
	_, _, _, err := ReadDiffs(filepath.Join(t.TempDir(), "nope.arrow"))
	require.Error(t, err)
}

func TestReadDiffsRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.arrow")
	require.NoError(t, os.WriteFile(path, []byte("not an arrow file"), 0o644))

	_, _, _, err := ReadDiffs(path)
	require.Error(t, err)
}

func TestWriteDiffsEmptyRunInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffs.arrow")
	require.NoError(t, WriteDiffs(path, []string{"a.png"}, [][]float32{{0.5, 0.25}}, nil))

	gotSamples, gotDiffs, gotInfo, err := ReadDiffs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, gotSamples)
	assert.Equal(t, [][]float32{{0.5, 0.25}}, gotDiffs)
	assert.Empty(t, gotInfo)
}
