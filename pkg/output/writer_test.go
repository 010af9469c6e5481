package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAll(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	w := NewWriter()
	require.NoError(t, w.Prepare(root, Options{}))

	files := map[string]string{
		"App.tsx":                   "app",
		"src/onboarding/theme.ts":   "theme",
		"src/onboarding/storage.ts": "storage",
	}

	report := w.WriteAll(files, root, Options{})
	assert.Equal(t, 3, report.SuccessCount)
	assert.Equal(t, 0, report.FailureCount)
	assert.Equal(t, int64(len("app")+len("theme")+len("storage")), report.TotalBytes)
	require.Len(t, report.PerFile, 3)

	// Per-file results are sorted by path.
	assert.Equal(t, "App.tsx", report.PerFile[0].Path)

	data, err := os.ReadFile(filepath.Join(root, "src/onboarding/theme.ts"))
	require.NoError(t, err)
	assert.Equal(t, "theme", string(data))
}

func TestWriteAll_DryRunWritesNothing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	w := NewWriter()
	require.NoError(t, w.Prepare(root, Options{DryRun: true}))

	report := w.WriteAll(map[string]string{"App.tsx": "app"}, root, Options{DryRun: true})
	assert.Equal(t, 1, report.SuccessCount)

	_, err := os.Stat(root)
	assert.True(t, os.IsNotExist(err), "dry run must not create the output directory")
}

func TestPrepare_NonEmptyWithoutOverwrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "existing.txt"), []byte("x"), 0600))

	w := NewWriter()
	err := w.Prepare(root, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")

	// Overwrite allows it.
	assert.NoError(t, w.Prepare(root, Options{Overwrite: true}))
}

func TestWriteAll_PartialFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	w := NewWriter()
	require.NoError(t, w.Prepare(root, Options{}))

	// Make one target path unwritable by creating a file where a
	// directory is needed.
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocked"), []byte("file"), 0600))

	files := map[string]string{
		"ok.ts":          "fine",
		"blocked/sub.ts": "cannot create dir over a file",
	}

	report := w.WriteAll(files, root, Options{})
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailureCount)

	var failed *FileResult
	for i := range report.PerFile {
		if !report.PerFile[i].Success {
			failed = &report.PerFile[i]
		}
	}
	require.NotNil(t, failed, "report must identify the failing file")
	assert.Equal(t, "blocked/sub.ts", failed.Path)
	assert.NotEmpty(t, failed.Error)

	// The rest of the batch was still written.
	_, err := os.Stat(filepath.Join(root, "ok.ts"))
	assert.NoError(t, err)
}

func TestWriteMetadata(t *testing.T) {
	root := t.TempDir()
	w := NewWriter()

	require.NoError(t, w.WriteMetadata(root, Metadata{
		SpecPath:  "/specs/app.md",
		SpecHash:  "abc123",
		FileCount: 8,
	}, Options{}))

	data, err := os.ReadFile(filepath.Join(root, MetadataFilename))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"spec_hash": "abc123"`)
	assert.Contains(t, string(data), `"run_id"`)
}

func TestWriteMetadata_DryRun(t *testing.T) {
	root := t.TempDir()
	w := NewWriter()

	require.NoError(t, w.WriteMetadata(root, Metadata{}, Options{DryRun: true}))

	_, err := os.Stat(filepath.Join(root, MetadataFilename))
	assert.True(t, os.IsNotExist(err))
}
