// Package output writes the generated file set to the destination
// directory. Each file write is atomic; batch failures are partial, not
// all-or-nothing.
package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/forgeapps/onboardgen/pkg/checkpoint"
)

// Options controls a batch write.
type Options struct {
	DryRun    bool
	Overwrite bool
}

// FileResult is the outcome for a single file.
type FileResult struct {
	Path    string `json:"path"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Report aggregates a batch write.
type Report struct {
	PerFile      []FileResult `json:"per_file"`
	SuccessCount int          `json:"success_count"`
	FailureCount int          `json:"failure_count"`
	TotalBytes   int64        `json:"total_bytes"`
}

// Metadata is the sidecar record describing a completed run.
type Metadata struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	SpecPath    string    `json:"spec_path"`
	SpecHash    string    `json:"spec_hash"`
	FileCount   int       `json:"file_count"`
	TotalBytes  int64     `json:"total_bytes"`
	AIRepaired  bool      `json:"ai_repaired,omitempty"`
	AIEnhanced  bool      `json:"ai_enhanced,omitempty"`
}

// MetadataFilename is the sidecar written next to the generated files.
const MetadataFilename = ".onboardgen-meta.json"

// Writer performs batch writes under a destination root.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Prepare verifies the destination directory is usable and creates it.
// An existing non-empty directory requires Overwrite. DryRun touches
// nothing.
func (w *Writer) Prepare(root string, opts Options) error {
	info, err := os.Stat(root)
	switch {
	case err == nil:
		if !info.IsDir() {
			return errors.Errorf("output path %s exists and is not a directory", root)
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			return errors.Wrapf(err, "reading output directory %s", root)
		}
		if len(entries) > 0 && !opts.Overwrite {
			return errors.Errorf("output directory %s is not empty (use --overwrite to replace its contents)", root)
		}
	case os.IsNotExist(err):
		if opts.DryRun {
			return nil
		}
		if err := os.MkdirAll(root, 0755); err != nil {
			return errors.Wrapf(err, "creating output directory %s", root)
		}
	default:
		return errors.Wrapf(err, "checking output directory %s", root)
	}
	return nil
}

// WriteAll writes every file in the map under root. Failures do not
// stop the batch; the report carries the failing subset. Paths are
// written in sorted order so output is deterministic.
func (w *Writer) WriteAll(files map[string]string, root string, opts Options) *Report {
	report := &Report{}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		content := files[p]
		result := FileResult{Path: p, Success: true}

		if !opts.DryRun {
			if err := checkpoint.WriteAtomic(filepath.Join(root, p), []byte(content)); err != nil {
				result.Success = false
				result.Error = err.Error()
			}
		}

		if result.Success {
			report.SuccessCount++
			report.TotalBytes += int64(len(content))
		} else {
			report.FailureCount++
		}
		report.PerFile = append(report.PerFile, result)
	}

	return report
}

// WriteMetadata writes the run sidecar. Skipped entirely on dry runs.
func (w *Writer) WriteMetadata(root string, meta Metadata, opts Options) error {
	if opts.DryRun {
		return nil
	}
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling run metadata")
	}
	return checkpoint.WriteAtomic(filepath.Join(root, MetadataFilename), data)
}
