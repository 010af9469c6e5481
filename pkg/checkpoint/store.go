package checkpoint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store persists one checkpoint per spec file in a state directory.
//
// The default directory is $HOME/.onboardgen/checkpoints; each spec gets
// a file keyed by the hash of its absolute path, so concurrent runs
// against different specs never collide.
type Store struct {
	directory string
}

// NewStore creates a checkpoint store rooted at dir. An empty dir
// selects the default state directory under the user's home.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".onboardgen", "checkpoints")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	return &Store{directory: dir}, nil
}

// New creates a fresh checkpoint at phase 1 for the given spec.
func New(specPath, outputPath, specHash string) *Checkpoint {
	return &Checkpoint{
		Version:    CheckpointVersion,
		Phase:      PhaseAuthCheck,
		SpecHash:   specHash,
		SpecPath:   specPath,
		OutputPath: outputPath,
		Timestamp:  time.Now().UTC(),
	}
}

// Save serializes the checkpoint and writes it atomically. A torn
// checkpoint write is the one failure that permanently defeats resume,
// so this always goes through WriteAtomic.
func (s *Store) Save(cp *Checkpoint) error {
	cp.Timestamp = time.Now().UTC()

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	if err := WriteAtomic(s.Path(cp.SpecPath), data); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}

	return nil
}

// Load reads the checkpoint for specPath. A missing file and a corrupt
// file are treated identically: (nil, nil). Callers start fresh in
// either case rather than failing the run.
func (s *Store) Load(specPath string) (*Checkpoint, error) {
	data, err := os.ReadFile(s.Path(specPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		// Corruption is treated like absence.
		return nil, nil
	}

	if cp.Version == "" || cp.Phase < PhaseAuthCheck || cp.Phase > PhaseFinalize {
		return nil, nil
	}

	return &cp, nil
}

// Clear removes the checkpoint for specPath. Missing files are fine.
func (s *Store) Clear(specPath string) error {
	if err := os.Remove(s.Path(specPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove checkpoint: %w", err)
	}
	return nil
}

// Exists reports whether a checkpoint file is present for specPath.
func (s *Store) Exists(specPath string) bool {
	_, err := os.Stat(s.Path(specPath))
	return err == nil
}

// Path returns the checkpoint file location for a spec path.
func (s *Store) Path(specPath string) string {
	abs, err := filepath.Abs(specPath)
	if err != nil {
		abs = specPath
	}
	sum := sha256.Sum256([]byte(abs))
	filename := fmt.Sprintf("checkpoint-%s.json", hex.EncodeToString(sum[:8]))
	return filepath.Join(s.directory, filename)
}

// HashFile computes the content fingerprint of the spec source.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read spec file: %w", err)
	}
	return HashBytes(data), nil
}

// HashBytes fingerprints spec content already held in memory.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
