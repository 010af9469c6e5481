package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSpec(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write spec fixture: %v", err)
	}
	return path
}

func TestSaveAndLoadCheckpoint(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(filepath.Join(tmpDir, "state"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	specPath := writeSpec(t, tmpDir, "app.md", "# My App\n")
	hash, err := HashFile(specPath)
	if err != nil {
		t.Fatalf("HashFile() failed: %v", err)
	}

	cp := New(specPath, filepath.Join(tmpDir, "out"), hash)
	cp.Phase = PhaseGeneration
	cp.Data.ValidatedSpec = "# My App\n"
	cp.Data.ValidationErrors = []ValidationError{
		{Path: []string{"screens", "0", "cta"}, Message: "missing cta", Code: "missing_field"},
	}
	cp.Data.RepairedSpec = "# My App (repaired)\n"
	cp.Data.GeneratedFiles = map[string]string{
		"App.tsx": "export default function App() {}",
	}

	if err := store.Save(cp); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load(specPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil for a saved checkpoint")
	}

	if loaded.Phase != PhaseGeneration {
		t.Errorf("Phase = %d, want %d", loaded.Phase, PhaseGeneration)
	}
	if loaded.SpecHash != hash {
		t.Errorf("SpecHash = %s, want %s", loaded.SpecHash, hash)
	}
	if loaded.SpecPath != specPath {
		t.Errorf("SpecPath = %s, want %s", loaded.SpecPath, specPath)
	}
	if loaded.OutputPath != cp.OutputPath {
		t.Errorf("OutputPath = %s, want %s", loaded.OutputPath, cp.OutputPath)
	}
	if loaded.Data.ValidatedSpec != cp.Data.ValidatedSpec {
		t.Errorf("ValidatedSpec = %q, want %q", loaded.Data.ValidatedSpec, cp.Data.ValidatedSpec)
	}
	if loaded.Data.RepairedSpec != cp.Data.RepairedSpec {
		t.Errorf("RepairedSpec = %q, want %q", loaded.Data.RepairedSpec, cp.Data.RepairedSpec)
	}
	if len(loaded.Data.ValidationErrors) != 1 || loaded.Data.ValidationErrors[0].Code != "missing_field" {
		t.Errorf("ValidationErrors = %+v, want one missing_field error", loaded.Data.ValidationErrors)
	}
	if got := loaded.Data.GeneratedFiles["App.tsx"]; got != cp.Data.GeneratedFiles["App.tsx"] {
		t.Errorf("GeneratedFiles[App.tsx] = %q, want %q", got, cp.Data.GeneratedFiles["App.tsx"])
	}
	if loaded.Version != CheckpointVersion {
		t.Errorf("Version = %s, want %s", loaded.Version, CheckpointVersion)
	}
}

func TestLoad_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(filepath.Join(tmpDir, "state"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	cp, err := store.Load(filepath.Join(tmpDir, "never-saved.md"))
	if err != nil {
		t.Fatalf("Load() on missing checkpoint returned error: %v", err)
	}
	if cp != nil {
		t.Error("Load() on missing checkpoint should return nil")
	}
}

func TestLoad_Corrupted(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(filepath.Join(tmpDir, "state"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	specPath := writeSpec(t, tmpDir, "app.md", "# App\n")

	// Write corrupted checkpoint file directly under the derived path.
	if err := os.WriteFile(store.Path(specPath), []byte("corrupted json{{{"), 0600); err != nil {
		t.Fatalf("failed to write corrupted checkpoint: %v", err)
	}

	// Corruption is treated like absence, not an error.
	cp, err := store.Load(specPath)
	if err != nil {
		t.Fatalf("Load() on corrupted checkpoint returned error: %v", err)
	}
	if cp != nil {
		t.Error("Load() on corrupted checkpoint should return nil")
	}
}

func TestClear(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(filepath.Join(tmpDir, "state"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	specPath := writeSpec(t, tmpDir, "app.md", "# App\n")

	// Clearing a non-existent checkpoint is fine.
	if err := store.Clear(specPath); err != nil {
		t.Errorf("Clear() on missing checkpoint returned error: %v", err)
	}

	cp := New(specPath, "/tmp/out", "abc123")
	if err := store.Save(cp); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if !store.Exists(specPath) {
		t.Fatal("Exists() = false after Save()")
	}

	if err := store.Clear(specPath); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if store.Exists(specPath) {
		t.Error("Exists() = true after Clear()")
	}
}

func TestPath_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(filepath.Join(tmpDir, "state"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	p1 := store.Path("/projects/app/spec.md")
	p2 := store.Path("/projects/app/spec.md")
	p3 := store.Path("/projects/other/spec.md")

	if p1 != p2 {
		t.Errorf("Path() not deterministic: %s != %s", p1, p2)
	}
	if p1 == p3 {
		t.Error("Path() collides for different spec paths")
	}
}

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.json")

	testData := []byte(`{"test": "data"}`)

	if err := WriteAtomic(testFile, testData); err != nil {
		t.Fatalf("WriteAtomic() failed: %v", err)
	}

	readData, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(readData) != string(testData) {
		t.Errorf("File content = %s, want %s", readData, testData)
	}

	// Verify temp file was cleaned up
	tmpPath := testFile + ".tmp"
	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Error("Temp file was not cleaned up")
	}
}

func TestAtomicWrite_DirectoryCreation(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	testFile := filepath.Join(nestedDir, "test.json")

	if err := WriteAtomic(testFile, []byte(`{}`)); err != nil {
		t.Fatalf("WriteAtomic() failed: %v", err)
	}

	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Error("File was not created")
	}
}

func TestActiveSpec_Precedence(t *testing.T) {
	tests := []struct {
		name string
		data Data
		want string
	}{
		{
			name: "all three set prefers enhanced",
			data: Data{ValidatedSpec: "A", RepairedSpec: "B", EnhancedSpec: "C"},
			want: "C",
		},
		{
			name: "validated and repaired prefers repaired",
			data: Data{ValidatedSpec: "A", RepairedSpec: "B"},
			want: "B",
		},
		{
			name: "only validated",
			data: Data{ValidatedSpec: "A"},
			want: "A",
		},
		{
			name: "nothing set",
			data: Data{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.ActiveSpec(); got != tt.want {
				t.Errorf("ActiveSpec() = %q, want %q", got, tt.want)
			}
		})
	}
}
