package checkpoint

import "time"

// Checkpoint represents the saved state of a workflow run at a specific phase
type Checkpoint struct {
	// Version of the checkpoint format (for future compatibility)
	Version string `json:"version"`

	// Phase is the last phase attempted, 1-7. After a failure the
	// checkpoint stays at the failed phase so the next run retries it.
	Phase int `json:"phase"`

	// SpecHash detects spec changes between runs. A checkpoint whose
	// hash no longer matches the spec on disk must never be resumed.
	SpecHash string `json:"spec_hash"`

	// Input and output locations (absolute paths)
	SpecPath   string `json:"spec_path"`
	OutputPath string `json:"output_path"`

	// Metadata
	Timestamp time.Time `json:"timestamp"`

	// Accumulated per-phase artifacts
	Data Data `json:"data"`
}

// Data accumulates the artifacts each phase produces. Fields are
// additive within a run: once written they are never cleared, later
// phases only add.
type Data struct {
	ValidatedSpec     string            `json:"validated_spec,omitempty"`
	ValidationErrors  []ValidationError `json:"validation_errors,omitempty"`
	RepairedSpec      string            `json:"repaired_spec,omitempty"`
	RepairResult      *AIResult         `json:"repair_result,omitempty"`
	EnhancedSpec      string            `json:"enhanced_spec,omitempty"`
	EnhancementResult *AIResult         `json:"enhancement_result,omitempty"`
	GeneratedFiles    map[string]string `json:"generated_files,omitempty"`
}

// ValidationError mirrors the spec loader's error shape so the
// checkpoint can round-trip it without importing the loader.
type ValidationError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

// AIResult records what an AI repair or enhancement pass did.
type AIResult struct {
	Changes     []string `json:"changes,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Model       string   `json:"model,omitempty"`
}

// ActiveSpec returns the spec text downstream phases must treat as
// authoritative: enhanced, else repaired, else validated.
func (d *Data) ActiveSpec() string {
	if d.EnhancedSpec != "" {
		return d.EnhancedSpec
	}
	if d.RepairedSpec != "" {
		return d.RepairedSpec
	}
	return d.ValidatedSpec
}

// Phase numbers. The sequence is fixed; transitions are strictly linear.
const (
	PhaseAuthCheck   = 1
	PhaseSpecCheck   = 2
	PhaseRepair      = 3
	PhaseEnhancement = 4
	PhaseGeneration  = 5
	PhaseRefinement  = 6
	PhaseFinalize    = 7
)

// PhaseName returns the human-readable name for a phase number.
func PhaseName(phase int) string {
	switch phase {
	case PhaseAuthCheck:
		return "AuthCheck"
	case PhaseSpecCheck:
		return "SpecCheck"
	case PhaseRepair:
		return "Repair"
	case PhaseEnhancement:
		return "Enhancement"
	case PhaseGeneration:
		return "Generation"
	case PhaseRefinement:
		return "Refinement"
	case PhaseFinalize:
		return "Finalize"
	default:
		return "Unknown"
	}
}

// CheckpointVersion is the current checkpoint format version
const CheckpointVersion = "1.0"
