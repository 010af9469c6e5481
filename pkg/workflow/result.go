package workflow

import "github.com/forgeapps/onboardgen/pkg/checkpoint"

// Outcome distinguishes why an optional phase did or did not do work.
// Progress reporting and analytics need "nothing to do" kept apart from
// "user opted out" without re-deriving the phase logic.
type Outcome int

const (
	// Ran means preconditions were met, the enabling option was set,
	// and the collaborator was invoked.
	Ran Outcome = iota
	// SkippedNoPrecondition means there was nothing to do regardless of
	// options (e.g. Repair with zero validation errors).
	SkippedNoPrecondition
	// SkippedDisabled means the precondition was present but the
	// enabling option was off.
	SkippedDisabled
)

func (o Outcome) String() string {
	switch o {
	case Ran:
		return "ran"
	case SkippedNoPrecondition:
		return "skipped (nothing to do)"
	case SkippedDisabled:
		return "skipped (disabled)"
	default:
		return "unknown"
	}
}

// ErrorKind is the failure taxonomy surfaced to the user.
type ErrorKind string

const (
	ErrAuth       ErrorKind = "auth"
	ErrSpec       ErrorKind = "spec"
	ErrAIProvider ErrorKind = "ai_provider"
	ErrFileSystem ErrorKind = "filesystem"
	ErrInternal   ErrorKind = "internal"
)

// PhaseResult is the uniform return of every phase. A phase never lets
// a panic or error escape its boundary; failures come back here.
type PhaseResult struct {
	Success bool
	Outcome Outcome
	Error   string
	Kind    ErrorKind

	// Delta holds the artifacts this phase produced. The orchestrator
	// merges it additively into the checkpoint; phases never mutate the
	// checkpoint directly.
	Delta *checkpoint.Data
}

func success(outcome Outcome) PhaseResult {
	return PhaseResult{Success: true, Outcome: outcome}
}

func successWith(outcome Outcome, delta *checkpoint.Data) PhaseResult {
	return PhaseResult{Success: true, Outcome: outcome, Delta: delta}
}

func failure(kind ErrorKind, msg string) PhaseResult {
	return PhaseResult{Success: false, Kind: kind, Error: msg}
}

// merge copies the delta's populated fields into the accumulated data.
// Fields are additive: a set field is never cleared and an empty delta
// field never erases an earlier value.
func merge(dst *checkpoint.Data, delta *checkpoint.Data) {
	if delta == nil {
		return
	}
	if delta.ValidatedSpec != "" {
		dst.ValidatedSpec = delta.ValidatedSpec
	}
	if len(delta.ValidationErrors) > 0 {
		dst.ValidationErrors = delta.ValidationErrors
	}
	if delta.RepairedSpec != "" {
		dst.RepairedSpec = delta.RepairedSpec
	}
	if delta.RepairResult != nil {
		dst.RepairResult = delta.RepairResult
	}
	if delta.EnhancedSpec != "" {
		dst.EnhancedSpec = delta.EnhancedSpec
	}
	if delta.EnhancementResult != nil {
		dst.EnhancementResult = delta.EnhancementResult
	}
	if len(delta.GeneratedFiles) > 0 {
		dst.GeneratedFiles = delta.GeneratedFiles
	}
}
