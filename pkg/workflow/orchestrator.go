package workflow

import (
	"context"
	"fmt"

	"github.com/forgeapps/onboardgen/pkg/checkpoint"
)

// phaseFunc is the uniform shape of every phase implementation.
type phaseFunc func(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult

var phases = map[int]phaseFunc{
	checkpoint.PhaseAuthCheck:   phaseAuthCheck,
	checkpoint.PhaseSpecCheck:   phaseSpecCheck,
	checkpoint.PhaseRepair:      phaseRepair,
	checkpoint.PhaseEnhancement: phaseEnhancement,
	checkpoint.PhaseGeneration:  phaseGeneration,
	checkpoint.PhaseRefinement:  phaseRefinement,
	checkpoint.PhaseFinalize:    phaseFinalize,
}

// ProgressFunc is called after every phase attempt for progress output.
type ProgressFunc func(phase int, name string, result PhaseResult)

// RunError is the failure the orchestrator hands back to the CLI: the
// phase that failed plus where the checkpoint was retained.
type RunError struct {
	Phase          int
	PhaseName      string
	Kind           ErrorKind
	Message        string
	CheckpointPath string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("phase %d (%s) failed: %s", e.Phase, e.PhaseName, e.Message)
}

// Orchestrator drives the seven phases in order, persisting the
// checkpoint after every phase attempt.
type Orchestrator struct {
	store    *checkpoint.Store
	collab   *Collaborators
	progress ProgressFunc
}

// NewOrchestrator wires the engine together. progress may be nil.
func NewOrchestrator(store *checkpoint.Store, collab *Collaborators, progress ProgressFunc) *Orchestrator {
	if progress == nil {
		progress = func(int, string, PhaseResult) {}
	}
	return &Orchestrator{store: store, collab: collab, progress: progress}
}

// Run executes phases startPhase..7 against the given checkpoint.
//
// On each phase: the checkpoint's phase marker is set to the attempted
// phase, the phase runs, its artifact delta is merged additively, and
// the checkpoint is persisted — success or failure. A failure stops the
// run with the checkpoint retained at the failed phase; only a fully
// successful Finalize clears it.
func (o *Orchestrator) Run(ctx context.Context, opts Options, cp *checkpoint.Checkpoint, startPhase int) error {
	for p := startPhase; p <= checkpoint.PhaseFinalize; p++ {
		name := checkpoint.PhaseName(p)
		cp.Phase = p

		result := o.invoke(ctx, p, opts, cp)

		// Artifacts produced before a failure (e.g. validation errors
		// recorded by a failing SpecCheck) are still persisted.
		merge(&cp.Data, result.Delta)

		if !result.Success {
			if err := o.store.Save(cp); err != nil {
				result.Error = fmt.Sprintf("%s (additionally, saving the checkpoint failed: %v)", result.Error, err)
			}
			o.progress(p, name, result)
			return &RunError{
				Phase:          p,
				PhaseName:      name,
				Kind:           result.Kind,
				Message:        result.Error,
				CheckpointPath: o.store.Path(cp.SpecPath),
			}
		}

		if err := o.store.Save(cp); err != nil {
			// A checkpoint that cannot be persisted defeats resume;
			// treat it as a run failure at this phase.
			o.progress(p, name, failure(ErrFileSystem, err.Error()))
			return &RunError{
				Phase:          p,
				PhaseName:      name,
				Kind:           ErrFileSystem,
				Message:        fmt.Sprintf("failed to persist checkpoint: %v", err),
				CheckpointPath: o.store.Path(cp.SpecPath),
			}
		}

		o.progress(p, name, result)
	}

	// The run is complete and intentionally non-resumable. On a dry run
	// the checkpoint is left as-is so a real run can still resume.
	if opts.DryRun {
		return nil
	}
	if err := o.store.Clear(cp.SpecPath); err != nil {
		return fmt.Errorf("run succeeded but clearing the checkpoint failed: %w", err)
	}
	return nil
}

// invoke runs a single phase, converting context cancellation and
// panics into phase failures so nothing crosses the phase boundary.
func (o *Orchestrator) invoke(ctx context.Context, p int, opts Options, cp *checkpoint.Checkpoint) (result PhaseResult) {
	if err := ctx.Err(); err != nil {
		return failure(ErrInternal, fmt.Sprintf("run cancelled: %v", err))
	}

	defer func() {
		if r := recover(); r != nil {
			result = failure(ErrInternal, fmt.Sprintf("unexpected panic in %s: %v", checkpoint.PhaseName(p), r))
		}
	}()

	fn, ok := phases[p]
	if !ok {
		return failure(ErrInternal, fmt.Sprintf("no implementation for phase %d", p))
	}
	return fn(ctx, o.collab, opts, cp)
}
