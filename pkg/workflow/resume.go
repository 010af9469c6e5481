package workflow

import (
	"fmt"

	"github.com/forgeapps/onboardgen/pkg/checkpoint"
)

// Plan is the resume decision for a run.
type Plan struct {
	ShouldResume bool
	Checkpoint   *checkpoint.Checkpoint
	StartPhase   int

	// Warning explains a discarded checkpoint (hash mismatch, missing
	// artifacts) so the CLI can surface it.
	Warning string
}

// Confirmer asks the user whether to resume from a checkpoint. The CLI
// provides a terminal implementation; non-interactive contexts
// auto-accept (the hash check has already established safety).
type Confirmer interface {
	ConfirmResume(cp *checkpoint.Checkpoint) (bool, error)
}

// AutoConfirm accepts every resume prompt. Used when stdin is not a
// terminal or --yes was passed.
type AutoConfirm struct{}

func (AutoConfirm) ConfirmResume(*checkpoint.Checkpoint) (bool, error) { return true, nil }

// Planner decides whether a run resumes from a stored checkpoint or
// starts fresh.
type Planner struct {
	store   *checkpoint.Store
	confirm Confirmer
}

// NewPlanner creates a resume planner. confirm may be nil, which
// auto-accepts.
func NewPlanner(store *checkpoint.Store, confirm Confirmer) *Planner {
	if confirm == nil {
		confirm = AutoConfirm{}
	}
	return &Planner{store: store, confirm: confirm}
}

func freshPlan(warning string) Plan {
	return Plan{ShouldResume: false, StartPhase: checkpoint.PhaseAuthCheck, Warning: warning}
}

// Plan implements the resume decision:
//
//  1. no (or corrupt) checkpoint, or --fresh: start at phase 1;
//  2. spec hash mismatch: the input changed since the checkpoint was
//     written — discard, never resume (the principal safety property);
//  3. checkpoint missing required artifacts for its phase: discard;
//  4. otherwise ask for confirmation and resume at the stored phase.
func (pl *Planner) Plan(specPath string, opts Options) (Plan, error) {
	if opts.Fresh {
		if err := pl.store.Clear(specPath); err != nil {
			return Plan{}, err
		}
		return freshPlan(""), nil
	}

	cp, err := pl.store.Load(specPath)
	if err != nil {
		return Plan{}, err
	}
	if cp == nil {
		return freshPlan(""), nil
	}

	currentHash, err := checkpoint.HashFile(specPath)
	if err != nil {
		return Plan{}, err
	}
	if currentHash != cp.SpecHash {
		return freshPlan("spec file changed since the last run; discarding checkpoint and starting fresh"), nil
	}

	if v := checkpoint.Validate(cp); !v.Valid {
		return freshPlan(fmt.Sprintf("checkpoint is missing required artifacts (%v); starting fresh", v.Errors)), nil
	}

	ok, err := pl.confirm.ConfirmResume(cp)
	if err != nil {
		return Plan{}, err
	}
	if !ok {
		return freshPlan(""), nil
	}

	return Plan{ShouldResume: true, Checkpoint: cp, StartPhase: cp.Phase}, nil
}
