package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgeapps/onboardgen/pkg/checkpoint"
	"github.com/forgeapps/onboardgen/pkg/output"
	"github.com/forgeapps/onboardgen/pkg/spec"
)

// Phase 1 — AuthCheck. At least one credential must be configured; an
// expired-but-refreshable token is refreshed. Not retryable: a failure
// here needs the user to re-authenticate.
func phaseAuthCheck(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult {
	if _, err := c.Auth.EnsureCredentials(ctx); err != nil {
		return failure(ErrAuth, err.Error())
	}
	return success(Ran)
}

// Phase 2 — SpecCheck. Parse and validate the spec. A validation
// failure is deferred (phase still succeeds) when AI repair is enabled,
// so Repair gets its chance; otherwise it fails the run immediately.
func phaseSpecCheck(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult {
	source, err := c.ReadFile(cp.SpecPath)
	if err != nil {
		return failure(ErrFileSystem, fmt.Sprintf("cannot read spec file: %v", err))
	}

	parsed, errs := c.Loader.ParseAndValidate(string(source))
	if len(errs) == 0 && parsed != nil {
		return successWith(Ran, &checkpoint.Data{ValidatedSpec: string(source)})
	}

	delta := &checkpoint.Data{ValidationErrors: toCheckpointErrors(errs)}
	if opts.AIRepair {
		// Defer the failure to Repair.
		return successWith(Ran, delta)
	}

	return PhaseResult{
		Success: false,
		Kind:    ErrSpec,
		Error:   fmt.Sprintf("spec validation failed:\n%s", spec.FormatErrors(errs)),
		Delta:   delta,
	}
}

// Phase 3 — Repair. Only meaningful when SpecCheck recorded errors and
// AI repair is enabled.
func phaseRepair(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult {
	if len(cp.Data.ValidationErrors) == 0 {
		return success(SkippedNoPrecondition)
	}
	if !opts.AIRepair {
		return success(SkippedDisabled)
	}

	source, err := c.ReadFile(cp.SpecPath)
	if err != nil {
		return failure(ErrFileSystem, fmt.Sprintf("cannot read spec file: %v", err))
	}

	outcome, err := c.AI.Repair(ctx, string(source), fromCheckpointErrors(cp.Data.ValidationErrors))
	if err != nil {
		return failure(ErrAIProvider, fmt.Sprintf("AI repair failed: %v", err))
	}

	// The repaired spec must actually pass validation.
	if _, stillBad := c.Loader.ParseAndValidate(outcome.Spec); len(stillBad) > 0 {
		return failure(ErrSpec, fmt.Sprintf("repaired spec still fails validation:\n%s", spec.FormatErrors(stillBad)))
	}

	return successWith(Ran, &checkpoint.Data{
		RepairedSpec: outcome.Spec,
		RepairResult: &checkpoint.AIResult{
			Changes:     outcome.Changes,
			Explanation: outcome.Explanation,
			Model:       outcome.Model,
		},
	})
}

// Phase 4 — Enhancement. Optional polish of the active spec.
func phaseEnhancement(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult {
	if !opts.AIEnhance {
		return success(SkippedDisabled)
	}

	active := cp.Data.ActiveSpec()
	if active == "" {
		return failure(ErrSpec, "no valid spec available to enhance")
	}

	outcome, err := c.AI.Enhance(ctx, active)
	if err != nil {
		return failure(ErrAIProvider, fmt.Sprintf("AI enhancement failed: %v", err))
	}

	if _, bad := c.Loader.ParseAndValidate(outcome.Spec); len(bad) > 0 {
		return failure(ErrSpec, fmt.Sprintf("enhanced spec fails validation:\n%s", spec.FormatErrors(bad)))
	}

	return successWith(Ran, &checkpoint.Data{
		EnhancedSpec: outcome.Spec,
		EnhancementResult: &checkpoint.AIResult{
			Changes:     outcome.Changes,
			Explanation: outcome.Explanation,
			Model:       outcome.Model,
		},
	})
}

// Phase 5 — Generation. Render the active spec into the file map.
func phaseGeneration(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult {
	active := cp.Data.ActiveSpec()
	if active == "" {
		return failure(ErrSpec, "no valid spec available to generate from (repair was skipped or disabled)")
	}

	parsed, errs := c.Loader.ParseAndValidate(active)
	if len(errs) > 0 || parsed == nil {
		return failure(ErrSpec, fmt.Sprintf("active spec fails validation:\n%s", spec.FormatErrors(errs)))
	}

	result, err := c.Renderer.Render(parsed)
	if err != nil {
		return failure(ErrInternal, fmt.Sprintf("template rendering failed: %v", err))
	}

	return successWith(Ran, &checkpoint.Data{GeneratedFiles: result.Files})
}

// Phase 6 — Refinement. Reserved extension point; nothing runs here yet.
func phaseRefinement(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult {
	if opts.SkipRefinement {
		return success(SkippedDisabled)
	}
	return success(SkippedNoPrecondition)
}

// Phase 7 — Finalize. Land the generated files, write the run
// metadata sidecar, and (in the orchestrator) clear the checkpoint.
func phaseFinalize(ctx context.Context, c *Collaborators, opts Options, cp *checkpoint.Checkpoint) PhaseResult {
	files := cp.Data.GeneratedFiles
	if len(files) == 0 {
		return failure(ErrInternal, "no generated files to write (generation did not run)")
	}

	writeOpts := output.Options{DryRun: opts.DryRun, Overwrite: opts.Overwrite}
	if err := c.Writer.Prepare(cp.OutputPath, writeOpts); err != nil {
		return failure(ErrFileSystem, err.Error())
	}

	report := c.Writer.WriteAll(files, cp.OutputPath, writeOpts)
	if report.FailureCount > 0 {
		var failed []string
		for _, f := range report.PerFile {
			if !f.Success {
				failed = append(failed, fmt.Sprintf("%s: %s", f.Path, f.Error))
			}
		}
		return failure(ErrFileSystem, fmt.Sprintf("%d of %d files failed to write:\n  %s",
			report.FailureCount, len(report.PerFile), strings.Join(failed, "\n  ")))
	}

	meta := output.Metadata{
		SpecPath:   cp.SpecPath,
		SpecHash:   cp.SpecHash,
		FileCount:  report.SuccessCount,
		TotalBytes: report.TotalBytes,
		AIRepaired: cp.Data.RepairedSpec != "",
		AIEnhanced: cp.Data.EnhancedSpec != "",
	}
	if err := c.Writer.WriteMetadata(cp.OutputPath, meta, writeOpts); err != nil {
		return failure(ErrFileSystem, fmt.Sprintf("failed to write run metadata: %v", err))
	}

	return success(Ran)
}

func toCheckpointErrors(errs []spec.ValidationError) []checkpoint.ValidationError {
	out := make([]checkpoint.ValidationError, len(errs))
	for i, e := range errs {
		out[i] = checkpoint.ValidationError{Path: e.Path, Message: e.Message, Code: e.Code}
	}
	return out
}

func fromCheckpointErrors(errs []checkpoint.ValidationError) []spec.ValidationError {
	out := make([]spec.ValidationError, len(errs))
	for i, e := range errs {
		out[i] = spec.ValidationError{Path: e.Path, Message: e.Message, Code: e.Code}
	}
	return out
}
