// Package workflow is the seven-phase resumable engine that drives a
// generation run: AuthCheck, SpecCheck, Repair, Enhancement, Generation,
// Refinement, Finalize. Each phase consumes the current checkpoint,
// returns a uniform result, and the orchestrator persists the
// checkpoint after every phase so an interrupted run resumes where it
// stopped.
package workflow

// Options is the run configuration consumed by the orchestrator.
type Options struct {
	// SpecPath and OutputPath are resolved to absolute paths by the CLI.
	SpecPath   string
	OutputPath string

	AIRepair       bool
	AIEnhance      bool
	SkipRefinement bool
	DryRun         bool
	Overwrite      bool
	Verbose        bool

	// Fresh discards any existing checkpoint; AssumeYes accepts the
	// resume prompt without asking.
	Fresh     bool
	AssumeYes bool
}
