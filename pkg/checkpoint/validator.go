package checkpoint

import "fmt"

// ValidationResult reports whether a checkpoint carries enough
// artifacts to resume from its recorded phase.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks the per-phase minimum-data rules. A checkpoint that
// fails validation must be discarded and the run restarted from phase 1;
// resuming into a phase with missing inputs would fail deep inside a
// downstream phase with a confusing error instead.
func Validate(cp *Checkpoint) ValidationResult {
	result := ValidationResult{Valid: true}
	if cp == nil {
		return ValidationResult{Valid: false, Errors: []string{"checkpoint is nil"}}
	}

	fail := func(format string, args ...interface{}) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if cp.Phase < PhaseAuthCheck || cp.Phase > PhaseFinalize {
		fail("phase %d is out of range 1-7", cp.Phase)
		return result
	}
	if cp.SpecHash == "" {
		fail("checkpoint has no spec hash")
	}

	// Past SpecCheck: the spec was either validated or recorded as invalid.
	if cp.Phase >= PhaseSpecCheck {
		if cp.Data.ValidatedSpec == "" && len(cp.Data.ValidationErrors) == 0 {
			fail("phase %d checkpoint has neither a validated spec nor validation errors", cp.Phase)
		}
	}

	// Past Repair with a spec that had needed repairing: the repaired
	// spec must have been captured.
	if cp.Phase >= PhaseRepair && len(cp.Data.ValidationErrors) > 0 {
		if cp.Data.RepairedSpec == "" {
			fail("phase %d checkpoint has validation errors but no repaired spec", cp.Phase)
		}
	}

	// Past Generation: generated files must exist.
	if cp.Phase >= PhaseGeneration {
		if len(cp.Data.GeneratedFiles) == 0 {
			fail("phase %d checkpoint has no generated files", cp.Phase)
		}
	}

	// About to Finalize.
	if cp.Phase == PhaseFinalize {
		if cp.Data.GeneratedFiles == nil {
			fail("finalize checkpoint is missing generated files")
		}
	}

	return result
}
