package checkpoint

import "testing"

func TestValidate(t *testing.T) {
	files := map[string]string{"App.tsx": "content"}

	tests := []struct {
		name      string
		cp        *Checkpoint
		wantValid bool
	}{
		{
			name:      "nil checkpoint",
			cp:        nil,
			wantValid: false,
		},
		{
			name:      "fresh checkpoint at phase 1",
			cp:        &Checkpoint{Version: CheckpointVersion, Phase: PhaseAuthCheck, SpecHash: "abc"},
			wantValid: true,
		},
		{
			name:      "phase out of range",
			cp:        &Checkpoint{Version: CheckpointVersion, Phase: 9, SpecHash: "abc"},
			wantValid: false,
		},
		{
			name:      "missing spec hash",
			cp:        &Checkpoint{Version: CheckpointVersion, Phase: PhaseAuthCheck},
			wantValid: false,
		},
		{
			name:      "phase 2 with neither validated spec nor errors",
			cp:        &Checkpoint{Version: CheckpointVersion, Phase: PhaseSpecCheck, SpecHash: "abc"},
			wantValid: false,
		},
		{
			name: "phase 2 with validated spec",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseSpecCheck, SpecHash: "abc",
				Data: Data{ValidatedSpec: "# App"},
			},
			wantValid: true,
		},
		{
			name: "phase 2 with validation errors only",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseSpecCheck, SpecHash: "abc",
				Data: Data{ValidationErrors: []ValidationError{{Message: "bad color", Code: "invalid_color"}}},
			},
			wantValid: true,
		},
		{
			name: "phase 3 with errors but no repaired spec",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseRepair, SpecHash: "abc",
				Data: Data{ValidationErrors: []ValidationError{{Message: "bad color", Code: "invalid_color"}}},
			},
			wantValid: false,
		},
		{
			name: "phase 3 with errors and repaired spec",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseRepair, SpecHash: "abc",
				Data: Data{
					ValidationErrors: []ValidationError{{Message: "bad color", Code: "invalid_color"}},
					RepairedSpec:     "# App",
				},
			},
			wantValid: true,
		},
		{
			name: "phase 3 with clean spec needs no repair",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseRepair, SpecHash: "abc",
				Data: Data{ValidatedSpec: "# App"},
			},
			wantValid: true,
		},
		{
			name: "phase 5 without generated files",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseGeneration, SpecHash: "abc",
				Data: Data{ValidatedSpec: "# App"},
			},
			wantValid: false,
		},
		{
			name: "phase 5 with generated files",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseGeneration, SpecHash: "abc",
				Data: Data{ValidatedSpec: "# App", GeneratedFiles: files},
			},
			wantValid: true,
		},
		{
			name: "phase 7 without generated files",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseFinalize, SpecHash: "abc",
				Data: Data{ValidatedSpec: "# App"},
			},
			wantValid: false,
		},
		{
			name: "phase 7 with generated files",
			cp: &Checkpoint{
				Version: CheckpointVersion, Phase: PhaseFinalize, SpecHash: "abc",
				Data: Data{ValidatedSpec: "# App", GeneratedFiles: files},
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.cp)
			if result.Valid != tt.wantValid {
				t.Errorf("Validate() valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if !result.Valid && len(result.Errors) == 0 {
				t.Error("invalid result must carry at least one error message")
			}
		})
	}
}

func TestPhaseName(t *testing.T) {
	if got := PhaseName(PhaseSpecCheck); got != "SpecCheck" {
		t.Errorf("PhaseName(2) = %s, want SpecCheck", got)
	}
	if got := PhaseName(42); got != "Unknown" {
		t.Errorf("PhaseName(42) = %s, want Unknown", got)
	}
}
