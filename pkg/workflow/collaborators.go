package workflow

import (
	"context"

	"github.com/forgeapps/onboardgen/pkg/ai"
	"github.com/forgeapps/onboardgen/pkg/auth"
	"github.com/forgeapps/onboardgen/pkg/output"
	"github.com/forgeapps/onboardgen/pkg/render"
	"github.com/forgeapps/onboardgen/pkg/spec"
)

// The engine calls its collaborators through these narrow interfaces so
// every phase is testable with mocks and no phase touches a global.

// CredentialChecker verifies (and if needed refreshes) stored credentials.
type CredentialChecker interface {
	EnsureCredentials(ctx context.Context) (*auth.Credentials, error)
}

// SpecLoader parses and validates spec source text.
type SpecLoader interface {
	ParseAndValidate(source string) (*spec.Spec, []spec.ValidationError)
}

// AIOperations are the repair and enhancement calls.
type AIOperations interface {
	Repair(ctx context.Context, rawSpec string, errs []spec.ValidationError) (*ai.Outcome, error)
	Enhance(ctx context.Context, activeSpec string) (*ai.Outcome, error)
}

// Renderer turns a parsed spec into the generated file set.
type Renderer interface {
	Render(s *spec.Spec) (*render.Result, error)
}

// OutputWriter lands the generated files on disk.
type OutputWriter interface {
	Prepare(root string, opts output.Options) error
	WriteAll(files map[string]string, root string, opts output.Options) *output.Report
	WriteMetadata(root string, meta output.Metadata, opts output.Options) error
}

// ReadFileFunc reads the spec source; injectable for tests.
type ReadFileFunc func(path string) ([]byte, error)

// Collaborators bundles everything the phases call.
type Collaborators struct {
	Auth     CredentialChecker
	Loader   SpecLoader
	AI       AIOperations
	Renderer Renderer
	Writer   OutputWriter
	ReadFile ReadFileFunc
}

// Default adapters over the concrete packages.

type defaultLoader struct{}

func (defaultLoader) ParseAndValidate(source string) (*spec.Spec, []spec.ValidationError) {
	return spec.ParseAndValidate(source)
}

// DefaultLoader returns the production spec loader.
func DefaultLoader() SpecLoader { return defaultLoader{} }

type defaultRenderer struct{}

func (defaultRenderer) Render(s *spec.Spec) (*render.Result, error) {
	return render.Render(s)
}

// DefaultRenderer returns the production template renderer.
func DefaultRenderer() Renderer { return defaultRenderer{} }
