// Package spec parses and validates the declarative onboarding spec: a
// markdown dialect with an optional YAML front-matter block, a theme
// section, and one section per onboarding screen.
package spec

// Spec is the parsed onboarding specification.
type Spec struct {
	Name      string   `yaml:"app"`
	BundleID  string   `yaml:"bundle_id"`
	Platforms []string `yaml:"platforms"`
	Theme     Theme
	Screens   []Screen
}

// Theme holds the color palette applied across generated screens.
type Theme struct {
	Primary    string
	Background string
	Accent     string
	Text       string
}

// Screen describes one step of the onboarding flow.
type Screen struct {
	ID        string
	Type      string // info, permission, form, paywall
	Title     string
	Subtitle  string
	Image     string
	CTA       string
	Skippable bool
}

// ValidationError reports one schema problem found in a spec.
type ValidationError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// Screen types the generator knows how to render.
var knownScreenTypes = map[string]bool{
	"info":       true,
	"permission": true,
	"form":       true,
	"paywall":    true,
}
