package spec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validate applies the schema rules to a parsed spec.
func validate(s *Spec) []ValidationError {
	var errs []ValidationError

	if s.Name == "" {
		errs = append(errs, ValidationError{
			Path:    []string{"app"},
			Message: "spec has no app name (add a top-level '# Name' heading or 'app:' front-matter key)",
			Code:    "missing_name",
		})
	}

	if len(s.Screens) == 0 {
		errs = append(errs, ValidationError{
			Path:    []string{"screens"},
			Message: "spec defines no screens (add at least one '## Screen:' section)",
			Code:    "no_screens",
		})
	}

	seen := map[string]bool{}
	for i, sc := range s.Screens {
		at := []string{"screens", strconv.Itoa(i)}

		if seen[sc.ID] {
			errs = append(errs, ValidationError{
				Path:    append(at, "id"),
				Message: fmt.Sprintf("duplicate screen id %q", sc.ID),
				Code:    "duplicate_screen",
			})
		}
		seen[sc.ID] = true

		if !knownScreenTypes[sc.Type] {
			errs = append(errs, ValidationError{
				Path:    append(at, "type"),
				Message: fmt.Sprintf("screen %q has unknown type %q (expected info, permission, form or paywall)", sc.ID, sc.Type),
				Code:    "unknown_type",
			})
		}

		if sc.Title == "" {
			errs = append(errs, ValidationError{
				Path:    append(at, "title"),
				Message: fmt.Sprintf("screen %q has no title", sc.ID),
				Code:    "missing_title",
			})
		}

		// The final screen must hand the user off somewhere.
		if i == len(s.Screens)-1 && sc.CTA == "" {
			errs = append(errs, ValidationError{
				Path:    append(at, "cta"),
				Message: fmt.Sprintf("last screen %q has no cta", sc.ID),
				Code:    "missing_cta",
			})
		}
	}

	for field, value := range map[string]string{
		"primary":    s.Theme.Primary,
		"background": s.Theme.Background,
		"accent":     s.Theme.Accent,
		"text":       s.Theme.Text,
	} {
		if value != "" && !hexColorRe.MatchString(value) {
			errs = append(errs, ValidationError{
				Path:    []string{"theme", field},
				Message: fmt.Sprintf("theme %s %q is not a hex color", field, value),
				Code:    "invalid_color",
			})
		}
	}

	return errs
}

// FormatErrors renders validation errors for terminal output, one per line.
func FormatErrors(errs []ValidationError) string {
	var b strings.Builder
	for _, e := range errs {
		fmt.Fprintf(&b, "  - [%s] %s: %s\n", e.Code, strings.Join(e.Path, "."), e.Message)
	}
	return b.String()
}
