package spec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseAndValidate parses the markdown spec source and runs schema
// validation. The returned spec is non-nil whenever the source was
// structurally parseable, even if validation errors are present, so an
// AI repair pass has something to work from.
func ParseAndValidate(source string) (*Spec, []ValidationError) {
	s, errs := parse(source)
	if s == nil {
		return nil, errs
	}
	errs = append(errs, validate(s)...)
	return s, errs
}

func parse(source string) (*Spec, []ValidationError) {
	s := &Spec{}
	body := source

	// Optional YAML front-matter block.
	if strings.HasPrefix(source, "---\n") {
		rest := source[len("---\n"):]
		end := strings.Index(rest, "\n---")
		if end < 0 {
			return nil, []ValidationError{{
				Path:    []string{"front_matter"},
				Message: "front-matter block is not terminated with ---",
				Code:    "invalid_front_matter",
			}}
		}
		if err := yaml.Unmarshal([]byte(rest[:end]), s); err != nil {
			return nil, []ValidationError{{
				Path:    []string{"front_matter"},
				Message: fmt.Sprintf("invalid front-matter YAML: %v", err),
				Code:    "invalid_front_matter",
			}}
		}
		body = rest[end+len("\n---"):]
	}

	var errs []ValidationError
	var current *Screen
	inTheme := false

	flush := func() {
		if current != nil {
			s.Screens = append(s.Screens, *current)
			current = nil
		}
	}

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, "## Screen:"):
			flush()
			inTheme = false
			id := strings.TrimSpace(strings.TrimPrefix(line, "## Screen:"))
			if id == "" {
				errs = append(errs, ValidationError{
					Path:    []string{"screens"},
					Message: "screen section has no id",
					Code:    "missing_screen_id",
				})
				continue
			}
			current = &Screen{ID: id, Type: "info"}

		case line == "## Theme":
			flush()
			inTheme = true

		case strings.HasPrefix(line, "# "):
			if s.Name == "" {
				s.Name = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			}

		case strings.HasPrefix(line, "- "):
			key, value, ok := splitField(strings.TrimPrefix(line, "- "))
			if !ok {
				continue
			}
			switch {
			case inTheme:
				applyThemeField(&s.Theme, key, value)
			case current != nil:
				applyScreenField(current, key, value)
			}
		}
	}
	flush()

	return s, errs
}

func splitField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.Trim(strings.TrimSpace(line[idx+1:]), `"`)
	return key, value, key != ""
}

func applyThemeField(t *Theme, key, value string) {
	switch key {
	case "primary":
		t.Primary = value
	case "background":
		t.Background = value
	case "accent":
		t.Accent = value
	case "text":
		t.Text = value
	}
}

func applyScreenField(sc *Screen, key, value string) {
	switch key {
	case "type":
		sc.Type = value
	case "title":
		sc.Title = value
	case "subtitle":
		sc.Subtitle = value
	case "image":
		sc.Image = value
	case "cta":
		sc.CTA = value
	case "skippable":
		sc.Skippable = value == "true" || value == "yes"
	}
}
