// Package render turns a validated onboarding spec into the generated
// project files: one React Native screen per spec screen plus the
// navigator, theme, storage and project scaffolding around them.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/forgeapps/onboardgen/pkg/spec"
)

// Result is the rendered file set plus summary counts.
type Result struct {
	Files   map[string]string
	Summary Summary
}

// Summary describes what was generated.
type Summary struct {
	AppName     string
	ScreenCount int
	FileCount   int
}

type templateData struct {
	Name    string
	Slug    string
	Theme   spec.Theme
	Screens []screenRef
}

type screenRef struct {
	ID        string
	Component string
}

type screenData struct {
	Screen        spec.Screen
	Component     string
	NextComponent string
	IsLast        bool
	CTAText       string
}

var templates = map[string]*template.Template{
	"app":       template.Must(template.New("app").Parse(appTemplate)),
	"navigator": template.Must(template.New("navigator").Parse(navigatorTemplate)),
	"screen":    template.Must(template.New("screen").Parse(screenTemplate)),
	"theme":     template.Must(template.New("theme").Parse(themeTemplate)),
	"storage":   template.Must(template.New("storage").Parse(storageTemplate)),
	"package":   template.Must(template.New("package").Parse(packageJSONTemplate)),
}

// Render generates the full file set for a spec.
func Render(s *spec.Spec) (*Result, error) {
	if s == nil || len(s.Screens) == 0 {
		return nil, fmt.Errorf("cannot render a spec with no screens")
	}

	data := templateData{
		Name:  s.Name,
		Slug:  Slugify(s.Name),
		Theme: themeWithDefaults(s.Theme),
	}
	for _, sc := range s.Screens {
		data.Screens = append(data.Screens, screenRef{ID: sc.ID, Component: ComponentName(sc.ID)})
	}

	files := map[string]string{}
	render := func(path, name string, value interface{}) error {
		var buf bytes.Buffer
		if err := templates[name].Execute(&buf, value); err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
		files[path] = buf.String()
		return nil
	}

	if err := render("App.tsx", "app", data); err != nil {
		return nil, err
	}
	if err := render("src/onboarding/OnboardingNavigator.tsx", "navigator", data); err != nil {
		return nil, err
	}
	if err := render("src/onboarding/theme.ts", "theme", data); err != nil {
		return nil, err
	}
	if err := render("src/onboarding/storage.ts", "storage", data); err != nil {
		return nil, err
	}
	if err := render("package.json", "package", data); err != nil {
		return nil, err
	}

	for i, sc := range s.Screens {
		sd := screenData{
			Screen:    sc,
			Component: ComponentName(sc.ID),
			IsLast:    i == len(s.Screens)-1,
			CTAText:   sc.CTA,
		}
		if !sd.IsLast {
			sd.NextComponent = ComponentName(s.Screens[i+1].ID)
		}
		if sd.CTAText == "" {
			sd.CTAText = "Continue"
		}
		path := fmt.Sprintf("src/onboarding/screens/%s.tsx", sd.Component)
		if err := render(path, "screen", sd); err != nil {
			return nil, err
		}
	}

	return &Result{
		Files: files,
		Summary: Summary{
			AppName:     s.Name,
			ScreenCount: len(s.Screens),
			FileCount:   len(files),
		},
	}, nil
}

// ComponentName converts a screen id like "account-setup" to
// "AccountSetupScreen".
func ComponentName(id string) string {
	var b strings.Builder
	upper := true
	for _, r := range id {
		if r == '-' || r == '_' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String() + "Screen"
}

// Slugify lower-cases an app name into a package-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "onboarding-app"
	}
	return slug
}

func themeWithDefaults(t spec.Theme) spec.Theme {
	if t.Primary == "" {
		t.Primary = "#4F46E5"
	}
	if t.Background == "" {
		t.Background = "#FFFFFF"
	}
	if t.Accent == "" {
		t.Accent = t.Primary
	}
	if t.Text == "" {
		t.Text = "#111827"
	}
	return t
}
