package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSpec = `---
app: Meridian
bundle_id: com.example.meridian
platforms: [ios, android]
---
# Meridian

## Theme
- primary: "#4F46E5"
- background: "#FFFFFF"

## Screen: welcome
- type: info
- title: Welcome to Meridian
- subtitle: Track your day in seconds
- image: welcome.png

## Screen: notifications
- type: permission
- title: Stay in the loop
- skippable: true

## Screen: signup
- type: form
- title: Create your account
- cta: Get Started
`

func TestParseAndValidate_ValidSpec(t *testing.T) {
	s, errs := ParseAndValidate(validSpec)
	require.NotNil(t, s)
	require.Empty(t, errs)

	assert.Equal(t, "Meridian", s.Name)
	assert.Equal(t, "com.example.meridian", s.BundleID)
	assert.Equal(t, []string{"ios", "android"}, s.Platforms)
	assert.Equal(t, "#4F46E5", s.Theme.Primary)

	require.Len(t, s.Screens, 3)
	assert.Equal(t, "welcome", s.Screens[0].ID)
	assert.Equal(t, "info", s.Screens[0].Type)
	assert.Equal(t, "Welcome to Meridian", s.Screens[0].Title)
	assert.True(t, s.Screens[1].Skippable)
	assert.Equal(t, "Get Started", s.Screens[2].CTA)
}

func TestParseAndValidate_NoFrontMatter(t *testing.T) {
	src := "# Plain\n\n## Screen: a\n- title: Hello\n- cta: Go\n"
	s, errs := ParseAndValidate(src)
	require.NotNil(t, s)
	assert.Empty(t, errs)
	assert.Equal(t, "Plain", s.Name)
	require.Len(t, s.Screens, 1)
	// type defaults to info when omitted
	assert.Equal(t, "info", s.Screens[0].Type)
}

func TestParseAndValidate_UnterminatedFrontMatter(t *testing.T) {
	s, errs := ParseAndValidate("---\napp: Broken\n# no terminator")
	assert.Nil(t, s)
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid_front_matter", errs[0].Code)
}

func TestParseAndValidate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantCode string
	}{
		{
			name:     "no screens",
			source:   "# Empty\n",
			wantCode: "no_screens",
		},
		{
			name:     "missing app name",
			source:   "## Screen: a\n- title: Hi\n- cta: Go\n",
			wantCode: "missing_name",
		},
		{
			name:     "duplicate screen ids",
			source:   "# App\n## Screen: a\n- title: One\n## Screen: a\n- title: Two\n- cta: Go\n",
			wantCode: "duplicate_screen",
		},
		{
			name:     "unknown screen type",
			source:   "# App\n## Screen: a\n- type: carousel\n- title: Hi\n- cta: Go\n",
			wantCode: "unknown_type",
		},
		{
			name:     "missing title",
			source:   "# App\n## Screen: a\n- cta: Go\n",
			wantCode: "missing_title",
		},
		{
			name:     "missing cta on last screen",
			source:   "# App\n## Screen: a\n- title: Hi\n",
			wantCode: "missing_cta",
		},
		{
			name:     "invalid hex color",
			source:   "# App\n## Theme\n- primary: blurple\n## Screen: a\n- title: Hi\n- cta: Go\n",
			wantCode: "invalid_color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, errs := ParseAndValidate(tt.source)
			require.NotNil(t, s)
			codes := make([]string, len(errs))
			for i, e := range errs {
				codes[i] = e.Code
			}
			assert.Contains(t, codes, tt.wantCode)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	out := FormatErrors([]ValidationError{
		{Path: []string{"theme", "primary"}, Message: "not a hex color", Code: "invalid_color"},
	})
	assert.Contains(t, out, "invalid_color")
	assert.Contains(t, out, "theme.primary")
}
