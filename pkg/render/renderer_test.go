package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeapps/onboardgen/pkg/spec"
)

func testSpec() *spec.Spec {
	return &spec.Spec{
		Name: "Meridian",
		Theme: spec.Theme{
			Primary:    "#4F46E5",
			Background: "#FFFFFF",
		},
		Screens: []spec.Screen{
			{ID: "welcome", Type: "info", Title: "Welcome", Subtitle: "Glad you're here", Image: "welcome.png"},
			{ID: "account-setup", Type: "form", Title: "Create account", Skippable: true},
			{ID: "done", Type: "info", Title: "All set", CTA: "Start using Meridian"},
		},
	}
}

func TestRender(t *testing.T) {
	result, err := Render(testSpec())
	require.NoError(t, err)

	// Five fixed files plus one per screen.
	assert.Equal(t, 8, result.Summary.FileCount)
	assert.Equal(t, 3, result.Summary.ScreenCount)
	assert.Equal(t, "Meridian", result.Summary.AppName)

	for _, path := range []string{
		"App.tsx",
		"src/onboarding/OnboardingNavigator.tsx",
		"src/onboarding/theme.ts",
		"src/onboarding/storage.ts",
		"package.json",
		"src/onboarding/screens/WelcomeScreen.tsx",
		"src/onboarding/screens/AccountSetupScreen.tsx",
		"src/onboarding/screens/DoneScreen.tsx",
	} {
		assert.Contains(t, result.Files, path)
	}

	welcome := result.Files["src/onboarding/screens/WelcomeScreen.tsx"]
	assert.Contains(t, welcome, "Welcome")
	assert.Contains(t, welcome, "navigation.navigate('AccountSetupScreen')")
	assert.Contains(t, welcome, "welcome.png")

	setup := result.Files["src/onboarding/screens/AccountSetupScreen.tsx"]
	assert.Contains(t, setup, "Skip", "skippable screen renders a skip control")

	done := result.Files["src/onboarding/screens/DoneScreen.tsx"]
	assert.Contains(t, done, "markOnboardingComplete")
	assert.Contains(t, done, "Start using Meridian")

	theme := result.Files["src/onboarding/theme.ts"]
	assert.Contains(t, theme, "#4F46E5")

	pkg := result.Files["package.json"]
	assert.Contains(t, pkg, `"name": "meridian"`)
}

func TestRender_NoScreens(t *testing.T) {
	_, err := Render(&spec.Spec{Name: "Empty"})
	require.Error(t, err)
}

func TestComponentName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"welcome", "WelcomeScreen"},
		{"account-setup", "AccountSetupScreen"},
		{"push_permissions", "PushPermissionsScreen"},
	}
	for _, tt := range tests {
		if got := ComponentName(tt.id); got != tt.want {
			t.Errorf("ComponentName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-great-app", Slugify("My Great App"))
	assert.Equal(t, "onboarding-app", Slugify("!!!"))
}
