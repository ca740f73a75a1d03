package styles

import "testing"

func TestThemeByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"default", "default"},
		{"mono", "mono"},
		{"unknown", "default"},
		{"", "default"},
	}

	for _, tt := range tests {
		if got := ThemeByName(tt.in).Name(); got != tt.want {
			t.Errorf("ThemeByName(%q).Name() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThemeStylesRender(t *testing.T) {
	for _, theme := range []*Theme{DefaultTheme(), MonoTheme()} {
		if theme.Primary().Render("x") == "" {
			t.Errorf("%s theme primary style produced empty output", theme.Name())
		}
		if theme.Error().Render("x") == "" {
			t.Errorf("%s theme error style produced empty output", theme.Name())
		}
	}
}
