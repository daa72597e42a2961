package mapping

import "testing"

func TestColor(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"plain color", "FENDER STRATOCASTER BLACK", "BLACK"},
		{"lowercase input", "gibson les paul cherry", "RED"},
		{"trade term sunburst", "EPIPHONE DOT SUNBURST", "BROWN"},
		{"trade term wine", "WASHBURN WINE FINISH", "RED"},
		{"grey spelling", "ROLAND GREY KEYBOARD", "GRAY"},
		{"first term wins", "TAYLOR BLUE AND GOLD", "BLUE"},
		{"whole word only", "REDWOOD DREADNOUGHT", FallbackColor},
		{"no finish term", "SHURE SM58 MICROPHONE", FallbackColor},
		{"empty description", "", FallbackColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Color(tt.description)
			if got != tt.want {
				t.Errorf("Color(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}
