package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "Blinding Lights", "Blinding Lights"},
		{"parenthesized segment", "Song (Live)", "Song"},
		{"bracketed segment", "Song [Remastered]", "Song"},
		{"both segments", "Song (Live) [Remastered]", "Song"},
		{"special characters", "Song!!! ?feat.* someone", "Song feat someone"},
		{"keeps hyphens", "Artist - Title", "Artist - Title"},
		{"collapses whitespace", "Artist   -\t Title", "Artist - Title"},
		{"trims", "  Song  ", "Song"},
		{"empty", "", ""},
		{"only decoration", "(Official Video) [HD]", ""},
		{"unicode letters survive", "Beyoncé - Déjà Vu", "Beyoncé - Déjà Vu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Song (Live) [Remastered]",
		"The Weeknd - Blinding Lights (Official Audio)",
		"a!b@c#d - e$f%g",
		"",
		"   spaced   out   ",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSplitParts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"two parts", "Artist - Title", []string{"Artist", "Title"}},
		{"no hyphen", "Just A Title", []string{"Just A Title"}},
		{"empty parts dropped", "Artist - - Title", []string{"Artist", "Title"}},
		{"leading hyphen", "- Title", []string{"Title"}},
		{"empty string", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitParts(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitParts(%q) = %v, want %v", tt.input, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitParts(%q)[%d] = %q, want %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}
