package bot

import "testing"

func TestAnalyzeTriggers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Category
	}{
		{"accusation keyword", "I'm sure seat three is MAFIA", []Category{CategoryAccusation}},
		{"defense keyword", "I'm innocent, honest", []Category{CategoryDefense}},
		{"sheriff keyword", "did anyone get checked last night?", []Category{CategorySheriff}},
		{"strategy keyword", "let's compare the votes", []Category{CategoryStrategy}},
		{"multiple categories", "I suspect you, prove your role", []Category{CategoryAccusation, CategoryDefense, CategorySheriff}},
		{"no keywords", "good morning everyone", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AnalyzeTriggers(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("AnalyzeTriggers(%q) = %v, want %v", tc.text, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("AnalyzeTriggers(%q) = %v, want %v", tc.text, got, tc.want)
				}
			}
		})
	}
}
