package search

import "testing"

func TestFoldStripsDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cà phê", "ca phe"},
		{"Trà đào", "tra đao"}, // đ n'est pas une marque combinante, il reste
		{"  Sinh Tố Bơ  ", "sinh to bo"},
		{"CRÈME BRÛLÉE", "creme brulee"},
		{"ascii only", "ascii only"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, attendu %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		keyword   string
		candidate string
		want      bool
	}{
		{"accents dans le candidat", "ca phe", "Cà phê", true},
		{"accents dans le mot-cle", "Cà Phê", "ca phe sua", true},
		{"casse differente", "TRA", "Trà sữa", true},
		{"sous-chaine au milieu", "phe", "Cà phê đen", true},
		{"pas de correspondance", "matcha", "Cà phê", false},
		{"mot-cle vide matche tout", "", "Bạc xỉu", true},
		{"espaces autour du mot-cle", "  bơ ", "Sinh tố bơ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.keyword, tt.candidate); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, attendu %v", tt.keyword, tt.candidate, got, tt.want)
			}
		})
	}
}
