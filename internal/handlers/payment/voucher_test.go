package payment

import "testing"

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"welcome10", "WELCOME10"},
		{"  WELCOME10  ", "WELCOME10"},
		{" tet2026\n", "TET2026"},
		{"Mix3dCase", "MIX3DCASE"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeCode(tt.in); got != tt.want {
			t.Errorf("normalizeCode(%q) = %q, attendu %q", tt.in, got, tt.want)
		}
	}
}
