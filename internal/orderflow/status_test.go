package orderflow

import "testing"

func TestNextSequence(t *testing.T) {
	// La seule séquence valide est 1 → 2 → 3 → 4.
	status := StatusNew
	want := []int{StatusDoing, StatusArrived, StatusComplete}

	for _, expected := range want {
		next, err := Next(status)
		if err != nil {
			t.Fatalf("Next(%s): erreur inattendue: %v", StatusName(status), err)
		}
		if next != expected {
			t.Fatalf("Next(%s) = %s, attendu %s", StatusName(status), StatusName(next), StatusName(expected))
		}
		status = next
	}

	if _, err := Next(StatusComplete); err == nil {
		t.Error("Next(complete) devrait échouer, l'état est terminal")
	}
}

func TestNextUnknownStatus(t *testing.T) {
	for _, s := range []int{0, 5, -1, 99} {
		if _, err := Next(s); err == nil {
			t.Errorf("Next(%d) devrait échouer pour un statut inconnu", s)
		}
	}
}

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		name    string
		from    int
		to      int
		allowed bool
	}{
		{"new vers doing", StatusNew, StatusDoing, true},
		{"doing vers arrived", StatusDoing, StatusArrived, true},
		{"arrived vers complete", StatusArrived, StatusComplete, true},
		{"saut de deux crans", StatusNew, StatusArrived, false},
		{"retour arriere", StatusDoing, StatusNew, false},
		{"depuis terminal", StatusComplete, StatusNew, false},
		{"sur place", StatusDoing, StatusDoing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAdvance(tt.from, tt.to)
			if tt.allowed && err != nil {
				t.Errorf("CanAdvance(%d, %d): erreur inattendue: %v", tt.from, tt.to, err)
			}
			if !tt.allowed && err == nil {
				t.Errorf("CanAdvance(%d, %d): transition interdite acceptée", tt.from, tt.to)
			}
		})
	}
}

func TestCanReceive(t *testing.T) {
	// L'action client n'est valide que depuis ARRIVED.
	for _, s := range []int{StatusNew, StatusDoing, StatusComplete} {
		if err := CanReceive(s); err == nil {
			t.Errorf("CanReceive(%s) devrait échouer", StatusName(s))
		}
	}
	if err := CanReceive(StatusArrived); err != nil {
		t.Errorf("CanReceive(arrived): erreur inattendue: %v", err)
	}
}

func TestCanRate(t *testing.T) {
	if err := CanRate(StatusComplete); err != nil {
		t.Errorf("CanRate(complete): erreur inattendue: %v", err)
	}
	for _, s := range []int{StatusNew, StatusDoing, StatusArrived} {
		if err := CanRate(s); err == nil {
			t.Errorf("CanRate(%s) devrait échouer", StatusName(s))
		}
	}
}

func TestStatusName(t *testing.T) {
	if StatusName(StatusArrived) != "arrived" {
		t.Errorf("StatusName(3) = %s", StatusName(StatusArrived))
	}
	if StatusName(42) != "unknown" {
		t.Errorf("StatusName(42) = %s", StatusName(42))
	}
}
