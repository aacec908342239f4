package catalog

import "testing"

func TestAvailableHits(t *testing.T) {
	tests := []struct {
		name    string
		results []map[string]interface{}
		want    []string
	}{
		{
			"les boissons masquées sont filtrées",
			[]map[string]interface{}{
				{"name": "Cà phê sữa", "is_available": true},
				{"name": "Trà đào", "is_available": false},
				{"name": "Bạc xỉu", "is_available": true},
			},
			[]string{"Cà phê sữa", "Bạc xỉu"},
		},
		{
			"champ absent = masqué",
			[]map[string]interface{}{
				{"name": "Sinh tố bơ"},
			},
			[]string{},
		},
		{
			"champ au mauvais type = masqué",
			[]map[string]interface{}{
				{"name": "Matcha latte", "is_available": "true"},
			},
			[]string{},
		},
		{
			"aucun résultat",
			nil,
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availableHits(tt.results)
			if len(got) != len(tt.want) {
				t.Fatalf("availableHits garde %d résultats, attendu %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r["name"] != tt.want[i] {
					t.Errorf("résultat %d = %v, attendu %s", i, r["name"], tt.want[i])
				}
			}
		})
	}
}
