package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Recherche insensible à la casse et aux diacritiques, utilisée par les
// champs de recherche boissons / catégories / toppings. Pas de ranking,
// pas de fuzzy : simple test de sous-chaîne sur les formes normalisées.

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // retire les marques combinantes
	norm.NFC,
)

// Fold normalise une chaîne : décomposition NFD, suppression des
// diacritiques, minuscules, trim. "Cà Phê Sữa" devient "ca phe sua".
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Si la transformation échoue on retombe sur la chaîne brute,
		// la recherche reste juste sensible aux accents.
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// Matches teste si keyword est contenu dans candidate, sans tenir compte
// de la casse ni des accents. Un mot-clé vide matche tout.
func Matches(keyword, candidate string) bool {
	return strings.Contains(Fold(candidate), Fold(keyword))
}
