// Package region maps free-form Italian region names to canonical keys.
package region

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Key is the canonical lowercase alphanumeric identifier of a region.
type Key string

const (
	Piemonte            Key = "piemonte"
	ValleDAosta         Key = "valledaosta"
	Lombardia           Key = "lombardia"
	TrentinoAltoAdige   Key = "trentinoaltoadige"
	Veneto              Key = "veneto"
	FriuliVeneziaGiulia Key = "friuliveneziagiulia"
	Liguria             Key = "liguria"
	EmiliaRomagna       Key = "emiliaromagna"
	Toscana             Key = "toscana"
	Umbria              Key = "umbria"
	Marche              Key = "marche"
	Lazio               Key = "lazio"
	Abruzzo             Key = "abruzzo"
	Molise              Key = "molise"
	Campania            Key = "campania"
	Puglia              Key = "puglia"
	Basilicata          Key = "basilicata"
	Calabria            Key = "calabria"
	Sicilia             Key = "sicilia"
	Sardegna            Key = "sardegna"
)

// Rule maps any cleaned name containing one of Substrings to Key.
type Rule struct {
	Substrings []string
	Key        Key
}

// Match reports whether the cleaned name satisfies the rule.
func (r Rule) Match(cleaned string) bool {
	for _, s := range r.Substrings {
		if strings.Contains(cleaned, s) {
			return true
		}
	}
	return false
}

// Evaluated in order; the first match wins. The multi-name regions come first.
var rules = []Rule{
	{Substrings: []string{"trentino", "bolzano", "altoadige"}, Key: TrentinoAltoAdige},
	{Substrings: []string{"friuli"}, Key: FriuliVeneziaGiulia},
	{Substrings: []string{"valledaosta", "aoste"}, Key: ValleDAosta},
	{Substrings: []string{"emiliaromagna"}, Key: EmiliaRomagna},
	{Substrings: []string{"lombardia"}, Key: Lombardia},
	{Substrings: []string{"piemonte"}, Key: Piemonte},
	{Substrings: []string{"veneto"}, Key: Veneto},
	{Substrings: []string{"liguria"}, Key: Liguria},
	{Substrings: []string{"toscana"}, Key: Toscana},
	{Substrings: []string{"umbria"}, Key: Umbria},
	{Substrings: []string{"marche"}, Key: Marche},
	{Substrings: []string{"lazio"}, Key: Lazio},
	{Substrings: []string{"abruzzo"}, Key: Abruzzo},
	{Substrings: []string{"molise"}, Key: Molise},
	{Substrings: []string{"campania"}, Key: Campania},
	{Substrings: []string{"puglia"}, Key: Puglia},
	{Substrings: []string{"basilicata"}, Key: Basilicata},
	{Substrings: []string{"calabria"}, Key: Calabria},
	{Substrings: []string{"sicilia"}, Key: Sicilia},
	{Substrings: []string{"sardegna"}, Key: Sardegna},
}

// North to south, the order used in reports.
var keys = []Key{
	Piemonte, ValleDAosta, Lombardia, TrentinoAltoAdige, Veneto, FriuliVeneziaGiulia,
	Liguria, EmiliaRomagna, Toscana, Umbria, Marche, Lazio, Abruzzo, Molise,
	Campania, Puglia, Basilicata, Calabria, Sicilia, Sardegna,
}

var displayNames = map[Key]string{
	Piemonte:            "Piemonte",
	ValleDAosta:         "Valle d’Aosta",
	Lombardia:           "Lombardia",
	TrentinoAltoAdige:   "Trentino-Alto Adige",
	Veneto:              "Veneto",
	FriuliVeneziaGiulia: "Friuli-Venezia Giulia",
	Liguria:             "Liguria",
	EmiliaRomagna:       "Emilia-Romagna",
	Toscana:             "Toscana",
	Umbria:              "Umbria",
	Marche:              "Marche",
	Lazio:               "Lazio",
	Abruzzo:             "Abruzzo",
	Molise:              "Molise",
	Campania:            "Campania",
	Puglia:              "Puglia",
	Basilicata:          "Basilicata",
	Calabria:            "Calabria",
	Sicilia:             "Sicilia",
	Sardegna:            "Sardegna",
}

// Normalize returns the region key for name. Anything other than a string
// yields the empty key; an unrecognized string yields its cleaned form.
func Normalize(name any) Key {
	s, ok := name.(string)
	if !ok {
		return ""
	}
	return NormalizeString(s)
}

// NormalizeString is Normalize for callers that already hold a string.
func NormalizeString(name string) Key {
	cleaned := Clean(name)
	for _, r := range rules {
		if r.Match(cleaned) {
			return r.Key
		}
	}
	return Key(cleaned)
}

// Clean lowercases name and drops every rune that is not a letter or a number.
func Clean(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(norm.NFC.String(name)) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayName returns the Italian name of a canonical key.
func DisplayName(k Key) (string, bool) {
	name, ok := displayNames[k]
	return name, ok
}

// Known reports whether k is one of the 20 regions.
func Known(k Key) bool {
	_, ok := displayNames[k]
	return ok
}

// Keys returns the canonical keys, north to south.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Rules returns a copy of the ordered rule list.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
