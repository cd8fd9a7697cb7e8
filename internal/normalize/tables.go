package normalize

import (
	"strings"
)

// Both maps are built once at package init and never written afterwards.
var (
	suffixTable      = buildSuffixTable()
	directionalTable = map[string]string{
		"north":     "n",
		"n":         "n",
		"east":      "e",
		"e":         "e",
		"south":     "s",
		"s":         "s",
		"west":      "w",
		"w":         "w",
		"northeast": "ne",
		"ne":        "ne",
		"southeast": "se",
		"se":        "se",
		"southwest": "sw",
		"sw":        "sw",
		"northwest": "nw",
		"nw":        "nw",
	}
)

// buildSuffixTable maps every primary name and recognised spelling to the
// lowercased USPS standard abbreviation. Standard abbreviations are applied
// last so each one maps to itself even where another row lists it as a
// common spelling (MDW appears under MEADOWS).
func buildSuffixTable() map[string]string {
	table := make(map[string]string, len(uspsSuffixes)*4)
	for _, s := range uspsSuffixes {
		standard := strings.ToLower(s.standard)
		table[strings.ToLower(s.primary)] = standard
		for _, c := range s.common {
			table[strings.ToLower(c)] = standard
		}
	}
	for _, s := range uspsSuffixes {
		standard := strings.ToLower(s.standard)
		table[standard] = standard
	}
	return table
}

// SuffixTable returns a copy of the street-type mapping
func SuffixTable() map[string]string {
	return copyTable(suffixTable)
}

// DirectionalTable returns a copy of the directional mapping
func DirectionalTable() map[string]string {
	return copyTable(directionalTable)
}

func copyTable(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// alphaLower strips every non-letter and lowercases what is left
func alphaLower(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalDirectional maps a directional token through the directional table.
// Unknown values pass through stripped and lowercased.
func CanonicalDirectional(token string) string {
	stripped := alphaLower(token)
	if v, ok := directionalTable[stripped]; ok {
		return v
	}
	return stripped
}

// CanonicalStreetType maps a street-type token through the USPS suffix table.
// Unknown values pass through stripped and lowercased.
func CanonicalStreetType(token string) string {
	stripped := alphaLower(token)
	if v, ok := suffixTable[stripped]; ok {
		return v
	}
	return stripped
}

func isDirectional(token string) bool {
	_, ok := directionalTable[alphaLower(token)]
	return ok
}

func isStreetType(token string) bool {
	stripped := alphaLower(token)
	if stripped == "" {
		return false
	}
	_, ok := suffixTable[stripped]
	return ok
}

// streetEnders are the suffixes that close a street name far more often than
// they start a city name.
var streetEnders = map[string]bool{
	"st": true, "ave": true, "rd": true, "dr": true, "blvd": true, "ln": true,
	"ct": true, "cir": true, "pkwy": true, "hwy": true, "trl": true, "ter": true,
	"way": true, "pl": true,
}

func isStreetEnder(token string) bool {
	return streetEnders[CanonicalStreetType(token)]
}

// occupancyMarkers start secondary-unit information, which is never part of
// the standardized address.
var occupancyMarkers = map[string]bool{
	"apt": true, "apartment": true, "unit": true, "ste": true, "suite": true,
	"rm": true, "room": true, "bldg": true, "building": true, "fl": true,
	"floor": true, "lot": true, "trlr": true, "trailer": true, "spc": true,
	"space": true, "dept": true, "ofc": true, "office": true, "ph": true,
	"penthouse": true, "bsmt": true, "basement": true,
}

var preModifiers = map[string]bool{
	"old": true, "business": true, "bus": true, "alt": true, "alternate": true,
}

var stateCodes = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true, "co": true,
	"ct": true, "de": true, "fl": true, "ga": true, "hi": true, "id": true,
	"il": true, "in": true, "ia": true, "ks": true, "ky": true, "la": true,
	"me": true, "md": true, "ma": true, "mi": true, "mn": true, "ms": true,
	"mo": true, "mt": true, "ne": true, "nv": true, "nh": true, "nj": true,
	"nm": true, "ny": true, "nc": true, "nd": true, "oh": true, "ok": true,
	"or": true, "pa": true, "ri": true, "sc": true, "sd": true, "tn": true,
	"tx": true, "ut": true, "vt": true, "va": true, "wa": true, "wv": true,
	"wi": true, "wy": true, "dc": true, "pr": true,
}
