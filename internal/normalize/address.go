package normalize

import (
	"strings"
	"unicode/utf8"
)

// MaxKeyLength is the storage limit on standardized addresses
const MaxKeyLength = 255

// relevant components make up the join key. Units, occupancy, place and zip
// are intentionally left out.
var relevant = map[Label]bool{
	AddressNumber:             true,
	AddressNumberPrefix:       true,
	AddressNumberSuffix:       true,
	StreetName:                true,
	StreetNamePreDirectional:  true,
	StreetNamePreModifier:     true,
	StreetNamePreType:         true,
	StreetNamePostDirectional: true,
	StreetNamePostModifier:    true,
	StreetNamePostType:        true,
}

// Standardizer turns free-text addresses into the shared exact-match key
type Standardizer struct {
	parser Parser
}

// NewStandardizer creates a standardizer; a nil parser selects RuleParser
func NewStandardizer(parser Parser) *Standardizer {
	if parser == nil {
		parser = NewRuleParser()
	}
	return &Standardizer{parser: parser}
}

// Standardize returns the canonical token sequence for text. Parse failures
// fall back to the lowercased raw text.
func (s *Standardizer) Standardize(text string) string {
	return s.standardize(text, text)
}

// StandardizeAddressCity standardizes an address together with its city, the
// form used for both eviction defendants and registry properties. On failure
// the lowercased address alone is returned.
func (s *Standardizer) StandardizeAddressCity(address, city string) string {
	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)
	full := address
	if city != "" {
		full = address + ", " + city
	}
	return s.standardize(full, address)
}

func (s *Standardizer) standardize(text, fallback string) string {
	components, err := s.parser.Parse(text)
	if err != nil {
		return lowerFields(fallback)
	}

	parts := make([]string, 0, len(components))
	for _, c := range components {
		if !relevant[c.Label] {
			continue
		}
		var part string
		switch c.Label {
		case StreetNamePreDirectional, StreetNamePostDirectional:
			part = CanonicalDirectional(c.Value)
		case StreetNamePreType, StreetNamePostType:
			part = CanonicalStreetType(c.Value)
		default:
			part = strings.ToLower(c.Value)
		}
		if part != "" {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return lowerFields(fallback)
	}
	return strings.Join(parts, " ")
}

func lowerFields(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TruncateKey cuts a standardized address to the storage limit without
// splitting a multi-byte character.
func TruncateKey(s string) string {
	if len(s) <= MaxKeyLength {
		return s
	}
	cut := MaxKeyLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}
