package normalize

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Label names an address component. The names follow the usaddress tag set so
// parser backends can be swapped without touching the standardizer.
type Label string

const (
	AddressNumber             Label = "AddressNumber"
	AddressNumberPrefix       Label = "AddressNumberPrefix"
	AddressNumberSuffix       Label = "AddressNumberSuffix"
	StreetNamePreModifier     Label = "StreetNamePreModifier"
	StreetNamePreDirectional  Label = "StreetNamePreDirectional"
	StreetNamePreType         Label = "StreetNamePreType"
	StreetName                Label = "StreetName"
	StreetNamePostType        Label = "StreetNamePostType"
	StreetNamePostDirectional Label = "StreetNamePostDirectional"
	StreetNamePostModifier    Label = "StreetNamePostModifier"
	OccupancyType             Label = "OccupancyType"
	OccupancyIdentifier       Label = "OccupancyIdentifier"
	BuildingName              Label = "BuildingName"
	PlaceName                 Label = "PlaceName"
	StateName                 Label = "StateName"
	ZipCode                   Label = "ZipCode"
	USPSBoxType               Label = "USPSBoxType"
	USPSBoxID                 Label = "USPSBoxID"
)

// Component is one labelled token of a parsed address
type Component struct {
	Label Label
	Value string
}

// Parser splits free text into labelled address components
type Parser interface {
	Parse(text string) ([]Component, error)
}

// ErrUnparseable is returned for input with no letters or digits
var ErrUnparseable = errors.New("address could not be parsed")

var (
	reHouseNumber = regexp.MustCompile(`(?i)^\d+(-\d+)?[a-z]?$`)
	reFraction    = regexp.MustCompile(`^\d+/\d+$`)
	reZip         = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// RuleParser is a deterministic, dictionary-driven US address tagger
type RuleParser struct{}

// NewRuleParser creates the default parser
func NewRuleParser() *RuleParser {
	return &RuleParser{}
}

// Parse tags the components of a single-line US address
func (p *RuleParser) Parse(text string) ([]Component, error) {
	clean := fold(text)
	if !hasAlnum(clean) {
		return nil, ErrUnparseable
	}

	var segments [][]string
	for _, seg := range strings.Split(clean, ",") {
		if tokens := tokenize(seg); len(tokens) > 0 {
			segments = append(segments, tokens)
		}
	}

	var out []Component
	streetDone := false
	for _, seg := range segments {
		switch {
		case isOccupancyStart(seg[0]):
			out = append(out, tagOccupancy(seg)...)
		case !streetDone:
			out = append(out, tagStreetSegment(seg)...)
			streetDone = true
		default:
			out = append(out, tagPlace(seg)...)
		}
	}
	return out, nil
}

// tagStreetSegment handles the segment holding the house number and street,
// plus anything that trails it when the input has no commas.
func tagStreetSegment(tokens []string) []Component {
	if len(tokens) >= 2 && isPOBox(tokens) {
		return tagPOBox(tokens)
	}

	var out []Component
	i := 0
	if reHouseNumber.MatchString(tokens[0]) && len(tokens) > 1 {
		out = append(out, Component{AddressNumber, tokens[0]})
		i = 1
		if i < len(tokens)-1 && reFraction.MatchString(tokens[i]) {
			out = append(out, Component{AddressNumberSuffix, tokens[i]})
			i++
		}
	}

	rest := tokens[i:]

	// Secondary unit information ends the street.
	end := len(rest)
	for k := 1; k < len(rest); k++ {
		if isOccupancyStart(rest[k]) {
			end = k
			break
		}
	}
	street, tail := rest[:end], rest[end:]

	// Without commas a trailing state or zip means the city is inline too.
	var place []Component
	street, place = splitTrailingPlace(street)

	out = append(out, TagStreet(street)...)
	if len(tail) > 0 {
		out = append(out, tagOccupancy(tail)...)
	}
	return append(out, place...)
}

// splitTrailingPlace peels "CITY ST 12345" off the end of a street segment.
// It only fires when a trailing zip or state gives evidence of a place.
func splitTrailingPlace(tokens []string) ([]string, []Component) {
	j := len(tokens)
	var trailer []Component
	if j > 1 && reZip.MatchString(tokens[j-1]) {
		trailer = append([]Component{{ZipCode, tokens[j-1]}}, trailer...)
		j--
	}
	// NE is both Nebraska and northeast; only a following zip settles it.
	if j > 2 && isStateCode(tokens[j-1]) && (len(trailer) > 0 || !isDirectional(tokens[j-1])) {
		trailer = append([]Component{{StateName, tokens[j-1]}}, trailer...)
		j--
	}
	if len(trailer) == 0 {
		return tokens, nil
	}

	// The street ends at the first type word after the name, unless another
	// street ending follows it ("Old Mountain Rd"). Cities such as College
	// Park or Stone Mountain end in type words of their own.
	cut := j
	for k := 1; k < j; k++ {
		if !isStreetType(tokens[k]) || (k+1 < j && isStreetEnder(tokens[k+1])) {
			continue
		}
		cut = k + 1
		// "St NW Atlanta" carries a post-directional, "St East Point" does not.
		if cut < j && isDirectional(tokens[cut]) && (cut+1 == j || !isStreetType(tokens[j-1])) {
			cut++
		}
		break
	}

	var place []Component
	for _, tok := range tokens[cut:j] {
		place = append(place, Component{PlaceName, tok})
	}
	return tokens[:cut], append(place, trailer...)
}

// TagStreet labels the tokens of a street name (no house number, no unit).
func TagStreet(tokens []string) []Component {
	if len(tokens) == 0 {
		return nil
	}

	labels := make([]Label, len(tokens))
	i, j := 0, len(tokens)

	if j-i > 2 && preModifiers[strings.ToLower(tokens[i])] {
		labels[i] = StreetNamePreModifier
		i++
	}

	if j-i >= 2 && isDirectional(tokens[j-1]) {
		labels[j-1] = StreetNamePostDirectional
		j--
	}

	// "N Main" is a pre-directional, "North St" and "North Ave NW" are
	// streets called North.
	if j-i >= 2 && isDirectional(tokens[i]) && !(j-i == 2 && isStreetType(tokens[i+1])) {
		labels[i] = StreetNamePreDirectional
		i++
	}

	if j-i >= 2 && isStreetType(tokens[j-1]) {
		labels[j-1] = StreetNamePostType
		j--
	} else if j-i >= 2 && isStreetType(tokens[i]) {
		labels[i] = StreetNamePreType
		i++
	}

	for k := i; k < j; k++ {
		labels[k] = StreetName
	}

	out := make([]Component, len(tokens))
	for k, tok := range tokens {
		out[k] = Component{labels[k], tok}
	}
	return out
}

func tagOccupancy(tokens []string) []Component {
	var out []Component
	k := 0
	first := tokens[0]
	switch {
	case strings.HasPrefix(first, "#") && len(first) > 1:
		out = append(out, Component{OccupancyType, "#"}, Component{OccupancyIdentifier, first[1:]})
		k = 1
	default:
		out = append(out, Component{OccupancyType, first})
		k = 1
		if k < len(tokens) {
			out = append(out, Component{OccupancyIdentifier, tokens[k]})
			k++
		}
	}
	if k < len(tokens) {
		out = append(out, tagPlace(tokens[k:])...)
	}
	return out
}

func tagPlace(tokens []string) []Component {
	out := make([]Component, 0, len(tokens))
	for idx, tok := range tokens {
		last := idx == len(tokens)-1
		nextIsZip := idx+1 < len(tokens) && reZip.MatchString(tokens[idx+1])
		switch {
		case reZip.MatchString(tok):
			out = append(out, Component{ZipCode, tok})
		case isStateCode(tok) && (last || nextIsZip):
			out = append(out, Component{StateName, tok})
		default:
			out = append(out, Component{PlaceName, tok})
		}
	}
	return out
}

func isStateCode(tok string) bool {
	return len(tok) == 2 && stateCodes[strings.ToLower(tok)]
}

func isPOBox(tokens []string) bool {
	first := alphaLower(tokens[0])
	if first == "pobox" {
		return true
	}
	return (first == "po" || first == "post") && alphaLower(tokens[1]) == "box"
}

func tagPOBox(tokens []string) []Component {
	var out []Component
	k := 1
	boxType := tokens[0]
	if alphaLower(tokens[0]) != "pobox" {
		boxType = tokens[0] + " " + tokens[1]
		k = 2
	}
	out = append(out, Component{USPSBoxType, boxType})
	if k < len(tokens) {
		out = append(out, Component{USPSBoxID, tokens[k]})
		k++
	}
	if k < len(tokens) {
		out = append(out, tagPlace(tokens[k:])...)
	}
	return out
}

func isOccupancyStart(tok string) bool {
	if strings.HasPrefix(tok, "#") {
		return true
	}
	return occupancyMarkers[alphaLower(tok)] && alphaLower(tok) == strings.ToLower(strings.TrimSuffix(tok, "."))
}

// ExtractZip returns the zip code found in a city/state/zip fragment, or ""
func ExtractZip(text string) string {
	for _, seg := range strings.Split(fold(text), ",") {
		for _, c := range tagPlace(tokenize(seg)) {
			if c.Label == ZipCode {
				return c.Value
			}
		}
	}
	return ""
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ReplaceAll(s, ";", " "))
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "\"'()")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// fold strips diacritics so "Peñasco" and "Penasco" tag and compare alike.
// A fresh chain per call; transform chains keep internal state.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
