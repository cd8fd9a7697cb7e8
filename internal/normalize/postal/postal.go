//go:build libpostal

// Package postal provides a libpostal-backed address parser. It needs the
// libpostal C library and its data files at build and run time, so it is
// only compiled with the libpostal build tag (go build -tags libpostal).
package postal

import (
	"strings"

	postal "github.com/openvenues/gopostal/parser"

	"github.com/eviction-cares/internal/normalize"
)

// Parser adapts libpostal output to the usaddress-style labels the
// standardizer works with. libpostal returns the road as one string, so the
// road is re-tagged with the same street rules the default parser uses.
type Parser struct{}

// NewParser creates a libpostal-backed parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements normalize.Parser
func (p *Parser) Parse(text string) ([]normalize.Component, error) {
	if strings.TrimSpace(text) == "" {
		return nil, normalize.ErrUnparseable
	}

	parsed := postal.ParseAddress(text)
	if len(parsed) == 0 {
		return nil, normalize.ErrUnparseable
	}

	var out []normalize.Component
	for _, c := range parsed {
		switch c.Label {
		case "house_number":
			out = append(out, normalize.Component{Label: normalize.AddressNumber, Value: c.Value})
		case "road":
			out = append(out, normalize.TagStreet(strings.Fields(c.Value))...)
		case "unit", "level", "staircase", "entrance":
			out = append(out, normalize.Component{Label: normalize.OccupancyIdentifier, Value: c.Value})
		case "house":
			out = append(out, normalize.Component{Label: normalize.BuildingName, Value: c.Value})
		case "po_box":
			out = append(out, normalize.Component{Label: normalize.USPSBoxID, Value: c.Value})
		case "postcode":
			out = append(out, normalize.Component{Label: normalize.ZipCode, Value: c.Value})
		case "state":
			out = append(out, normalize.Component{Label: normalize.StateName, Value: c.Value})
		default:
			out = append(out, normalize.Component{Label: normalize.PlaceName, Value: c.Value})
		}
	}
	return out, nil
}
