//go:build !libpostal

package main

import (
	"errors"

	"github.com/eviction-cares/internal/normalize"
)

// ErrLibpostalUnavailable is returned when libpostal is requested from a
// binary built without it
var ErrLibpostalUnavailable = errors.New("ADDRESS_PARSER=libpostal requires a linker built with -tags libpostal")

// addressParser returns the parser named by ADDRESS_PARSER; nil selects the
// rule parser
func addressParser(name string) (normalize.Parser, error) {
	if name == "libpostal" {
		return nil, ErrLibpostalUnavailable
	}
	return nil, nil
}
