//go:build libpostal

package main

import (
	"github.com/eviction-cares/internal/normalize"
	"github.com/eviction-cares/internal/normalize/postal"
)

// addressParser returns the parser named by ADDRESS_PARSER; nil selects the
// rule parser
func addressParser(name string) (normalize.Parser, error) {
	if name == "libpostal" {
		return postal.NewParser(), nil
	}
	return nil, nil
}
