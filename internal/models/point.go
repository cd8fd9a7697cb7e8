package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a WGS84 longitude/latitude pair
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ParseLonLat converts the geocoder's "lon,lat" text into a Point
func ParseLonLat(s string) (*Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid location %q: expected lon,lat", s)
	}
	return newPoint(parts[0], parts[1], s)
}

// ParseWKT converts "POINT(lon lat)" as produced by ST_AsText into a Point
func ParseWKT(s string) (*Point, error) {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToUpper(t), "POINT(") || !strings.HasSuffix(t, ")") {
		return nil, fmt.Errorf("invalid WKT point %q", s)
	}
	fields := strings.Fields(t[len("POINT(") : len(t)-1])
	if len(fields) != 2 {
		return nil, fmt.Errorf("invalid WKT point %q", s)
	}
	return newPoint(fields[0], fields[1], s)
}

func newPoint(lonText, latText, raw string) (*Point, error) {
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in %q: %w", raw, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in %q: %w", raw, err)
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("coordinates out of range in %q", raw)
	}
	return &Point{Lon: lon, Lat: lat}, nil
}

// WKT renders the point as well-known text
func (p Point) WKT() string {
	return fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(p.Lon, 'f', -1, 64),
		strconv.FormatFloat(p.Lat, 'f', -1, 64))
}
