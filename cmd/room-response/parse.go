package main

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	acoustics "github.com/tphakala/go-room-acoustics"
)

// parseRoom parses a WxDxH dimension string and builds a shoebox room with
// uniform absorption on all six surfaces.
func parseRoom(spec string, absorption float64) (*acoustics.Room, error) {
	parts := strings.Split(spec, "x")
	if len(parts) != 3 {
		return nil, fmt.Errorf("bad -room %q: want WxDxH, e.g. 4x3x2.5", spec)
	}
	dims := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("bad -room %q: dimension %q is not a positive number", spec, p)
		}
		dims[i] = v
	}
	return acoustics.NewShoeboxRoom(dims[0], dims[1], dims[2], absorption)
}

// parseVec parses an x,y,z coordinate triple.
func parseVec(spec string) (r3.Vec, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("%q: want x,y,z", spec)
	}
	coords := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("%q: coordinate %q is not a number", spec, p)
		}
		coords[i] = v
	}
	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func parseDetail(s string) (acoustics.DetailPreset, error) {
	switch strings.ToLower(s) {
	case "quick":
		return acoustics.DetailQuick, nil
	case "low":
		return acoustics.DetailLow, nil
	case "medium":
		return acoustics.DetailMedium, nil
	case "high":
		return acoustics.DetailHigh, nil
	case "veryhigh", "very-high":
		return acoustics.DetailVeryHigh, nil
	default:
		return 0, fmt.Errorf("unknown detail %q: want quick, low, medium, high or veryhigh", s)
	}
}
