package main

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	acoustics "github.com/tphakala/go-room-acoustics"
)

const (
	defaultRoom       = "4x3x2.5"
	defaultAbsorption = 0.15
)

func vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

// parseRoomDims parses a WxDxH dimension string into a uniform-absorption
// shoebox room, returning the dimensions as well for grid construction.
func parseRoomDims(spec string, absorption float64) (*acoustics.Room, [3]float64, error) {
	var dims [3]float64
	parts := strings.Split(spec, "x")
	if len(parts) != 3 {
		return nil, dims, fmt.Errorf("bad -room %q: want WxDxH, e.g. 4x3x2.5", spec)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v <= 0 {
			return nil, dims, fmt.Errorf("bad -room %q: dimension %q is not a positive number", spec, p)
		}
		dims[i] = v
	}
	room, err := acoustics.NewShoeboxRoom(dims[0], dims[1], dims[2], absorption)
	return room, dims, err
}

func parseVec(spec string) (r3.Vec, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("%q: want x,y,z", spec)
	}
	var coords [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("%q: coordinate %q is not a number", spec, p)
		}
		coords[i] = v
	}
	return vec(coords[0], coords[1], coords[2]), nil
}

func parseRes(spec string) (nx, ny int, err error) {
	parts := strings.Split(spec, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad -res %q: want WxH, e.g. 200x150", spec)
	}
	nx, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err == nil {
		ny, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	if err != nil || nx < 1 || ny < 1 {
		return 0, 0, fmt.Errorf("bad -res %q: want positive WxH", spec)
	}
	return nx, ny, nil
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
