// Command field-map renders the interference pattern of a rectangular room
// at one frequency as a grayscale PGM image. Each pixel is a listening
// position on a horizontal plane; bright pixels are loud, dark pixels sit in
// cancellation nulls, and black pixels fall outside the room.
//
// Usage:
//
//	field-map -room 4x3x2.5 -source 1,1,1.2 -freq 80 -o field-80hz.pgm
//	field-map -room 6x5x2.7 -source 0.5,0.5,1 -freq 45 -z 1.2 -res 240x200
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	acoustics "github.com/tphakala/go-room-acoustics"
)

const (
	defaultFreqHz = 80.0
	defaultEarZ   = 1.2
	defaultRes    = "200x150"
	defaultOut    = "field.pgm"

	// Tone mapping: mid-gray at the mean log magnitude, one gray step of
	// 0.2 per decade of pressure.
	midGray       = 0.5
	grayPerDecade = 0.2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	roomSpec := flag.String("room", defaultRoom, "Room dimensions WxDxH in meters")
	absorption := flag.Float64("absorption", defaultAbsorption, "Uniform surface absorption coefficient [0,1]")
	sourceSpec := flag.String("source", "", "Source position x,y,z in meters (required)")
	freq := flag.Float64("freq", defaultFreqHz, "Query frequency in Hz")
	earZ := flag.Float64("z", defaultEarZ, "Height of the listening plane in meters")
	res := flag.String("res", defaultRes, "Image resolution WxH in pixels")
	detail := flag.String("detail", "medium", "Search detail: quick, low, medium, high, veryhigh")
	out := flag.String("o", defaultOut, "Output PGM file")
	flag.Parse()

	if *sourceSpec == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -source x,y,z [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("source position is required")
	}

	room, dims, err := parseRoomDims(*roomSpec, *absorption)
	if err != nil {
		return err
	}
	source, err := parseVec(*sourceSpec)
	if err != nil {
		return fmt.Errorf("bad -source: %w", err)
	}
	nx, ny, err := parseRes(*res)
	if err != nil {
		return err
	}

	cfg := acoustics.DefaultConfig()
	cfg.Detail, err = parseDetail(*detail)
	if err != nil {
		return err
	}

	solver, err := acoustics.New(room, acoustics.Source{Position: source}, cfg)
	if err != nil {
		return err
	}

	grid := acoustics.GridSpec{
		Min: vec(0, 0, *earZ),
		Max: vec(dims[0], dims[1], *earZ),
		Nx:  nx, Ny: ny, Nz: 1,
	}

	log.Printf("computing %dx%d field at %g Hz over a %gx%g m plane at z=%g m",
		nx, ny, *freq, dims[0], dims[1], *earZ)

	field, err := solver.Field(context.Background(), grid, *freq)
	if err != nil {
		return err
	}

	if err := writePGM(*out, field); err != nil {
		return err
	}
	log.Printf("wrote %s", *out)
	return nil
}

// writePGM renders the field to a binary PGM (P5). Brightness is
// exposure-normalized: the mean of log10(magnitude) over evaluated cells
// maps to mid-gray, so rooms of very different loudness produce comparable
// images.
func writePGM(path string, field *acoustics.InterferenceField) error {
	exposure, evaluated := meanLogMagnitude(field)
	if evaluated == 0 {
		return fmt.Errorf("no grid cell lies inside the room")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	nx, ny := field.Grid.Nx, field.Grid.Ny
	fmt.Fprintf(w, "P5\n%d %d\n255\n", nx, ny)

	// PGM rows run top to bottom; grid rows run with increasing y.
	for j := ny - 1; j >= 0; j-- {
		for i := 0; i < nx; i++ {
			mag, ok := field.At(i, j, 0)
			w.WriteByte(pixel(mag, ok, exposure))
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// meanLogMagnitude returns the average log10 magnitude over evaluated,
// non-silent cells and the number of cells averaged.
func meanLogMagnitude(field *acoustics.InterferenceField) (float64, int) {
	sum, n := 0.0, 0
	for i, mag := range field.Magnitude {
		if !field.Evaluated[i] || mag <= 0 {
			continue
		}
		sum += math.Log10(mag)
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

func pixel(mag float64, evaluated bool, exposure float64) byte {
	if !evaluated {
		return 0
	}
	if mag <= 0 {
		// Total cancellation still gets the darkest in-room shade.
		return 1
	}
	v := midGray + (math.Log10(mag)-exposure)*grayPerDecade
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return byte(v * 255)
}
