// Command room-response computes the bass frequency response of a
// rectangular room at one or more listening positions and prints it as CSV.
//
// Usage:
//
//	room-response -room 4x3x2.5 -source 1,1,1.2 -listener 3,2,1.2
//	room-response -room 5x4x2.7 -absorption 0.25 -lo 20 -hi 300 -points 300 \
//	    -detail high -listener 3.5,2,1.2 > response.csv
//
// Output columns: frequency_hz, magnitude, magnitude_db, phase_rad. The dB
// column is referenced to the free-field level 1 m from the source.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	acoustics "github.com/tphakala/go-room-acoustics"
)

const (
	defaultRoom       = "4x3x2.5"
	defaultAbsorption = 0.15
	defaultLoHz       = 20.0
	defaultHiHz       = 300.0
	defaultPoints     = 200

	// dbReference is the free-field magnitude 1 m from a unit source.
	dbReference = 1.0
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
	listenerSpec := flag.String("listener", "", "Listener position x,y,z in meters (required)")
	lo := flag.Float64("lo", defaultLoHz, "Lowest query frequency in Hz")
	hi := flag.Float64("hi", defaultHiHz, "Highest query frequency in Hz")
	points := flag.Int("points", defaultPoints, "Number of frequency points (log spaced)")
	detail := flag.String("detail", "medium", "Search detail: quick, low, medium, high, veryhigh")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *sourceSpec == "" || *listenerSpec == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -source x,y,z -listener x,y,z [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("source and listener positions are required")
	}

	room, err := parseRoom(*roomSpec, *absorption)
	if err != nil {
		return err
	}
	source, err := parseVec(*sourceSpec)
	if err != nil {
		return fmt.Errorf("bad -source: %w", err)
	}
	listener, err := parseVec(*listenerSpec)
	if err != nil {
		return fmt.Errorf("bad -listener: %w", err)
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

	freqs := acoustics.LogFrequencies(*lo, *hi, *points)
	resp, err := solver.Response(acoustics.Listener{Position: listener}, freqs)
	if err != nil {
		return err
	}

	if *verbose {
		paths, err := solver.Paths(acoustics.Listener{Position: listener})
		if err != nil {
			return err
		}
		log.Printf("room %s, %d surfaces, %d propagation paths",
			*roomSpec, len(room.Surfaces()), len(paths))
	}

	fmt.Println("frequency_hz,magnitude,magnitude_db,phase_rad")
	for i := range resp.Frequencies {
		fmt.Printf("%.4f,%.8g,%.4f,%.6f\n",
			resp.Frequencies[i],
			resp.Magnitude(i),
			resp.MagnitudeDB(i, dbReference),
			resp.Phase(i))
	}
	return nil
}
