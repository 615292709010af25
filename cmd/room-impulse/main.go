// Command room-impulse computes the low-frequency impulse response of a
// rectangular room between a source and a listener and writes it as a mono
// WAV file. The result can be loaded into any convolution or room-analysis
// tool; the direct-sound arrival and the early reflection pattern are
// visible directly in the waveform.
//
// Usage:
//
//	room-impulse -room 4x3x2.5 -source 1,1,1.2 -listener 3,2,1.2 -o ir.wav
//	room-impulse -room 6x5x2.7 -absorption 0.3 -rate 48000 -samples 16384 \
//	    -source 0.5,0.5,1 -listener 4,3,1.2 -o ir.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	acoustics "github.com/tphakala/go-room-acoustics"
)

const (
	defaultRoom       = "4x3x2.5"
	defaultAbsorption = 0.15
	defaultRate       = 48000
	defaultSamples    = 8192
	defaultOut        = "impulse.wav"

	outputBitDepth = 16
	wavAudioFormat = 1 // PCM

	// peakHeadroom keeps the normalized peak just below full scale.
	peakHeadroom = 0.9
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
	rate := flag.Int("rate", defaultRate, "Output sample rate in Hz")
	samples := flag.Int("samples", defaultSamples, "Impulse response length in samples")
	detail := flag.String("detail", "high", "Search detail: quick, low, medium, high, veryhigh")
	out := flag.String("o", defaultOut, "Output WAV file")
	flag.Parse()

	if *sourceSpec == "" || *listenerSpec == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -source x,y,z -listener x,y,z [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("source and listener positions are required")
	}
	if *rate <= 0 || *samples <= 0 {
		return fmt.Errorf("sample rate and sample count must be positive")
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

	log.Printf("computing %d-sample impulse response at %d Hz", *samples, *rate)
	impulse, err := solver.ImpulseResponse(acoustics.Listener{Position: listener}, float64(*rate), *samples)
	if err != nil {
		return err
	}

	if err := writeWAV(*out, impulse, *rate); err != nil {
		return err
	}
	log.Printf("wrote %s (%.3f s)", *out, float64(*samples)/float64(*rate))
	return nil
}

// writeWAV writes the impulse response as 16-bit mono PCM, peak-normalized
// with a little headroom.
func writeWAV(path string, impulse []float64, rate int) error {
	peak := 0.0
	for _, v := range impulse {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return fmt.Errorf("impulse response is silent")
	}
	scale := peakHeadroom / peak

	maxVal := float64(int(1)<<(outputBitDepth-1)) - 1
	data := make([]int, len(impulse))
	for i, v := range impulse {
		data[i] = int(math.Round(v * scale * maxVal))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, rate, outputBitDepth, 1, wavAudioFormat)
	buf := &audio.IntBuffer{
		Data:   data,
		Format: &audio.Format{NumChannels: 1, SampleRate: rate},
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return f.Close()
}
