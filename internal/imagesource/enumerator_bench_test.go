package imagesource

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-room-acoustics/internal/geom"
)

func benchScene(b *testing.B) *Scene {
	b.Helper()
	w, d, h := 4.0, 3.0, 2.5
	c := func(x, y, z int) r3.Vec {
		return r3.Vec{X: float64(x) * w, Y: float64(y) * d, Z: float64(z) * h}
	}
	mk := func(verts ...r3.Vec) Wall {
		poly, err := geom.NewPolygon(verts, 1e-9)
		if err != nil {
			b.Fatal(err)
		}
		return Wall{Poly: poly, Reflectance: 0.85}
	}
	return NewScene([]Wall{
		mk(c(0, 0, 0), c(1, 0, 0), c(1, 1, 0), c(0, 1, 0)),
		mk(c(0, 0, 1), c(0, 1, 1), c(1, 1, 1), c(1, 0, 1)),
		mk(c(0, 0, 0), c(0, 0, 1), c(1, 0, 1), c(1, 0, 0)),
		mk(c(0, 1, 0), c(1, 1, 0), c(1, 1, 1), c(0, 1, 1)),
		mk(c(0, 0, 0), c(0, 1, 0), c(0, 1, 1), c(0, 0, 1)),
		mk(c(1, 0, 0), c(1, 0, 1), c(1, 1, 1), c(1, 1, 0)),
	})
}

func BenchmarkPaths(b *testing.B) {
	scene := benchScene(b)
	src := r3.Vec{X: 1, Y: 1, Z: 1.2}
	lst := r3.Vec{X: 3, Y: 2, Z: 1.2}

	for _, order := range []int{1, 2, 3, 4} {
		opt := Options{MaxOrder: order, ParallelTol: 1e-9, EdgeTol: 1e-9}
		b.Run(orderName(order), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = scene.Paths(src, lst, opt)
			}
		})
	}
}

func BenchmarkSumContributions(b *testing.B) {
	scene := benchScene(b)
	paths := scene.Paths(
		r3.Vec{X: 1, Y: 1, Z: 1.2},
		r3.Vec{X: 3, Y: 2, Z: 1.2},
		Options{MaxOrder: 3, ParallelTol: 1e-9, EdgeTol: 1e-9})

	b.ReportAllocs()
	for b.Loop() {
		_ = SumContributions(paths, 63.0, 343.0, 1)
	}
}

func orderName(order int) string {
	return "order" + string(rune('0'+order))
}
