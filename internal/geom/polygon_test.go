package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const testPlanarTol = 1e-9

// unitSquare is a square in the z=0 plane with counter-clockwise winding
// seen from +z, so Newell's normal points up.
func unitSquare(t *testing.T) *Polygon {
	t.Helper()
	p, err := NewPolygon([]r3.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}, testPlanarTol)
	require.NoError(t, err)
	return p
}

func TestNewPolygonValidation(t *testing.T) {
	tests := []struct {
		name     string
		vertices []r3.Vec
		wantErr  error
	}{
		{
			name:     "too few vertices",
			vertices: []r3.Vec{{X: 0}, {X: 1}},
			wantErr:  ErrDegenerate,
		},
		{
			name: "collinear vertices",
			vertices: []r3.Vec{
				{X: 0}, {X: 1}, {X: 2},
			},
			wantErr: ErrDegenerate,
		},
		{
			name: "non-planar quad",
			vertices: []r3.Vec{
				{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
				{X: 1, Y: 1, Z: 0.5}, {X: 0, Y: 1, Z: 0},
			},
			wantErr: ErrNonPlanar,
		},
		{
			name: "self-intersecting bowtie",
			vertices: []r3.Vec{
				{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1},
			},
			wantErr: ErrSelfIntersecting,
		},
		{
			name: "valid triangle",
			vertices: []r3.Vec{
				{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolygon(tt.vertices, testPlanarTol)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPolygonDerivedProperties(t *testing.T) {
	p := unitSquare(t)

	assert.InDelta(t, 1.0, p.Area(), 1e-12)
	assert.InDelta(t, 1.0, p.Normal().Z, 1e-12)
	assert.InDelta(t, 0.0, p.Normal().X, 1e-12)
	assert.InDelta(t, 0.5, p.Center().X, 1e-12)
	assert.InDelta(t, 0.5, p.Center().Y, 1e-12)
}

func TestFlipNormal(t *testing.T) {
	p := unitSquare(t)
	above := r3.Vec{X: 0.5, Y: 0.5, Z: 2}

	assert.Positive(t, p.SignedDistance(above))
	p.FlipNormal()
	assert.Negative(t, p.SignedDistance(above))

	// Containment must survive the flip.
	assert.True(t, p.Contains(r3.Vec{X: 0.5, Y: 0.5}))
}

func TestMirror(t *testing.T) {
	p := unitSquare(t)

	got := p.Mirror(r3.Vec{X: 0.3, Y: 0.7, Z: 2})
	assert.InDelta(t, 0.3, got.X, 1e-12)
	assert.InDelta(t, 0.7, got.Y, 1e-12)
	assert.InDelta(t, -2.0, got.Z, 1e-12)

	// Mirroring twice is the identity.
	back := p.Mirror(got)
	assert.InDelta(t, 2.0, back.Z, 1e-12)

	// Points outside the outline still mirror; only the plane matters.
	far := p.Mirror(r3.Vec{X: 10, Y: -3, Z: 1})
	assert.InDelta(t, -1.0, far.Z, 1e-12)
}

func TestContainsConcave(t *testing.T) {
	// L-shaped outline in the z=0 plane.
	l, err := NewPolygon([]r3.Vec{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}, testPlanarTol)
	require.NoError(t, err)

	assert.True(t, l.Contains(r3.Vec{X: 0.5, Y: 0.5}))
	assert.True(t, l.Contains(r3.Vec{X: 1.5, Y: 0.5}))
	assert.True(t, l.Contains(r3.Vec{X: 0.5, Y: 1.5}))
	// The notch is outside even though it is inside the bounding box.
	assert.False(t, l.Contains(r3.Vec{X: 1.5, Y: 1.5}))
	assert.False(t, l.Contains(r3.Vec{X: 3, Y: 0.5}))
}

func TestIntersectSegment(t *testing.T) {
	p := unitSquare(t)
	const parallelTol = 1e-9

	t.Run("crossing hit", func(t *testing.T) {
		hit, tt, ok := p.IntersectSegment(
			r3.Vec{X: 0.5, Y: 0.5, Z: 1}, r3.Vec{X: 0.5, Y: 0.5, Z: -1}, parallelTol)
		require.True(t, ok)
		assert.InDelta(t, 0.5, tt, 1e-12)
		assert.InDelta(t, 0.0, hit.Z, 1e-12)
	})

	t.Run("misses outline", func(t *testing.T) {
		_, _, ok := p.IntersectSegment(
			r3.Vec{X: 2, Y: 2, Z: 1}, r3.Vec{X: 2, Y: 2, Z: -1}, parallelTol)
		assert.False(t, ok)
	})

	t.Run("parallel segment", func(t *testing.T) {
		_, _, ok := p.IntersectSegment(
			r3.Vec{X: 0, Y: 0, Z: 1}, r3.Vec{X: 1, Y: 1, Z: 1}, parallelTol)
		assert.False(t, ok)
	})

	t.Run("plane behind segment", func(t *testing.T) {
		_, _, ok := p.IntersectSegment(
			r3.Vec{X: 0.5, Y: 0.5, Z: 2}, r3.Vec{X: 0.5, Y: 0.5, Z: 1}, parallelTol)
		assert.False(t, ok)
	})
}
