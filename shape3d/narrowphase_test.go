package shape3d

import (
	"fmt"
	"math"
	"testing"

	"github.com/akmonengine/collision/contact"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper functions
func vec3Equal(t *testing.T, want, got mgl64.Vec3, tolerance float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tolerance, "component %d of %v, want %v", i, got, want)
	}
}

func unitCube(center mgl64.Vec3) AABB {
	return NewAABB(center, mgl64.Vec3{0.5, 0.5, 0.5})
}

func rotatedCube(position mgl64.Vec3, angle float64, axis mgl64.Vec3) OBB {
	return NewOBB(Transform{
		Position: position,
		Rotation: mgl64.QuatRotate(angle, axis),
	}, mgl64.Vec3{0.5, 0.5, 0.5})
}

func sampleShapes() []Shape {
	return []Shape{
		Point{Position: mgl64.Vec3{0, 0, 0}},
		Point{Position: mgl64.Vec3{0.3, 0.2, 0.1}},
		Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 1},
		Sphere{Center: mgl64.Vec3{1.5, 0.2, 0}, Radius: 0.75},
		Sphere{Center: mgl64.Vec3{10, 10, 10}, Radius: 1},
		NewAABB(mgl64.Vec3{0.5, 0.4, 0.3}, mgl64.Vec3{1, 0.5, 0.5}),
		rotatedCube(mgl64.Vec3{-0.2, 0.1, 0.35}, math.Pi/6, mgl64.Vec3{0, 0, 1}),
		NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0.1, 0}),
	}
}

func TestSphereSphere_BoundaryInclusive(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		r1, r2   float64
		want     bool
	}{
		{"overlapping", 1.5, 1, 1, true},
		{"touching", 2, 1, 1, true},
		{"separated", 2.0001, 1, 1, false},
		{"concentric", 0, 0.5, 0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: tt.r1}
			b := Sphere{Center: mgl64.Vec3{0, 0, tt.distance}, Radius: tt.r2}

			assert.Equal(t, tt.want, Intersects(a, b))
			assert.Equal(t, tt.want, ComputeHit(a, b).IsHit)
		})
	}
}

func TestSphereSphere_Hit(t *testing.T) {
	a := Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 1}
	b := Sphere{Center: mgl64.Vec3{0, 0, 1.5}, Radius: 1}

	hit := ComputeHit(a, b)

	require.True(t, hit.IsHit)
	vec3Equal(t, mgl64.Vec3{0, 0, 1}, hit.Normal, 1e-9)
	assert.InDelta(t, 0.5, hit.Penetration, 1e-9)
}

func TestPointPoint(t *testing.T) {
	a := Point{Position: mgl64.Vec3{1, 2, 3}}

	assert.True(t, Intersects(a, Point{Position: mgl64.Vec3{1, 2, 3}}))
	assert.False(t, Intersects(a, Point{Position: mgl64.Vec3{1, 2, 3.000001}}))
	assert.Equal(t, contact.HitInfo{IsHit: true, Normal: mgl64.Vec3{1, 0, 0}}, ComputeHit(a, a))
}

func TestSpherePoint(t *testing.T) {
	s := Sphere{Center: mgl64.Vec3{1, 1, 1}, Radius: 2}

	assert.True(t, Intersects(s, Point{Position: mgl64.Vec3{1, 3, 1}}))
	assert.False(t, Intersects(Point{Position: mgl64.Vec3{1, 3.01, 1}}, s))

	hit := ComputeHit(s, Point{Position: mgl64.Vec3{1, 2.5, 1}})
	require.True(t, hit.IsHit)
	vec3Equal(t, mgl64.Vec3{0, 1, 0}, hit.Normal, 1e-9)
	assert.InDelta(t, 0.5, hit.Penetration, 1e-9)
}

func TestAABBAABB_UnitCubes(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{"overlapping", 0.8, true},
		{"touching", 1.0, true},
		{"separated", 1.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := unitCube(mgl64.Vec3{0, 0, 0})
			b := unitCube(mgl64.Vec3{tt.x, 0, 0})

			assert.Equal(t, tt.want, Intersects(a, b))
			assert.Equal(t, tt.want, ComputeHit(a, b).IsHit)
		})
	}
}

func TestAABBAABB_Hit(t *testing.T) {
	a := unitCube(mgl64.Vec3{0, 0, 0})
	b := unitCube(mgl64.Vec3{0.8, 0.1, 0})

	hit := ComputeHit(a, b)
	require.True(t, hit.IsHit)
	vec3Equal(t, mgl64.Vec3{1, 0, 0}, hit.Normal, 1e-9)
	assert.InDelta(t, 0.2, hit.Penetration, 1e-9)

	reverse := ComputeHit(b, a)
	require.True(t, reverse.IsHit)
	vec3Equal(t, mgl64.Vec3{-1, 0, 0}, reverse.Normal, 1e-9)
	assert.InDelta(t, 0.2, reverse.Penetration, 1e-9)
}

func TestAABBPoint(t *testing.T) {
	box := NewAABB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 2, 3})

	assert.True(t, Intersects(box, Point{Position: mgl64.Vec3{1, 2, 3}}))
	assert.False(t, Intersects(box, Point{Position: mgl64.Vec3{1, 2, 3.1}}))

	hit := ComputeHit(box, Point{Position: mgl64.Vec3{0, -1.75, 0}})
	require.True(t, hit.IsHit)
	vec3Equal(t, mgl64.Vec3{0, -1, 0}, hit.Normal, 1e-9)
	assert.InDelta(t, 0.25, hit.Penetration, 1e-9)
}

func TestSphereAABB(t *testing.T) {
	box := unitCube(mgl64.Vec3{0, 0, 0})

	t.Run("separated", func(t *testing.T) {
		s := Sphere{Center: mgl64.Vec3{2, 0, 0}, Radius: 1}
		assert.False(t, Intersects(s, box))
		assert.False(t, ComputeHit(s, box).IsHit)
	})

	t.Run("outside", func(t *testing.T) {
		s := Sphere{Center: mgl64.Vec3{1.2, 0, 0}, Radius: 1}

		hit := ComputeHit(s, box)
		require.True(t, hit.IsHit)
		vec3Equal(t, mgl64.Vec3{-1, 0, 0}, hit.Normal, 1e-9)
		assert.InDelta(t, 0.3, hit.Penetration, 1e-9)
	})

	t.Run("center inside", func(t *testing.T) {
		s := Sphere{Center: mgl64.Vec3{0.3, 0, 0}, Radius: 0.5}

		hit := ComputeHit(s, box)
		require.True(t, hit.IsHit)
		vec3Equal(t, mgl64.Vec3{-1, 0, 0}, hit.Normal, 1e-9)
		assert.InDelta(t, 0.7, hit.Penetration, 1e-9)
	})

	t.Run("corner", func(t *testing.T) {
		// the corner (0.5, 0.5, 0.5) is sqrt(3)*0.5 away from (1, 1, 1)
		near := Sphere{Center: mgl64.Vec3{1, 1, 1}, Radius: 0.87}
		far := Sphere{Center: mgl64.Vec3{1, 1, 1}, Radius: 0.86}

		assert.True(t, Intersects(box, near))
		assert.False(t, Intersects(box, far))
	})
}

func TestPlaneSphere(t *testing.T) {
	ground := NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 0})

	tests := []struct {
		name        string
		center      mgl64.Vec3
		wantHit     bool
		wantNormal  mgl64.Vec3
		penetration float64
	}{
		{"above", mgl64.Vec3{4, 0.5, -2}, true, mgl64.Vec3{0, 1, 0}, 0.5},
		{"below", mgl64.Vec3{0, -0.25, 0}, true, mgl64.Vec3{0, -1, 0}, 0.75},
		{"resting", mgl64.Vec3{0, 1, 0}, true, mgl64.Vec3{0, 1, 0}, 0},
		{"away", mgl64.Vec3{0, 2, 0}, false, mgl64.Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sphere{Center: tt.center, Radius: 1}

			hit := ComputeHit(ground, s)
			require.Equal(t, tt.wantHit, hit.IsHit)
			assert.Equal(t, tt.wantHit, Intersects(s, ground))
			if !tt.wantHit {
				return
			}
			vec3Equal(t, tt.wantNormal, hit.Normal, 1e-9)
			assert.InDelta(t, tt.penetration, hit.Penetration, 1e-9)

			reverse := ComputeHit(s, ground)
			vec3Equal(t, tt.wantNormal.Mul(-1), reverse.Normal, 1e-9)
		})
	}
}

func TestPlanePoint_Thickness(t *testing.T) {
	ground := NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 0})
	onPlane := Point{Position: mgl64.Vec3{3, 0, 7}}
	above := Point{Position: mgl64.Vec3{0, 0.01, 0}}

	assert.True(t, Intersects(ground, onPlane))
	assert.False(t, Intersects(ground, above))

	thick := NewNarrowPhase(0.05)
	assert.True(t, thick.Intersects(ground, above))
	assert.True(t, thick.Intersects(above, ground))

	// no normal nor penetration for this pair
	assert.False(t, thick.HasComputeHit(ground, above))
	assert.Equal(t, contact.HitInfo{IsHit: true}, thick.ComputeHit(ground, above))
	assert.Equal(t, contact.HitInfo{IsHit: true}, thick.ComputeHit(above, ground))
}

func TestOBBPoint(t *testing.T) {
	box := rotatedCube(mgl64.Vec3{0, 0, 0}, math.Pi/4, mgl64.Vec3{0, 0, 1})

	// along the diagonal of the rotated box, out of the unrotated one
	inside := Point{Position: mgl64.Vec3{0.6, 0, 0}}
	outside := Point{Position: mgl64.Vec3{0.6, 0.6, 0}}

	assert.True(t, Intersects(box, inside))
	assert.False(t, Intersects(unitCube(mgl64.Vec3{0, 0, 0}), inside))
	assert.False(t, Intersects(outside, box))
	assert.Equal(t, contact.HitInfo{IsHit: true}, ComputeHit(inside, box))
}

func TestOBBSphere(t *testing.T) {
	box := NewOBB(NewTransform(), mgl64.Vec3{0.5, 0.5, 0.5})

	t.Run("outside", func(t *testing.T) {
		s := Sphere{Center: mgl64.Vec3{1.2, 0, 0}, Radius: 1}

		hit := ComputeHit(box, s)
		require.True(t, hit.IsHit)
		vec3Equal(t, mgl64.Vec3{1, 0, 0}, hit.Normal, 1e-9)
		assert.InDelta(t, 0.3, hit.Penetration, 1e-9)
	})

	t.Run("center inside", func(t *testing.T) {
		s := Sphere{Center: mgl64.Vec3{0.3, 0, 0}, Radius: 0.5}

		hit := ComputeHit(box, s)
		require.True(t, hit.IsHit)
		vec3Equal(t, mgl64.Vec3{1, 0, 0}, hit.Normal, 1e-9)
		assert.InDelta(t, 0.7, hit.Penetration, 1e-9)
	})

	t.Run("matches the axis aligned box", func(t *testing.T) {
		aabb := unitCube(mgl64.Vec3{0, 0, 0})
		for _, center := range []mgl64.Vec3{{1.2, 0, 0}, {0.3, 0, 0}, {0.8, 0.7, -0.1}, {3, 0, 0}} {
			s := Sphere{Center: center, Radius: 0.5}

			want := ComputeHit(s, aabb)
			got := ComputeHit(s, box)
			assert.Equal(t, want.IsHit, got.IsHit, "sphere at %v", center)
			vec3Equal(t, want.Normal, got.Normal, 1e-9)
			assert.InDelta(t, want.Penetration, got.Penetration, 1e-9)
		}
	})

	t.Run("rotated", func(t *testing.T) {
		rotated := rotatedCube(mgl64.Vec3{0, 0, 0}, math.Pi/4, mgl64.Vec3{0, 0, 1})
		// the nearest face of the rotated box is 0.5 away along the diagonal
		s := Sphere{Center: mgl64.Vec3{1, 1, 0}, Radius: 1}

		hit := ComputeHit(rotated, s)
		require.True(t, hit.IsHit)
		vec3Equal(t, mgl64.Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}, hit.Normal, 1e-6)
		assert.InDelta(t, 1.5-math.Sqrt2, hit.Penetration, 1e-6)
	})
}

func TestOBBOBB_AxisAligned(t *testing.T) {
	a := NewOBB(NewTransform(), mgl64.Vec3{0.5, 0.5, 0.5})
	b := NewOBB(Transform{Position: mgl64.Vec3{0.8, 0, 0}, Rotation: mgl64.QuatIdent()}, mgl64.Vec3{0.5, 0.5, 0.5})

	// parallel edges give null cross products, which must not stop the test
	hit := ComputeHit(a, b)
	require.True(t, hit.IsHit)
	vec3Equal(t, mgl64.Vec3{1, 0, 0}, hit.Normal, 1e-9)
	assert.InDelta(t, 0.2, hit.Penetration, 1e-9)

	b.Center = mgl64.Vec3{1.01, 0, 0}
	assert.False(t, Intersects(a, b))
}

func TestOBBOBB_AxisAlignedBoundary(t *testing.T) {
	a := NewOBB(NewTransform(), mgl64.Vec3{0.5, 0.5, 0.5})

	tests := []struct {
		name        string
		x           float64
		want        bool
		penetration float64
	}{
		{"overlapping", 0.8, true, 0.2},
		{"touching faces", 1.0, true, 0},
		{"separated", 1.01, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewOBB(Transform{Position: mgl64.Vec3{tt.x, 0, 0}, Rotation: mgl64.QuatIdent()}, mgl64.Vec3{0.5, 0.5, 0.5})

			assert.Equal(t, tt.want, Intersects(a, b))
			hit := ComputeHit(a, b)
			assert.Equal(t, tt.want, hit.IsHit)
			if tt.want {
				vec3Equal(t, mgl64.Vec3{1, 0, 0}, hit.Normal, 1e-9)
				assert.InDelta(t, tt.penetration, hit.Penetration, 1e-9)
			}
		})
	}
}

func TestOBB_ZeroOrientationIsIdentity(t *testing.T) {
	a := OBB{HalfSize: mgl64.Vec3{0.5, 0.5, 0.5}}
	far := OBB{Center: mgl64.Vec3{100, 0, 0}, HalfSize: mgl64.Vec3{0.5, 0.5, 0.5}}
	near := OBB{Center: mgl64.Vec3{0.8, 0, 0}, HalfSize: mgl64.Vec3{0.5, 0.5, 0.5}}

	assert.False(t, Intersects(a, far))
	assert.False(t, ComputeHit(a, far).IsHit)
	assert.True(t, Intersects(a, near))

	assert.False(t, a.ContainsPoint(mgl64.Vec3{10, 0, 0}))
	assert.True(t, a.ContainsPoint(mgl64.Vec3{0.5, 0.25, -0.5}))
	assert.False(t, Intersects(a, Sphere{Center: mgl64.Vec3{3, 0, 0}, Radius: 1}))

	bounds := a.Bounds()
	vec3Equal(t, mgl64.Vec3{-0.5, -0.5, -0.5}, bounds.Min, 1e-12)
	vec3Equal(t, mgl64.Vec3{0.5, 0.5, 0.5}, bounds.Max, 1e-12)
}

func TestOBBOBB_FaceAxis(t *testing.T) {
	a := NewOBB(NewTransform(), mgl64.Vec3{0.5, 0.5, 0.5})

	t.Run("bounds overlap but boxes do not", func(t *testing.T) {
		b := rotatedCube(mgl64.Vec3{1, 1, 0}, math.Pi/4, mgl64.Vec3{0, 0, 1})

		require.True(t, a.Bounds().Overlaps(b.Bounds()))
		assert.False(t, Intersects(a, b))
		assert.False(t, ComputeHit(b, a).IsHit)
	})

	t.Run("overlapping", func(t *testing.T) {
		b := rotatedCube(mgl64.Vec3{0.8, 0.8, 0}, math.Pi/4, mgl64.Vec3{0, 0, 1})

		hit := ComputeHit(a, b)
		require.True(t, hit.IsHit)
		vec3Equal(t, mgl64.Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}, hit.Normal, 1e-6)
		assert.InDelta(t, 0.5+math.Sqrt2/2-0.8*math.Sqrt2, hit.Penetration, 1e-6)
	})
}

func TestOBBOBB_EdgeEdge(t *testing.T) {
	// Only the cross product of the two vertical edges separates these boxes
	a := rotatedCube(mgl64.Vec3{0, 0, 0}, math.Pi/4, mgl64.Vec3{0, 0, 1})

	separated := rotatedCube(mgl64.Vec3{1.45, 0, 0}, math.Pi/4, mgl64.Vec3{0, 1, 0})
	assert.False(t, Intersects(a, separated))
	assert.False(t, ComputeHit(a, separated).IsHit)

	overlapping := rotatedCube(mgl64.Vec3{1.4, 0, 0}, math.Pi/4, mgl64.Vec3{0, 1, 0})
	hit := ComputeHit(a, overlapping)
	require.True(t, hit.IsHit)
	vec3Equal(t, mgl64.Vec3{1, 0, 0}, hit.Normal, 1e-6)
	assert.InDelta(t, math.Sqrt2-1.4, hit.Penetration, 1e-6)
}

func TestAABBOBB(t *testing.T) {
	a := unitCube(mgl64.Vec3{0, 0, 0})

	assert.False(t, Intersects(a, rotatedCube(mgl64.Vec3{1, 1, 0}, math.Pi/4, mgl64.Vec3{0, 0, 1})))

	b := rotatedCube(mgl64.Vec3{0.8, 0.8, 0}, math.Pi/4, mgl64.Vec3{0, 0, 1})
	hit := ComputeHit(b, a)
	require.True(t, hit.IsHit)
	vec3Equal(t, mgl64.Vec3{-math.Sqrt2 / 2, -math.Sqrt2 / 2, 0}, hit.Normal, 1e-6)
}

func TestUnimplementedPairs(t *testing.T) {
	ground := NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 0})
	shapes := []Shape{
		unitCube(mgl64.Vec3{0, 0, 0}),
		NewOBB(NewTransform(), mgl64.Vec3{1, 1, 1}),
		NewPlane(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 0}),
	}

	for _, other := range shapes {
		t.Run(other.Kind().String(), func(t *testing.T) {
			assert.False(t, Default.Supports(ground, other))
			assert.False(t, Intersects(ground, other))
			assert.False(t, Intersects(other, ground))
			assert.Equal(t, contact.NoHit(), ComputeHit(ground, other))
		})
	}
}

func TestNarrowPhase_Symmetry(t *testing.T) {
	shapes := sampleShapes()

	for i, a := range shapes {
		for j, b := range shapes {
			if i == j {
				continue
			}
			t.Run(fmt.Sprintf("%s_%d-%s_%d", a.Kind(), i, b.Kind(), j), func(t *testing.T) {
				assert.Equal(t, Intersects(a, b), Intersects(b, a))

				ab := ComputeHit(a, b)
				ba := ComputeHit(b, a)
				require.Equal(t, ab.IsHit, ba.IsHit)
				assert.Equal(t, Intersects(a, b), ab.IsHit)
				if !ab.IsHit {
					return
				}
				vec3Equal(t, ab.Normal.Mul(-1), ba.Normal, 1e-9)
				assert.InDelta(t, ab.Penetration, ba.Penetration, 1e-9)
			})
		}
	}
}

func TestNarrowPhase_PointerShapes(t *testing.T) {
	a := &Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 1}
	b := &Sphere{Center: mgl64.Vec3{1.5, 0, 0}, Radius: 1}

	assert.True(t, Intersects(a, b))
	assert.Equal(t, ComputeHit(*a, *b), ComputeHit(a, b))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "sphere", KindSphere.String())
	assert.Equal(t, "obb", OBB{}.Kind().String())
	assert.Equal(t, "unknown", Kind(42).String())
}
