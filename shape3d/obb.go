package shape3d

import (
	"math"

	"github.com/akmonengine/collision/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// degenerateAxisEpsilon is the squared length under which a SAT axis is skipped.
// Cross products of near-parallel edges fall below it.
const degenerateAxisEpsilon = 1e-12

// OBB represents an oriented box
// The box is defined by its center, its half-extents and a rotation matrix
// whose columns are the box local X, Y and Z axes in world space
type OBB struct {
	Center      mgl64.Vec3
	HalfSize    mgl64.Vec3
	Orientation mgl64.Mat3
}

func (OBB) Kind() Kind { return KindOBB }
func (OBB) shape3D()   {}

// NewOBB places a box of the given half-extents at a world transform
func NewOBB(transform Transform, halfSize mgl64.Vec3) OBB {
	return OBB{
		Center:      transform.Position,
		HalfSize:    halfSize,
		Orientation: transform.Rotation.Normalize().Mat4().Mat3(),
	}
}

// Axes returns the three local axes in world space.
// A zero Orientation, as in an OBB literal, stands for the identity.
func (b OBB) Axes() [3]mgl64.Vec3 {
	orientation := b.Orientation
	if orientation == (mgl64.Mat3{}) {
		orientation = mgl64.Ident3()
	}

	return [3]mgl64.Vec3{
		orientation.Col(0),
		orientation.Col(1),
		orientation.Col(2),
	}
}

// Bounds calculates the axis-aligned bounding box of the oriented box
func (b OBB) Bounds() AABB {
	axes := b.Axes()

	min := b.Center
	max := b.Center
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				corner := b.Center.
					Add(axes[0].Mul(sx * b.HalfSize.X())).
					Add(axes[1].Mul(sy * b.HalfSize.Y())).
					Add(axes[2].Mul(sz * b.HalfSize.Z()))

				for i := 0; i < 3; i++ {
					min[i] = math.Min(min[i], corner[i])
					max[i] = math.Max(max[i], corner[i])
				}
			}
		}
	}

	return AABB{Min: min, Max: max}
}

// local returns p in the box frame, relative to its center
func (b OBB) local(p mgl64.Vec3) mgl64.Vec3 {
	d := p.Sub(b.Center)
	axes := b.Axes()
	return mgl64.Vec3{d.Dot(axes[0]), d.Dot(axes[1]), d.Dot(axes[2])}
}

// ContainsPoint checks if a point is inside the box, faces included
func (b OBB) ContainsPoint(p mgl64.Vec3) bool {
	l := b.local(p)
	return math.Abs(l.X()) <= b.HalfSize.X() &&
		math.Abs(l.Y()) <= b.HalfSize.Y() &&
		math.Abs(l.Z()) <= b.HalfSize.Z()
}

// ClosestPoint clamps p into the box
func (b OBB) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	l := b.local(p)
	axes := b.Axes()

	closest := b.Center
	for i := 0; i < 3; i++ {
		closest = closest.Add(axes[i].Mul(mgl64.Clamp(l[i], -b.HalfSize[i], b.HalfSize[i])))
	}
	return closest
}

// projectedRadius is the half length of the projection of the box on a unit axis
func (b OBB) projectedRadius(axis mgl64.Vec3) float64 {
	axes := b.Axes()
	return b.HalfSize.X()*math.Abs(axes[0].Dot(axis)) +
		b.HalfSize.Y()*math.Abs(axes[1].Dot(axis)) +
		b.HalfSize.Z()*math.Abs(axes[2].Dot(axis))
}

// separatingAxes lists the 15 SAT candidates: 3 face normals of each box and the 9 edge cross products
func separatingAxes(a, b OBB) [15]mgl64.Vec3 {
	axesA := a.Axes()
	axesB := b.Axes()

	var axes [15]mgl64.Vec3
	n := 0
	for i := 0; i < 3; i++ {
		axes[n] = axesA[i]
		axes[n+1] = axesB[i]
		n += 2
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[n] = axesA[i].Cross(axesB[j])
			n++
		}
	}

	return axes
}

// overlapOnAxis returns how much the projections of both boxes overlap on axis.
// ok is false for a degenerate axis, which cannot separate anything.
func overlapOnAxis(a, b OBB, axis, t mgl64.Vec3) (overlap float64, ok bool) {
	len2 := axis.LenSqr()
	if len2 < degenerateAxisEpsilon {
		return 0, false
	}

	unit := axis.Mul(1 / math.Sqrt(len2))
	distance := math.Abs(t.Dot(unit))

	return a.projectedRadius(unit) + b.projectedRadius(unit) - distance, true
}

func intersectsOBBOBB(a, b OBB) bool {
	t := b.Center.Sub(a.Center)

	for _, axis := range separatingAxes(a, b) {
		if overlap, ok := overlapOnAxis(a, b, axis, t); ok && overlap < 0 {
			return false
		}
	}

	return true
}

// hitOBBOBB keeps the axis of minimum overlap as contact normal, oriented from a toward b
func hitOBBOBB(a, b OBB) contact.HitInfo {
	t := b.Center.Sub(a.Center)

	bestPenetration := math.Inf(1)
	bestAxis := fallbackNormal
	for _, axis := range separatingAxes(a, b) {
		overlap, ok := overlapOnAxis(a, b, axis, t)
		if !ok {
			continue
		}
		if overlap < 0 {
			return contact.NoHit()
		}
		if overlap < bestPenetration {
			bestPenetration = overlap
			bestAxis = axis
		}
	}

	normal := normalizeSafe(bestAxis, fallbackNormal)
	if normal.Dot(t) < 0 {
		normal = normal.Mul(-1)
	}

	return contact.Hit(normal, bestPenetration)
}
