package shape3d

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (AABB) Kind() Kind { return KindAABB }
func (AABB) shape3D()   {}

// NewAABB creates a box from its center and half size
func NewAABB(center, halfSize mgl64.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfSize),
		Max: center.Add(halfSize),
	}
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfSize() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// ClosestPoint clamps p into the box
func (a AABB) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p.X(), a.Min.X(), a.Max.X()),
		mgl64.Clamp(p.Y(), a.Min.Y(), a.Max.Y()),
		mgl64.Clamp(p.Z(), a.Min.Z(), a.Max.Z()),
	}
}

// ToOBB returns the same box with an identity orientation
func (a AABB) ToOBB() OBB {
	return OBB{
		Center:      a.Center(),
		HalfSize:    a.HalfSize(),
		Orientation: mgl64.Ident3(),
	}
}
