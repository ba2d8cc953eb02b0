package shape3d

import (
	"math"

	"github.com/akmonengine/collision/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// Every hit function returns a normal pointing from its first argument toward its second one.

var fallbackNormal = mgl64.Vec3{1, 0, 0}

func normalizeSafe(v, fallback mgl64.Vec3) mgl64.Vec3 {
	len2 := v.LenSqr()
	if len2 == 0 {
		return fallback
	}
	return v.Mul(1 / math.Sqrt(len2))
}

func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// hitWithin reports a hit when d (from a toward b) is not longer than radius
func hitWithin(d mgl64.Vec3, radius float64) contact.HitInfo {
	dist2 := d.LenSqr()
	if dist2 > radius*radius {
		return contact.NoHit()
	}

	dist := math.Sqrt(math.Max(0, dist2))
	return contact.Hit(normalizeSafe(d, fallbackNormal), radius-dist)
}

// axisUnit returns the world axis i scaled by s
func axisUnit(i int, s float64) mgl64.Vec3 {
	var v mgl64.Vec3
	v[i] = s
	return v
}

// minOverlapAxis returns the axis with the smallest of the three overlaps
func minOverlapAxis(overlap mgl64.Vec3) int {
	best := 0
	for i := 1; i < 3; i++ {
		if overlap[i] < overlap[best] {
			best = i
		}
	}
	return best
}

// Point - Point

func intersectsPointPoint(a, b Point) bool {
	return a.Position == b.Position
}

func hitPointPoint(a, b Point) contact.HitInfo {
	if !intersectsPointPoint(a, b) {
		return contact.NoHit()
	}
	return contact.Hit(fallbackNormal, 0)
}

// Sphere - Point

func intersectsSpherePoint(s Sphere, p Point) bool {
	return p.Position.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

func hitSpherePoint(s Sphere, p Point) contact.HitInfo {
	return hitWithin(p.Position.Sub(s.Center), s.Radius)
}

// Sphere - Sphere

func intersectsSphereSphere(a, b Sphere) bool {
	r := a.Radius + b.Radius
	return b.Center.Sub(a.Center).LenSqr() <= r*r
}

func hitSphereSphere(a, b Sphere) contact.HitInfo {
	return hitWithin(b.Center.Sub(a.Center), a.Radius+b.Radius)
}

// AABB - Point

func intersectsAABBPoint(b AABB, p Point) bool {
	return b.ContainsPoint(p.Position)
}

func hitAABBPoint(b AABB, p Point) contact.HitInfo {
	if !b.ContainsPoint(p.Position) {
		return contact.NoHit()
	}

	d := p.Position.Sub(b.Center())
	half := b.HalfSize()
	overlap := mgl64.Vec3{
		half.X() - math.Abs(d.X()),
		half.Y() - math.Abs(d.Y()),
		half.Z() - math.Abs(d.Z()),
	}

	i := minOverlapAxis(overlap)
	return contact.Hit(axisUnit(i, sign(d[i])), overlap[i])
}

// AABB - AABB

func intersectsAABBAABB(a, b AABB) bool {
	return a.Overlaps(b)
}

func hitAABBAABB(a, b AABB) contact.HitInfo {
	if !a.Overlaps(b) {
		return contact.NoHit()
	}

	d := b.Center().Sub(a.Center())
	ha, hb := a.HalfSize(), b.HalfSize()
	overlap := mgl64.Vec3{
		ha.X() + hb.X() - math.Abs(d.X()),
		ha.Y() + hb.Y() - math.Abs(d.Y()),
		ha.Z() + hb.Z() - math.Abs(d.Z()),
	}

	i := minOverlapAxis(overlap)
	return contact.Hit(axisUnit(i, sign(d[i])), overlap[i])
}

// Sphere - AABB

func intersectsSphereAABB(s Sphere, b AABB) bool {
	return b.ClosestPoint(s.Center).Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

func hitSphereAABB(s Sphere, b AABB) contact.HitInfo {
	closest := b.ClosestPoint(s.Center)
	d := closest.Sub(s.Center)
	if d.LenSqr() > s.Radius*s.Radius {
		return contact.NoHit()
	}

	if !b.ContainsPoint(s.Center) {
		return hitWithin(d, s.Radius)
	}

	// Center inside: push out through the nearest face
	best := math.Inf(1)
	var outward mgl64.Vec3
	for i := 0; i < 3; i++ {
		if dist := s.Center[i] - b.Min[i]; dist < best {
			best = dist
			outward = axisUnit(i, -1)
		}
		if dist := b.Max[i] - s.Center[i]; dist < best {
			best = dist
			outward = axisUnit(i, 1)
		}
	}

	return contact.Hit(outward.Mul(-1), s.Radius+best)
}

// Plane - Point. The plane has no volume, a point touches it within thickness.

func intersectsPlanePoint(pl Plane, p Point, thickness float64) bool {
	return math.Abs(pl.SignedDistance(p.Position)) <= thickness
}

// Plane - Sphere

func intersectsPlaneSphere(pl Plane, s Sphere) bool {
	return math.Abs(pl.SignedDistance(s.Center)) <= s.Radius
}

func hitPlaneSphere(pl Plane, s Sphere) contact.HitInfo {
	d := pl.SignedDistance(s.Center)
	if math.Abs(d) > s.Radius {
		return contact.NoHit()
	}

	return contact.Hit(pl.Normal.Mul(sign(d)), s.Radius-math.Abs(d))
}

// OBB - Point

func intersectsOBBPoint(b OBB, p Point) bool {
	return b.ContainsPoint(p.Position)
}

// OBB - Sphere

func intersectsOBBSphere(b OBB, s Sphere) bool {
	return s.Center.Sub(b.ClosestPoint(s.Center)).LenSqr() <= s.Radius*s.Radius
}

func hitOBBSphere(b OBB, s Sphere) contact.HitInfo {
	if !b.ContainsPoint(s.Center) {
		return hitWithin(s.Center.Sub(b.ClosestPoint(s.Center)), s.Radius)
	}

	// Center inside: push out through the nearest face, in the box frame
	l := b.local(s.Center)
	overlap := mgl64.Vec3{
		b.HalfSize.X() - math.Abs(l.X()),
		b.HalfSize.Y() - math.Abs(l.Y()),
		b.HalfSize.Z() - math.Abs(l.Z()),
	}

	i := minOverlapAxis(overlap)
	normal := b.Axes()[i].Mul(sign(l[i]))
	return contact.Hit(normal, s.Radius+overlap[i])
}

// AABB - OBB

func intersectsAABBOBB(a AABB, b OBB) bool {
	return intersectsOBBOBB(a.ToOBB(), b)
}

func hitAABBOBB(a AABB, b OBB) contact.HitInfo {
	return hitOBBOBB(a.ToOBB(), b)
}
