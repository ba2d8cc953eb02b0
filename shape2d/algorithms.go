package shape2d

import (
	"math"

	"github.com/akmonengine/collision/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// Every hit function returns a normal pointing from its first argument toward its second one.

var fallbackNormal = mgl64.Vec2{1, 0}

func normalizeSafe(v, fallback mgl64.Vec2) mgl64.Vec2 {
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
func hitWithin(d mgl64.Vec2, radius float64) contact.HitInfo {
	dist2 := d.LenSqr()
	if dist2 > radius*radius {
		return contact.NoHit()
	}

	dist := math.Sqrt(math.Max(0, dist2))
	return contact.Hit2D(normalizeSafe(d, fallbackNormal), radius-dist)
}

// closestPointsBetweenSegments returns the closest point on a and the closest point on b.
// Based on Ericson, Real-Time Collision Detection, 5.1.9.
func closestPointsBetweenSegments(a, b Segment) (mgl64.Vec2, mgl64.Vec2) {
	d1 := a.End.Sub(a.Start)
	d2 := b.End.Sub(b.Start)
	r := a.Start.Sub(b.Start)
	lenA := d1.Dot(d1)
	lenB := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case lenA <= 0 && lenB <= 0:
		return a.Start, b.Start
	case lenA <= 0:
		t = clamp01(f / lenB)
	default:
		c := d1.Dot(r)
		if lenB <= 0 {
			s = clamp01(-c / lenA)
			break
		}

		dd := d1.Dot(d2)
		if denom := lenA*lenB - dd*dd; denom != 0 {
			s = clamp01((dd*f - c*lenB) / denom)
		}

		t = (dd*s + f) / lenB
		if t < 0 {
			t = 0
			s = clamp01(-c / lenA)
		} else if t > 1 {
			t = 1
			s = clamp01((dd - c) / lenA)
		}
	}

	return a.Start.Add(d1.Mul(s)), b.Start.Add(d2.Mul(t))
}

// segmentCrossesRect clips the segment against the rectangle slabs
func segmentCrossesRect(s Segment, r Rect) bool {
	min, max := r.Min(), r.Max()
	d := s.End.Sub(s.Start)
	tMin, tMax := 0.0, 1.0

	for axis := 0; axis < 2; axis++ {
		if d[axis] == 0 {
			if s.Start[axis] < min[axis] || s.Start[axis] > max[axis] {
				return false
			}
			continue
		}

		inv := 1 / d[axis]
		t1 := (min[axis] - s.Start[axis]) * inv
		t2 := (max[axis] - s.Start[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Point - Point

func intersectsPointPoint(a, b Point) bool {
	return a.Position == b.Position
}

func hitPointPoint(a, b Point) contact.HitInfo {
	if !intersectsPointPoint(a, b) {
		return contact.NoHit()
	}
	return contact.Hit2D(fallbackNormal, 0)
}

// Circle - Point

func intersectsCirclePoint(c Circle, p Point) bool {
	return p.Position.Sub(c.Center).LenSqr() <= c.Radius*c.Radius
}

func hitCirclePoint(c Circle, p Point) contact.HitInfo {
	return hitWithin(p.Position.Sub(c.Center), c.Radius)
}

// Circle - Circle

func intersectsCircleCircle(a, b Circle) bool {
	r := a.Radius + b.Radius
	return b.Center.Sub(a.Center).LenSqr() <= r*r
}

func hitCircleCircle(a, b Circle) contact.HitInfo {
	return hitWithin(b.Center.Sub(a.Center), a.Radius+b.Radius)
}

// Rect - Point

func intersectsRectPoint(r Rect, p Point) bool {
	d := p.Position.Sub(r.Center)
	return math.Abs(d.X()) <= r.HalfSize.X() && math.Abs(d.Y()) <= r.HalfSize.Y()
}

func hitRectPoint(r Rect, p Point) contact.HitInfo {
	if !intersectsRectPoint(r, p) {
		return contact.NoHit()
	}

	d := p.Position.Sub(r.Center)
	px := r.HalfSize.X() - math.Abs(d.X())
	py := r.HalfSize.Y() - math.Abs(d.Y())
	if px < py {
		return contact.Hit2D(mgl64.Vec2{sign(d.X()), 0}, px)
	}
	return contact.Hit2D(mgl64.Vec2{0, sign(d.Y())}, py)
}

// Rect - Rect

func intersectsRectRect(a, b Rect) bool {
	d := b.Center.Sub(a.Center)
	return math.Abs(d.X()) <= a.HalfSize.X()+b.HalfSize.X() &&
		math.Abs(d.Y()) <= a.HalfSize.Y()+b.HalfSize.Y()
}

func hitRectRect(a, b Rect) contact.HitInfo {
	d := b.Center.Sub(a.Center)
	px := a.HalfSize.X() + b.HalfSize.X() - math.Abs(d.X())
	py := a.HalfSize.Y() + b.HalfSize.Y() - math.Abs(d.Y())
	if px < 0 || py < 0 {
		return contact.NoHit()
	}

	if px < py {
		return contact.Hit2D(mgl64.Vec2{sign(d.X()), 0}, px)
	}
	return contact.Hit2D(mgl64.Vec2{0, sign(d.Y())}, py)
}

// Circle - Rect

func intersectsCircleRect(c Circle, r Rect) bool {
	closest := r.ClosestPoint(c.Center)
	return closest.Sub(c.Center).LenSqr() <= c.Radius*c.Radius
}

func hitCircleRect(c Circle, r Rect) contact.HitInfo {
	closest := r.ClosestPoint(c.Center)
	d := closest.Sub(c.Center)
	if d.LenSqr() > c.Radius*c.Radius {
		return contact.NoHit()
	}

	if !r.ContainsPoint(c.Center) {
		return hitWithin(d, c.Radius)
	}

	// Center inside: push out through the nearest face
	min, max := r.Min(), r.Max()
	faces := [4]struct {
		distance float64
		outward  mgl64.Vec2
	}{
		{c.Center.X() - min.X(), mgl64.Vec2{-1, 0}},
		{max.X() - c.Center.X(), mgl64.Vec2{1, 0}},
		{c.Center.Y() - min.Y(), mgl64.Vec2{0, -1}},
		{max.Y() - c.Center.Y(), mgl64.Vec2{0, 1}},
	}

	best := faces[0]
	for _, face := range faces[1:] {
		if face.distance < best.distance {
			best = face
		}
	}

	return contact.Hit2D(best.outward.Mul(-1), c.Radius+best.distance)
}

// Segment - Point, Segment - Circle, Segment - Segment

func intersectsSegmentPoint(s Segment, p Point, thickness float64) bool {
	return p.Position.Sub(s.ClosestPoint(p.Position)).LenSqr() <= thickness*thickness
}

func hitSegmentPoint(s Segment, p Point, thickness float64) contact.HitInfo {
	return hitWithin(p.Position.Sub(s.ClosestPoint(p.Position)), thickness)
}

func intersectsSegmentCircle(s Segment, c Circle) bool {
	return c.Center.Sub(s.ClosestPoint(c.Center)).LenSqr() <= c.Radius*c.Radius
}

func hitSegmentCircle(s Segment, c Circle) contact.HitInfo {
	return hitWithin(c.Center.Sub(s.ClosestPoint(c.Center)), c.Radius)
}

func hitSegmentSegment(a, b Segment, thickness float64) contact.HitInfo {
	onA, onB := closestPointsBetweenSegments(a, b)
	return hitWithin(onB.Sub(onA), thickness)
}

// Capsule - Point, Capsule - Circle, Capsule - Capsule, Capsule - Rect

func intersectsCapsulePoint(c Capsule, p Point) bool {
	return intersectsSegmentPoint(c.Segment(), p, c.Radius)
}

func hitCapsulePoint(c Capsule, p Point) contact.HitInfo {
	return hitSegmentPoint(c.Segment(), p, c.Radius)
}

func intersectsCapsuleCircle(c Capsule, circle Circle) bool {
	r := c.Radius + circle.Radius
	return circle.Center.Sub(c.Segment().ClosestPoint(circle.Center)).LenSqr() <= r*r
}

func hitCapsuleCircle(c Capsule, circle Circle) contact.HitInfo {
	return hitWithin(circle.Center.Sub(c.Segment().ClosestPoint(circle.Center)), c.Radius+circle.Radius)
}

func intersectsCapsuleCapsule(a, b Capsule) bool {
	onA, onB := closestPointsBetweenSegments(a.Segment(), b.Segment())
	r := a.Radius + b.Radius
	return onB.Sub(onA).LenSqr() <= r*r
}

func hitCapsuleCapsule(a, b Capsule) contact.HitInfo {
	onA, onB := closestPointsBetweenSegments(a.Segment(), b.Segment())
	return hitWithin(onB.Sub(onA), a.Radius+b.Radius)
}

func hitCapsuleRect(c Capsule, r Rect) contact.HitInfo {
	seg := c.Segment()

	if segmentCrossesRect(seg, r) {
		onSegment := seg.ClosestPoint(r.Center)
		return contact.Hit2D(normalizeSafe(r.Center.Sub(onSegment), fallbackNormal), c.Radius)
	}

	// Disjoint convex shapes: the closest pair involves a vertex of one of them
	bestOnSegment := seg.Start
	bestOnRect := r.ClosestPoint(seg.Start)
	bestD2 := bestOnRect.Sub(bestOnSegment).LenSqr()

	consider := func(onSegment, onRect mgl64.Vec2) {
		if d2 := onRect.Sub(onSegment).LenSqr(); d2 < bestD2 {
			bestD2 = d2
			bestOnSegment = onSegment
			bestOnRect = onRect
		}
	}

	consider(seg.End, r.ClosestPoint(seg.End))
	for _, corner := range r.corners() {
		consider(seg.ClosestPoint(corner), corner)
	}

	return hitWithin(bestOnRect.Sub(bestOnSegment), c.Radius)
}
