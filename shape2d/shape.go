// Package shape2d holds the 2D collision primitives and their narrow-phase tests.
package shape2d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind represents the type of a 2D collision shape
type Kind int

const (
	KindPoint Kind = iota
	KindCircle
	KindRect
	KindSegment
	KindCapsule
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	case KindSegment:
		return "segment"
	case KindCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}

// Shape is the closed set of 2D primitives: Point, Circle, Rect, Segment and Capsule.
// Shapes are plain values expressed in world space.
type Shape interface {
	Kind() Kind
	shape2D()
}

type Point struct {
	Position mgl64.Vec2
}

func (Point) Kind() Kind { return KindPoint }
func (Point) shape2D()   {}

type Circle struct {
	Center mgl64.Vec2
	Radius float64
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) shape2D()   {}

// Rect is an axis-aligned rectangle defined by its center and half size
type Rect struct {
	Center   mgl64.Vec2
	HalfSize mgl64.Vec2
}

func (Rect) Kind() Kind { return KindRect }
func (Rect) shape2D()   {}

// NewRectMinMax creates a rectangle from two opposite corners
func NewRectMinMax(min, max mgl64.Vec2) Rect {
	return Rect{
		Center:   min.Add(max).Mul(0.5),
		HalfSize: max.Sub(min).Mul(0.5),
	}
}

func (r Rect) Min() mgl64.Vec2 {
	return r.Center.Sub(r.HalfSize)
}

func (r Rect) Max() mgl64.Vec2 {
	return r.Center.Add(r.HalfSize)
}

// ContainsPoint checks if a point is inside the rectangle, borders included
func (r Rect) ContainsPoint(p mgl64.Vec2) bool {
	min, max := r.Min(), r.Max()
	return p.X() >= min.X() && p.X() <= max.X() &&
		p.Y() >= min.Y() && p.Y() <= max.Y()
}

// ClosestPoint clamps p into the rectangle
func (r Rect) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	min, max := r.Min(), r.Max()
	return mgl64.Vec2{
		mgl64.Clamp(p.X(), min.X(), max.X()),
		mgl64.Clamp(p.Y(), min.Y(), max.Y()),
	}
}

func (r Rect) corners() [4]mgl64.Vec2 {
	min, max := r.Min(), r.Max()
	return [4]mgl64.Vec2{
		{min.X(), min.Y()},
		{max.X(), min.Y()},
		{max.X(), max.Y()},
		{min.X(), max.Y()},
	}
}

type Segment struct {
	Start mgl64.Vec2
	End   mgl64.Vec2
}

func (Segment) Kind() Kind { return KindSegment }
func (Segment) shape2D()   {}

// ClosestPoint projects p on the segment, the parameter being clamped to [0, 1].
// A degenerate segment returns its start.
func (s Segment) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	ab := s.End.Sub(s.Start)
	denom := ab.Dot(ab)
	if denom == 0 {
		return s.Start
	}

	t := clamp01(p.Sub(s.Start).Dot(ab) / denom)
	return s.Start.Add(ab.Mul(t))
}

// Capsule is a segment swept by a circle of Radius
type Capsule struct {
	Start  mgl64.Vec2
	End    mgl64.Vec2
	Radius float64
}

func (Capsule) Kind() Kind { return KindCapsule }
func (Capsule) shape2D()   {}

// Segment returns the core segment of the capsule
func (c Capsule) Segment() Segment {
	return Segment{Start: c.Start, End: c.End}
}

func clamp01(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}
