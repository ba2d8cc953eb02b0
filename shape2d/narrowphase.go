package shape2d

import (
	"github.com/akmonengine/collision/contact"
	"github.com/akmonengine/collision/internal/dispatch"
)

// NarrowPhase tests pairs of 2D shapes.
//
// Implemented pairs: point-point, circle-point, circle-circle, rect-point, rect-rect, circle-rect,
// segment-point, segment-circle, segment-segment, capsule-point, capsule-circle, capsule-capsule
// and capsule-rect. Segment-rect and segment-capsule are not implemented and never hit.
type NarrowPhase struct {
	// SegmentThickness is the distance under which a bare segment touches a point or another segment
	SegmentThickness float64

	table *dispatch.Table[Kind, Shape]
}

// Default is the narrow phase with exact (zero thickness) segments
var Default = NewNarrowPhase(0)

func NewNarrowPhase(segmentThickness float64) *NarrowPhase {
	n := &NarrowPhase{
		SegmentThickness: segmentThickness,
		table:            dispatch.NewTable[Kind, Shape](kindCount),
	}

	dispatch.Register(n.table, intersectsPointPoint, hitPointPoint)
	dispatch.Register(n.table, intersectsCirclePoint, hitCirclePoint)
	dispatch.Register(n.table, intersectsCircleCircle, hitCircleCircle)
	dispatch.Register(n.table, intersectsRectPoint, hitRectPoint)
	dispatch.Register(n.table, intersectsRectRect, hitRectRect)
	dispatch.Register(n.table, intersectsCircleRect, hitCircleRect)
	dispatch.Register(n.table,
		func(s Segment, p Point) bool { return intersectsSegmentPoint(s, p, n.SegmentThickness) },
		func(s Segment, p Point) contact.HitInfo { return hitSegmentPoint(s, p, n.SegmentThickness) },
	)
	dispatch.Register(n.table, intersectsSegmentCircle, hitSegmentCircle)
	dispatch.Register(n.table,
		func(a, b Segment) bool { return hitSegmentSegment(a, b, n.SegmentThickness).IsHit },
		func(a, b Segment) contact.HitInfo { return hitSegmentSegment(a, b, n.SegmentThickness) },
	)
	dispatch.Register(n.table, intersectsCapsulePoint, hitCapsulePoint)
	dispatch.Register(n.table, intersectsCapsuleCircle, hitCapsuleCircle)
	dispatch.Register(n.table, intersectsCapsuleCapsule, hitCapsuleCapsule)
	dispatch.Register(n.table,
		func(c Capsule, r Rect) bool { return hitCapsuleRect(c, r).IsHit },
		hitCapsuleRect,
	)

	return n
}

// Intersects reports whether the two shapes overlap
func (n *NarrowPhase) Intersects(a, b Shape) bool {
	return n.table.Intersects(a, b)
}

// ComputeHit returns the normal (from a toward b) and penetration of an overlap
func (n *NarrowPhase) ComputeHit(a, b Shape) contact.HitInfo {
	return n.table.ComputeHit(a, b)
}

// Supports reports whether the pair has a narrow-phase test at all
func (n *NarrowPhase) Supports(a, b Shape) bool {
	return n.table.Supports(a, b)
}

// HasComputeHit reports whether the pair yields a normal and a penetration
func (n *NarrowPhase) HasComputeHit(a, b Shape) bool {
	return n.table.HasComputeHit(a, b)
}

// Intersects uses the Default narrow phase
func Intersects(a, b Shape) bool {
	return Default.Intersects(a, b)
}

// ComputeHit uses the Default narrow phase
func ComputeHit(a, b Shape) contact.HitInfo {
	return Default.ComputeHit(a, b)
}
