package shape3d

import (
	"github.com/akmonengine/collision/contact"
	"github.com/akmonengine/collision/internal/dispatch"
)

// NarrowPhase tests pairs of 3D shapes.
//
// Implemented pairs with a full hit: point-point, sphere-point, sphere-sphere, aabb-point, aabb-aabb,
// sphere-aabb, plane-sphere, obb-sphere, obb-obb and aabb-obb.
// Plane-point and obb-point only report IsHit, with a zero normal and penetration.
// Plane-aabb, plane-obb and plane-plane are not implemented and never hit.
type NarrowPhase struct {
	// PlaneThickness is the distance under which a point touches a plane
	PlaneThickness float64

	table *dispatch.Table[Kind, Shape]
}

// Default is the narrow phase with exact (zero thickness) planes
var Default = NewNarrowPhase(0)

func NewNarrowPhase(planeThickness float64) *NarrowPhase {
	n := &NarrowPhase{
		PlaneThickness: planeThickness,
		table:          dispatch.NewTable[Kind, Shape](kindCount),
	}

	dispatch.Register(n.table, intersectsPointPoint, hitPointPoint)
	dispatch.Register(n.table, intersectsSpherePoint, hitSpherePoint)
	dispatch.Register(n.table, intersectsSphereSphere, hitSphereSphere)
	dispatch.Register(n.table, intersectsAABBPoint, hitAABBPoint)
	dispatch.Register(n.table, intersectsAABBAABB, hitAABBAABB)
	dispatch.Register(n.table, intersectsSphereAABB, hitSphereAABB)
	dispatch.Register[Kind, Shape, Plane, Point](n.table,
		func(pl Plane, p Point) bool { return intersectsPlanePoint(pl, p, n.PlaneThickness) },
		nil,
	)
	dispatch.Register(n.table, intersectsPlaneSphere, hitPlaneSphere)
	dispatch.Register[Kind, Shape, OBB, Point](n.table, intersectsOBBPoint, nil)
	dispatch.Register(n.table, intersectsOBBSphere, hitOBBSphere)
	dispatch.Register(n.table, intersectsOBBOBB, hitOBBOBB)
	dispatch.Register(n.table, intersectsAABBOBB, hitAABBOBB)

	return n
}

// Intersects reports whether the two shapes overlap
func (n *NarrowPhase) Intersects(a, b Shape) bool {
	return n.table.Intersects(a, b)
}

// ComputeHit returns the normal (from a toward b) and penetration of an overlap.
// Pairs without a hit computation fall back on Intersects.
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
