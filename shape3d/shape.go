// Package shape3d holds the 3D collision primitives and their narrow-phase tests.
package shape3d

import "github.com/go-gl/mathgl/mgl64"

// Kind represents the type of a 3D collision shape
type Kind int

const (
	KindPoint Kind = iota
	KindSphere
	KindAABB
	KindOBB
	KindPlane
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSphere:
		return "sphere"
	case KindAABB:
		return "aabb"
	case KindOBB:
		return "obb"
	case KindPlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Shape is the closed set of 3D primitives: Point, Sphere, AABB, OBB and Plane.
// Shapes are plain values expressed in world space.
type Shape interface {
	Kind() Kind
	shape3D()
}

type Point struct {
	Position mgl64.Vec3
}

func (Point) Kind() Kind { return KindPoint }
func (Point) shape3D()   {}

type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

func (Sphere) Kind() Kind { return KindSphere }
func (Sphere) shape3D()   {}

// Plane represents an infinite plane
// The plane is defined by the equation: Normal · p + Distance = 0
// where Normal is the plane's normal vector (must be normalized)
// and Distance is the signed distance from the origin along the normal
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

func (Plane) Kind() Kind { return KindPlane }
func (Plane) shape3D()   {}

// NewPlane creates the plane of the given normal going through point
func NewPlane(normal, point mgl64.Vec3) Plane {
	n := normal.Normalize()
	return Plane{
		Normal:   n,
		Distance: -n.Dot(point),
	}
}

// SignedDistance of p to the plane, positive on the side of the normal
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Distance
}
