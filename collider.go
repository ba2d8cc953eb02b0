package collision

import (
	"github.com/akmonengine/collision/contact"
	"github.com/akmonengine/collision/shape2d"
	"github.com/akmonengine/collision/shape3d"
)

// ColliderID is the handle of a collider in a Collection.
// IDs start at 1 and are never reused by the same collection.
type ColliderID uint32

// InvalidID is never assigned to a collider
const InvalidID ColliderID = 0

// Callback receives the hit of a pair, its normal pointing from the receiving collider toward the other one
type Callback func(hit contact.HitInfo)

// ColliderInfo describes a collider: its world-space shape, its attributes and its callbacks
type ColliderInfo[S any] struct {
	Shape S
	// Attribute is what the collider is
	Attribute Attribute
	// IgnoreAttribute is what the collider refuses to collide with
	IgnoreAttribute Attribute
	// Enabled colliders only take part in the tests
	Enabled bool

	OnCollisionEnter Callback
	OnCollisionStay  Callback
	OnCollisionExit  Callback

	// Owner is an opaque back-reference to the game object owning the collider
	Owner any
}

// NewColliderInfo returns an enabled collider of the given shape, with no attribute
func NewColliderInfo[S any](shape S) ColliderInfo[S] {
	return ColliderInfo[S]{
		Shape:   shape,
		Enabled: true,
	}
}

type (
	Collider2D = ColliderInfo[shape2d.Shape]
	Collider3D = ColliderInfo[shape3d.Shape]
)

func NewCollider2D(shape shape2d.Shape) Collider2D {
	return NewColliderInfo(shape)
}

func NewCollider3D(shape shape3d.Shape) Collider3D {
	return NewColliderInfo(shape)
}

// HitPair is an overlapping pair reported by CheckAll, A being the collider registered first
type HitPair struct {
	A ColliderID
	B ColliderID
}

// Key returns the pair key of the pair
func (p HitPair) Key() PairKey {
	return MakePairKey(p.A, p.B)
}
