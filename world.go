package collision

import (
	"github.com/akmonengine/collision/config"
	"github.com/akmonengine/collision/shape2d"
	"github.com/akmonengine/collision/shape3d"
)

// Registry keeps the 2D and 3D colliders in two independent collections:
// each one has its own IDs and pair history, a 2D collider never meets a 3D one.
type Registry struct {
	Colliders2D *Collection[shape2d.Shape]
	Colliders3D *Collection[shape3d.Shape]
}

// NewRegistry creates the two collections, with the narrow-phase tolerances and capacity of cfg
func NewRegistry(cfg config.CollisionConfig, opts ...Option) *Registry {
	opts = append([]Option{WithCapacity(cfg.Capacity)}, opts...)

	return &Registry{
		Colliders2D: NewCollection[shape2d.Shape](Dimension2D, shape2d.NewNarrowPhase(cfg.SegmentThickness), opts...),
		Colliders3D: NewCollection[shape3d.Shape](Dimension3D, shape3d.NewNarrowPhase(cfg.PlaneThickness), opts...),
	}
}

// Update runs the 2D pass, then the 3D one
func (r *Registry) Update() {
	r.Colliders2D.Update()
	r.Colliders3D.Update()
}

// Clear empties both collections
func (r *Registry) Clear() {
	r.Colliders2D.Clear()
	r.Colliders3D.Clear()
}
