// Package contact holds the result of a narrow-phase test between two shapes.
package contact

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HitInfo is produced by a narrow-phase test.
// Normal points from the first shape toward the second one. 2D tests leave Z at 0.
// Pairs that only have an intersection predicate report IsHit with a zero Normal and Penetration.
type HitInfo struct {
	IsHit       bool
	Normal      mgl64.Vec3
	Penetration float64
}

// NoHit returns an empty result
func NoHit() HitInfo {
	return HitInfo{}
}

// Hit builds a positive result, penetration is clamped to zero
func Hit(normal mgl64.Vec3, penetration float64) HitInfo {
	return HitInfo{
		IsHit:       true,
		Normal:      normal,
		Penetration: math.Max(0, penetration),
	}
}

// Hit2D is Hit for a 2D normal
func Hit2D(normal mgl64.Vec2, penetration float64) HitInfo {
	return Hit(normal.Vec3(0), penetration)
}

// Flip reverses the normal of a positive result, used when the shape order is swapped.
func (h HitInfo) Flip() HitInfo {
	if h.IsHit {
		h.Normal = h.Normal.Mul(-1)
	}
	return h
}
