// Package dispatch implements the double dispatch over two shape kinds used by the narrow phases.
//
// Every unordered pair of kinds is registered once. The reverse order is derived by swapping the
// arguments, and for hit computations by flipping the resulting normal, so the geometry of a pair
// never lives in two places.
package dispatch

import (
	"reflect"

	"github.com/akmonengine/collision/contact"
)

// Shape is anything tagged with a kind, K being the kind enumeration of a shape family
type Shape[K ~int] interface {
	Kind() K
}

type algorithm[S any] struct {
	intersects func(a, b S) bool
	// nil when the pair only has an intersection predicate
	computeHit func(a, b S) contact.HitInfo
}

// Table maps (kind A, kind B) to the algorithms testing that pair.
// Unregistered pairs degrade to "no hit", they are never an error.
type Table[K ~int, S Shape[K]] struct {
	count K
	pairs [][]*algorithm[S]
}

// NewTable creates an empty table for kinds in [0, count)
func NewTable[K ~int, S Shape[K]](count K) *Table[K, S] {
	pairs := make([][]*algorithm[S], count)
	for i := range pairs {
		pairs[i] = make([]*algorithm[S], count)
	}

	return &Table[K, S]{
		count: count,
		pairs: pairs,
	}
}

// Register installs the algorithms of the pair (A, B), and the swapped pair (B, A) when A and B differ.
// hit may be nil: ComputeHit then only reports IsHit, with a zero normal and penetration.
func Register[K ~int, S Shape[K], A Shape[K], B Shape[K]](t *Table[K, S], test func(a A, b B) bool, hit func(a A, b B) contact.HitInfo) {
	var zeroA A
	var zeroB B
	kindA, kindB := zeroA.Kind(), zeroB.Kind()

	forward := &algorithm[S]{
		intersects: func(a, b S) bool {
			return test(cast[A](a), cast[B](b))
		},
	}
	if hit != nil {
		forward.computeHit = func(a, b S) contact.HitInfo {
			return hit(cast[A](a), cast[B](b))
		}
	}
	t.pairs[kindA][kindB] = forward

	if kindA == kindB {
		return
	}

	reverse := &algorithm[S]{
		intersects: func(b, a S) bool {
			return test(cast[A](a), cast[B](b))
		},
	}
	if hit != nil {
		reverse.computeHit = func(b, a S) contact.HitInfo {
			return hit(cast[A](a), cast[B](b)).Flip()
		}
	}
	t.pairs[kindB][kindA] = reverse
}

func (t *Table[K, S]) lookup(a, b S) *algorithm[S] {
	if isNil(a) || isNil(b) {
		return nil
	}

	kindA, kindB := a.Kind(), b.Kind()
	if kindA < 0 || kindA >= t.count || kindB < 0 || kindB >= t.count {
		return nil
	}

	return t.pairs[kindA][kindB]
}

// Supports reports whether the pair of shapes has a registered algorithm
func (t *Table[K, S]) Supports(a, b S) bool {
	return t.lookup(a, b) != nil
}

// HasComputeHit reports whether the pair of shapes yields a normal and a penetration
func (t *Table[K, S]) HasComputeHit(a, b S) bool {
	alg := t.lookup(a, b)
	return alg != nil && alg.computeHit != nil
}

// Intersects is the boolean predicate, false for unregistered pairs
func (t *Table[K, S]) Intersects(a, b S) bool {
	alg := t.lookup(a, b)
	if alg == nil {
		return false
	}

	return alg.intersects(a, b)
}

// ComputeHit returns the full hit when the pair has one, falls back on the predicate otherwise.
func (t *Table[K, S]) ComputeHit(a, b S) contact.HitInfo {
	alg := t.lookup(a, b)
	if alg == nil {
		return contact.NoHit()
	}
	if alg.computeHit != nil {
		return alg.computeHit(a, b)
	}

	return contact.HitInfo{IsHit: alg.intersects(a, b)}
}

// isNil catches nil interfaces and typed nil pointers, whose Kind would dereference nil
func isNil(s any) bool {
	if s == nil {
		return true
	}

	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// cast accepts both a shape value and a pointer to it
func cast[T any](s any) T {
	switch v := s.(type) {
	case T:
		return v
	case *T:
		if v != nil {
			return *v
		}
	}

	var zero T
	return zero
}
