package collision

import (
	"fmt"
	"slices"
	"time"

	"github.com/akmonengine/collision/contact"
	"go.uber.org/zap"
)

// NarrowPhase is the geometry a Collection relies on, shape2d.NarrowPhase and shape3d.NarrowPhase being the two implementations
type NarrowPhase[S any] interface {
	Intersects(a, b S) bool
	ComputeHit(a, b S) contact.HitInfo
	Supports(a, b S) bool
}

type entry[S any] struct {
	id   ColliderID
	info ColliderInfo[S]
}

// Collection owns the colliders of one dimension, and tracks which pairs overlapped during the previous Update.
//
// A Collection is not safe for concurrent use. Update is expected once per frame, after the world-space shapes
// have been refreshed with UpdateColliderInfo.
// Mutations made from a callback during Update (Add, Remove, Clear, UpdateColliderInfo, SetEnabled) are queued,
// and applied in order once the pass is over.
type Collection[S any] struct {
	dimension Dimension
	narrow    NarrowPhase[S]

	entries []entry[S]
	nextID  ColliderID
	history pairHistory

	updating bool
	pending  pendingQueue

	// shape type pairs already reported as unsupported
	unsupported map[string]struct{}

	logger  *zap.Logger
	metrics Metrics
}

func NewCollection[S any](dimension Dimension, narrow NarrowPhase[S], opts ...Option) *Collection[S] {
	o := newOptions(opts)

	return &Collection[S]{
		dimension:   dimension,
		narrow:      narrow,
		entries:     make([]entry[S], 0, o.capacity),
		nextID:      InvalidID + 1,
		history:     newPairHistory(o.capacity),
		pending:     newPendingQueue(),
		unsupported: make(map[string]struct{}),
		logger:      o.logger.With(zap.String("dimension", string(dimension))),
		metrics:     o.metrics,
	}
}

// Add registers a collider and returns its ID
func (c *Collection[S]) Add(info ColliderInfo[S]) ColliderID {
	id := c.nextID
	c.nextID++

	if c.updating {
		c.pending.revive(id)
		c.pending.push(func() { c.add(id, info) })
		c.logger.Debug("collider add queued", zap.Uint32("id", uint32(id)))
		return id
	}

	c.add(id, info)
	return id
}

func (c *Collection[S]) add(id ColliderID, info ColliderInfo[S]) {
	c.entries = append(c.entries, entry[S]{id: id, info: info})
	c.logger.Debug("collider added", zap.Uint32("id", uint32(id)))
	c.metrics.SetColliders(c.dimension, len(c.entries))
}

// Remove unregisters a collider, false if the ID is unknown
func (c *Collection[S]) Remove(id ColliderID) bool {
	if c.updating {
		if !c.live(id) {
			return false
		}
		c.pending.kill(id)
		c.pending.push(func() { c.remove(id) })
		c.logger.Debug("collider remove queued", zap.Uint32("id", uint32(id)))
		return true
	}

	return c.remove(id)
}

func (c *Collection[S]) remove(id ColliderID) bool {
	k := c.indexOf(id)
	if k == -1 {
		return false
	}

	c.entries = slices.Delete(c.entries, k, k+1)
	c.logger.Debug("collider removed", zap.Uint32("id", uint32(id)))
	c.metrics.SetColliders(c.dimension, len(c.entries))
	return true
}

// Clear removes every collider together with the pair history, so that nothing stale survives.
// IDs keep increasing after a Clear.
func (c *Collection[S]) Clear() {
	if c.updating {
		c.pending.killAll()
		c.pending.push(c.clear)
		c.logger.Debug("clear queued")
		return
	}

	c.clear()
}

func (c *Collection[S]) clear() {
	c.entries = c.entries[:0]
	c.history.reset()
	c.logger.Debug("colliders cleared")
	c.metrics.SetColliders(c.dimension, 0)
}

// UpdateColliderInfo replaces the shape, attributes and enabled state of a collider.
// Callbacks and owner are only replaced when the new info sets them.
func (c *Collection[S]) UpdateColliderInfo(id ColliderID, info ColliderInfo[S]) bool {
	if c.updating {
		if !c.live(id) {
			return false
		}
		c.pending.push(func() { c.updateInfo(id, info) })
		return true
	}

	return c.updateInfo(id, info)
}

func (c *Collection[S]) updateInfo(id ColliderID, info ColliderInfo[S]) bool {
	k := c.indexOf(id)
	if k == -1 {
		return false
	}

	current := &c.entries[k].info
	current.Shape = info.Shape
	current.Attribute = info.Attribute
	current.IgnoreAttribute = info.IgnoreAttribute
	current.Enabled = info.Enabled
	if info.OnCollisionEnter != nil {
		current.OnCollisionEnter = info.OnCollisionEnter
	}
	if info.OnCollisionStay != nil {
		current.OnCollisionStay = info.OnCollisionStay
	}
	if info.OnCollisionExit != nil {
		current.OnCollisionExit = info.OnCollisionExit
	}
	if info.Owner != nil {
		current.Owner = info.Owner
	}

	return true
}

// SetEnabled toggles a collider. A disabled collider is skipped by every test,
// its overlaps are forgotten without any exit callback.
func (c *Collection[S]) SetEnabled(id ColliderID, enabled bool) bool {
	if c.updating {
		if !c.live(id) {
			return false
		}
		c.pending.push(func() { c.setEnabled(id, enabled) })
		return true
	}

	return c.setEnabled(id, enabled)
}

func (c *Collection[S]) setEnabled(id ColliderID, enabled bool) bool {
	k := c.indexOf(id)
	if k == -1 {
		return false
	}

	c.entries[k].info.Enabled = enabled
	return true
}

// Info returns a copy of the collider's info.
// During Update, queued mutations are not visible yet.
func (c *Collection[S]) Info(id ColliderID) (ColliderInfo[S], bool) {
	k := c.indexOf(id)
	if k == -1 {
		var zero ColliderInfo[S]
		return zero, false
	}

	return c.entries[k].info, true
}

// Len is the number of registered colliders
func (c *Collection[S]) Len() int {
	return len(c.entries)
}

// CheckAll returns every overlapping pair, without any callback nor history
func (c *Collection[S]) CheckAll() []HitPair {
	var pairs []HitPair
	c.eachCandidate(func(a, b *entry[S]) {
		if c.narrow.Intersects(a.info.Shape, b.info.Shape) {
			pairs = append(pairs, HitPair{A: a.id, B: b.id})
		}
	})

	return pairs
}

// Check tests a single pair, without any callback nor history.
// False when an ID is unknown, a collider is disabled or the attributes filter the pair out.
func (c *Collection[S]) Check(a, b ColliderID) bool {
	if a == b {
		return false
	}

	i, j := c.indexOf(a), c.indexOf(b)
	if i == -1 || j == -1 {
		return false
	}

	ea, eb := &c.entries[i], &c.entries[j]
	if !candidates(ea, eb) {
		return false
	}

	return c.narrow.Intersects(ea.info.Shape, eb.info.Shape)
}

// Update tests every pair and dispatches the callbacks:
// enter when the pair starts overlapping, stay on every overlapping frame (the first one included),
// exit when a pair that overlapped during the previous Update does not anymore.
// On each event, the first registered collider is called back before the second one.
func (c *Collection[S]) Update() {
	if c.updating {
		c.logger.Warn("update called from a collision callback, ignored")
		return
	}

	start := time.Now()
	c.updating = true
	defer c.endUpdate()

	// leftovers of a pass interrupted by a panicking callback
	c.history.discardCurrent()

	tested, hits := 0, 0
	c.eachCandidate(func(a, b *entry[S]) {
		tested++

		hit := c.computeHit(a.info.Shape, b.info.Shape)
		key := MakePairKey(a.id, b.id)
		c.dispatch(a, b, hit, c.history.wasHit(key))

		if hit.IsHit {
			hits++
			c.history.record(key)
		}
	})
	c.history.swap()

	c.metrics.ObserveUpdate(c.dimension, tested, hits, time.Since(start))
}

// endUpdate leaves the pass, even when a callback panicked, and applies the queued mutations
func (c *Collection[S]) endUpdate() {
	c.updating = false
	c.flushPending()
}

// eachCandidate calls fn for every pair of enabled colliders passing the attributes filter, in registration order
func (c *Collection[S]) eachCandidate(fn func(a, b *entry[S])) {
	for i := range c.entries {
		a := &c.entries[i]
		if !a.info.Enabled {
			continue
		}

		for j := i + 1; j < len(c.entries); j++ {
			b := &c.entries[j]
			if candidates(a, b) {
				fn(a, b)
			}
		}
	}
}

func candidates[S any](a, b *entry[S]) bool {
	return a.info.Enabled && b.info.Enabled &&
		CanCollide(a.info.Attribute, a.info.IgnoreAttribute, b.info.Attribute, b.info.IgnoreAttribute)
}

func (c *Collection[S]) computeHit(a, b S) contact.HitInfo {
	if !c.narrow.Supports(a, b) {
		c.reportUnsupported(a, b)
		return contact.NoHit()
	}

	return c.narrow.ComputeHit(a, b)
}

func (c *Collection[S]) reportUnsupported(a, b S) {
	pair := fmt.Sprintf("%T/%T", a, b)
	if _, ok := c.unsupported[pair]; ok {
		return
	}

	c.unsupported[pair] = struct{}{}
	c.logger.Debug("no narrow phase for shape pair, treated as no hit", zap.String("pair", pair))
}

// dispatch calls back both colliders with the same hit, its normal pointing from a toward b
func (c *Collection[S]) dispatch(a, b *entry[S], hit contact.HitInfo, wasHit bool) {
	if hit.IsHit && !wasHit {
		c.metrics.IncEvent(c.dimension, EventEnter)
		invoke(a.info.OnCollisionEnter, hit)
		invoke(b.info.OnCollisionEnter, hit)
	}

	if hit.IsHit {
		c.metrics.IncEvent(c.dimension, EventStay)
		invoke(a.info.OnCollisionStay, hit)
		invoke(b.info.OnCollisionStay, hit)
	}

	if !hit.IsHit && wasHit {
		c.metrics.IncEvent(c.dimension, EventExit)
		invoke(a.info.OnCollisionExit, hit)
		invoke(b.info.OnCollisionExit, hit)
	}
}

func invoke(callback Callback, hit contact.HitInfo) {
	if callback != nil {
		callback(hit)
	}
}

func (c *Collection[S]) indexOf(id ColliderID) int {
	return slices.IndexFunc(c.entries, func(e entry[S]) bool {
		return e.id == id
	})
}

// live reports whether id names a collider once the queued mutations are applied
func (c *Collection[S]) live(id ColliderID) bool {
	if alive, ok := c.pending.alive[id]; ok {
		return alive
	}

	return !c.pending.cleared && c.indexOf(id) != -1
}

func (c *Collection[S]) flushPending() {
	if len(c.pending.ops) > 0 {
		c.logger.Debug("applying queued mutations", zap.Int("count", len(c.pending.ops)))
	}

	c.pending.drain()
}
