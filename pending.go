package collision

// pendingQueue holds the mutations requested while a Collection is updating
type pendingQueue struct {
	ops []func()

	// liveness of the IDs touched by the queued operations
	alive map[ColliderID]bool
	// a Clear is queued, every collider known before it is gone
	cleared bool
}

func newPendingQueue() pendingQueue {
	return pendingQueue{
		alive: make(map[ColliderID]bool),
	}
}

func (q *pendingQueue) push(op func()) {
	q.ops = append(q.ops, op)
}

func (q *pendingQueue) revive(id ColliderID) {
	q.alive[id] = true
}

func (q *pendingQueue) kill(id ColliderID) {
	q.alive[id] = false
}

func (q *pendingQueue) killAll() {
	clear(q.alive)
	q.cleared = true
}

// drain applies the operations in the order they were queued
func (q *pendingQueue) drain() {
	for i := 0; i < len(q.ops); i++ {
		q.ops[i]()
		q.ops[i] = nil
	}

	q.ops = q.ops[:0]
	clear(q.alive)
	q.cleared = false
}
