package fiber

// Reducer computes the next state from the previous one. It must be pure, it
// may run more than once for the same update if a pass is retried.
type Reducer func(prev any) any

type update struct {
	value   any
	reducer Reducer
	lane    Lane
	next    *update
}

func createUpdate(value any, reducer Reducer, lane Lane) *update {
	return &update{value: value, reducer: reducer, lane: lane}
}

func (u *update) apply(prev any) any {
	if u.reducer != nil {
		return u.reducer(prev)
	}
	return u.value
}

// updateQueue is a circular list, pending is the newest update and
// pending.next the oldest.
type updateQueue struct {
	pending *update
	// setter handed out by the owning hook, kept so every render returns the
	// same one.
	dispatch any
}

func createUpdateQueue() *updateQueue {
	return &updateQueue{}
}

func enqueueUpdate(q *updateQueue, u *update) {
	pending := q.pending
	if pending == nil {
		u.next = u
	} else {
		u.next = pending.next
		pending.next = u
	}
	q.pending = u
}

// processUpdateQueue folds every update on renderLane into base, oldest first.
// Updates on other lanes are left alone and reported in skipped.
func processUpdateQueue(base any, pending *update, renderLane Lane) (state any, skipped Lanes) {
	state = base
	if pending == nil {
		return state, NoLanes
	}
	first := pending.next
	u := first
	for {
		if u.lane == renderLane {
			state = u.apply(state)
		} else {
			skipped = mergeLanes(skipped, u.lane)
		}
		u = u.next
		if u == first {
			break
		}
	}
	return state, skipped
}

// commitConsumed removes the updates a committed pass applied: everything
// from the oldest update up to consumed that was on lane. Updates enqueued
// after consumed, and skipped ones, stay in order.
func (q *updateQueue) commitConsumed(consumed *update, lane Lane) {
	if consumed == nil || q.pending == nil {
		return
	}

	var keep []*update
	u := q.pending.next
	for {
		next := u.next
		if u.lane != lane {
			keep = append(keep, u)
		}
		if u == consumed {
			u = next
			break
		}
		u = next
	}
	if q.pending != consumed {
		for {
			keep = append(keep, u)
			if u == q.pending {
				break
			}
			u = u.next
		}
	}

	q.pending = nil
	for _, k := range keep {
		enqueueUpdate(q, k)
	}
}

type consumedQueue struct {
	queue  *updateQueue
	anchor *update
}
