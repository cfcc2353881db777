package fiber

import "errors"

type syncTaskQueue struct {
	callbacks []func() error
	flushing  bool
}

func (q *syncTaskQueue) schedule(cb func() error) {
	q.callbacks = append(q.callbacks, cb)
}

func (q *syncTaskQueue) len() int {
	return len(q.callbacks)
}

// flush runs queued callbacks until the queue is empty, including ones queued
// by the callbacks themselves. A nested flush is a no-op.
func (q *syncTaskQueue) flush() error {
	if q.flushing || len(q.callbacks) == 0 {
		return nil
	}
	q.flushing = true
	defer func() {
		q.flushing = false
	}()

	var errs []error
	for len(q.callbacks) > 0 {
		batch := q.callbacks
		q.callbacks = nil
		for _, cb := range batch {
			if err := cb(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
