package fiber

import (
	"fmt"

	"go.uber.org/zap"
)

// renderPass is the state of one attempt at rendering a root on a lane. A
// failed attempt is thrown away whole.
type renderPass struct {
	r    *Reconciler
	root *RootController
	lane Lane

	workInProgress *Node
	consumed       []consumedQueue

	updateChildren *childReconciler
	mountChildren  *childReconciler
}

func (r *Reconciler) prepareFreshStack(root *RootController, lane Lane) *renderPass {
	root.finishedWork = nil
	return &renderPass{
		r:              r,
		root:           root,
		lane:           lane,
		workInProgress: cloneForWork(root.current, Props{}),
		updateChildren: &childReconciler{trackEffects: true, logger: r.logger},
		mountChildren:  &childReconciler{trackEffects: false, logger: r.logger},
	}
}

// consume records that pending was read by this pass, so the updates up to it
// can be dropped from queue once the pass commits.
func (pass *renderPass) consume(queue *updateQueue, pending *update) {
	if pending == nil {
		return
	}
	pass.consumed = append(pass.consumed, consumedQueue{queue: queue, anchor: pending})
}

func (pass *renderPass) logSkipped(skipped Lanes) {
	pass.r.logger.Warn("updates left on non rendering lanes",
		zap.String("root", pass.root.id),
		zap.Stringer("renderLane", pass.lane),
		zap.Stringer("skipped", skipped),
	)
}

// workLoop runs units of work until the tree is complete. Panics raised by
// components or hooks end the pass as errors.
func (pass *renderPass) workLoop() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if usageErr, ok := rec.(*UsageError); ok {
				err = usageErr
				return
			}
			err = &PanicError{Value: rec}
		}
	}()

	for pass.workInProgress != nil {
		if err := pass.performUnitOfWork(pass.workInProgress); err != nil {
			return err
		}
	}
	return nil
}

func (pass *renderPass) performUnitOfWork(n *Node) error {
	next, err := pass.beginWork(n)
	if err != nil {
		return err
	}
	n.memoizedProps = n.pendingProps
	if next == nil {
		pass.completeUnitOfWork(n)
	} else {
		pass.workInProgress = next
	}
	return nil
}

func (pass *renderPass) completeUnitOfWork(n *Node) {
	node := n
	for node != nil {
		pass.completeWork(node)
		if sibling := node.sibling; sibling != nil {
			pass.workInProgress = sibling
			return
		}
		node = node.parent
		pass.workInProgress = node
	}
}

// renderRoot builds a finished tree for lane. Usage errors are returned as is,
// other failures are retried on a fresh stack up to maxRenderRetries times.
func (r *Reconciler) renderRoot(root *RootController, lane Lane) (*renderPass, error) {
	prev, prevRoot := r.executionContext, r.workInProgressRoot
	r.executionContext |= renderContext
	r.workInProgressRoot = root
	defer func() {
		r.executionContext = prev
		r.workInProgressRoot = prevRoot
	}()

	for attempt := 1; ; attempt++ {
		pass := r.prepareFreshStack(root, lane)
		err := pass.workLoop()
		if err == nil {
			root.finishedWork = root.current.alternate
			return pass, nil
		}
		if IsUsageError(err) {
			r.logger.Error("render pass aborted",
				zap.String("root", root.id),
				zap.Error(err),
			)
			return nil, err
		}
		r.logger.Warn("render pass failed",
			zap.String("root", root.id),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt > r.maxRenderRetries {
			return nil, &RenderError{Attempts: attempt, Err: err}
		}
	}
}

func (r *Reconciler) performSyncWorkOnRoot(root *RootController) error {
	lane := getHighestPriorityLane(root.pendingLanes)
	if lane != SyncLane {
		// only non sync lanes left, or the root was stopped
		return nil
	}

	pass, err := r.renderRoot(root, lane)
	if err != nil {
		return fmt.Errorf("root %s: %w", root.id, err)
	}
	r.commitRoot(root, pass)
	return r.checkNestedUpdates(root)
}

func (r *Reconciler) commitRoot(root *RootController, pass *renderPass) {
	finishedWork := root.finishedWork
	if finishedWork == nil {
		return
	}
	root.finishedWork = nil

	prev := r.executionContext
	r.executionContext |= commitContext
	if (finishedWork.subtreeFlags|finishedWork.flags)&MutationMask != NoFlags {
		c := &committer{host: r.host, logger: r.logger, root: root}
		c.commitMutationEffects(finishedWork)
	}
	root.current = finishedWork
	r.executionContext = prev

	markRootFinished(root, pass.lane)
	for _, consumed := range pass.consumed {
		consumed.queue.commitConsumed(consumed.anchor, pass.lane)
	}
	root.commits++

	r.logger.Debug("committed",
		zap.String("root", root.id),
		zap.Stringer("lane", pass.lane),
		zap.Uint64("commits", root.commits),
		zap.Stringer("pending", root.pendingLanes),
	)
}

// checkNestedUpdates stops a root that keeps scheduling sync work from its
// own passes.
func (r *Reconciler) checkNestedUpdates(root *RootController) error {
	if root.pendingLanes&SyncLane == NoLanes {
		r.nestedUpdateCount = 0
		r.rootWithNestedUpdates = nil
		return nil
	}
	if root != r.rootWithNestedUpdates {
		r.nestedUpdateCount = 0
		r.rootWithNestedUpdates = root
	}
	r.nestedUpdateCount++
	if r.nestedUpdateCount <= r.nestedUpdateLimit {
		return nil
	}

	r.nestedUpdateCount = 0
	r.rootWithNestedUpdates = nil
	root.pendingLanes &^= SyncLane
	return fmt.Errorf("root %s: %w", root.id,
		usageErrorf(ErrTooManyNestedUpdates, "more than %d consecutive passes scheduled sync work", r.nestedUpdateLimit),
	)
}
