package fiber

import "go.uber.org/zap"

const defaultNestedUpdateLimit = 50

// OnErrorFunc receives errors from flushes the reconciler started on its own,
// from a host microtask. Flushes started by Batch or FlushSync return their
// errors instead.
type OnErrorFunc func(err error)

type Option func(*Reconciler)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithOnError(onError OnErrorFunc) Option {
	return func(r *Reconciler) {
		if onError != nil {
			r.onError = onError
		}
	}
}

// WithMaxRenderRetries sets how many times a failed render pass is restarted
// from a fresh stack before giving up. Usage errors are never retried.
func WithMaxRenderRetries(n int) Option {
	return func(r *Reconciler) {
		if n >= 0 {
			r.maxRenderRetries = n
		}
	}
}

// WithNestedUpdateLimit bounds how many consecutive passes on one root may
// schedule further sync work before the root is stopped with
// ErrTooManyNestedUpdates.
func WithNestedUpdateLimit(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.nestedUpdateLimit = n
		}
	}
}

// Reconciler drives render and commit passes for any number of roots against
// one host. It is not safe for concurrent use.
type Reconciler struct {
	host              HostConfig
	logger            *zap.Logger
	onError           OnErrorFunc
	maxRenderRetries  int
	nestedUpdateLimit int

	syncQueue        syncTaskQueue
	executionContext executionContext
	batchDepth       int
	flushScheduled   bool

	// root whose render pass is running, nil outside of render
	workInProgressRoot *RootController

	nestedUpdateCount     int
	rootWithNestedUpdates *RootController
}

func CreateReconciler(host HostConfig, opts ...Option) *Reconciler {
	r := &Reconciler{
		host:              host,
		logger:            zap.NewNop(),
		nestedUpdateLimit: defaultNestedUpdateLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.onError == nil {
		r.onError = func(err error) {
			r.logger.Error("flush failed", zap.Error(err))
		}
	}
	return r
}

func (r *Reconciler) Host() HostConfig { return r.host }

// CreateRootController creates an empty root rendering into container.
func (r *Reconciler) CreateRootController(container Container) *RootController {
	root := newRootController(container)
	r.logger.Debug("root created", zap.String("root", root.id))
	return root
}

// RenderIntoController schedules element to become the content of root. The
// tree is rendered when the sync queue is next flushed.
func (r *Reconciler) RenderIntoController(element any, root *RootController) error {
	if root == nil {
		return usageErrorf(ErrNoRoot, "render into a nil root controller")
	}
	lane := requestUpdateLane()
	enqueueUpdate(root.current.updateQueue, createUpdate(element, nil, lane))
	return r.ScheduleUpdateOnInstance(root.current, lane)
}

// ScheduleUpdateOnInstance marks lane pending on the root n belongs to and
// makes sure the root gets worked on. Updates on detached nodes are dropped.
func (r *Reconciler) ScheduleUpdateOnInstance(n *Node, lane Lane) error {
	root := markUpdateFromNodeToRoot(n)
	if root == nil {
		r.logger.Warn("update scheduled on a detached node, dropping it",
			zap.Stringer("lane", lane),
		)
		return usageErrorf(ErrNoRoot, "scheduling %v", lane)
	}
	markRootUpdated(root, lane)
	if root == r.workInProgressRoot {
		root.interleavedLanes = mergeLanes(root.interleavedLanes, lane)
	}
	r.ensureRootIsScheduled(root)
	return nil
}

func markUpdateFromNodeToRoot(n *Node) *RootController {
	node := n
	for node != nil {
		if node.tag == HostRoot {
			root, _ := node.stateNode.(*RootController)
			return root
		}
		node = node.parent
	}
	return nil
}

// ensureRootIsScheduled queues at most one sync callback per root. Further
// dispatches before it runs are picked up by the same pass.
func (r *Reconciler) ensureRootIsScheduled(root *RootController) {
	lane := getHighestPriorityLane(root.pendingLanes)
	switch lane {
	case NoLane:
		return
	case SyncLane:
		if !root.callbackScheduled {
			root.callbackScheduled = true
			r.syncQueue.schedule(func() error {
				root.callbackScheduled = false
				return r.performSyncWorkOnRoot(root)
			})
		}
		r.scheduleFlush()
	default:
		r.logger.Debug("lane is not executed synchronously",
			zap.String("root", root.id),
			zap.Stringer("lane", lane),
		)
	}
}

func (r *Reconciler) scheduleFlush() {
	if r.batchDepth > 0 || r.flushScheduled {
		return
	}
	r.flushScheduled = true
	r.host.ScheduleMicroTask(func() {
		r.flushScheduled = false
		if err := r.flushSyncCallbacks(); err != nil {
			r.onError(err)
		}
	})
}

func (r *Reconciler) flushSyncCallbacks() error {
	if n := r.syncQueue.len(); n > 0 {
		r.logger.Debug("flushing sync callbacks", zap.Int("callbacks", n))
	}
	return r.syncQueue.flush()
}

// FlushSync runs all pending sync work now and returns its errors.
func (r *Reconciler) FlushSync() error {
	if r.executionContext != noContext {
		return usageErrorf(ErrFlushDuringPass, "FlushSync")
	}
	return r.flushSyncCallbacks()
}

// Batch runs fn with flushing suspended, then flushes once when the outermost
// batch ends.
func (r *Reconciler) Batch(fn func()) error {
	r.StartBatch()
	ended := false
	defer func() {
		if !ended {
			r.batchDepth--
		}
	}()
	fn()
	ended = true
	return r.EndBatch()
}

func (r *Reconciler) StartBatch() {
	r.batchDepth++
}

func (r *Reconciler) EndBatch() error {
	if r.batchDepth == 0 {
		return usageErrorf(ErrUnbalancedBatch, "batch depth is already 0")
	}
	r.batchDepth--
	if r.batchDepth > 0 {
		return nil
	}
	return r.FlushSync()
}
