package fiber

import "github.com/google/uuid"

// RootController owns one container and the render tree rendered into it.
// Its host root node never changes identity, the controller only swaps which
// of the two host root nodes is current.
type RootController struct {
	id        string
	container Container
	current   *Node

	finishedWork *Node

	pendingLanes     Lanes
	interleavedLanes Lanes
	finishedLane     Lane

	// set while a sync callback for this root sits in the sync queue
	callbackScheduled bool

	commits uint64
}

func newRootController(container Container) *RootController {
	hostRoot := newNode(HostRoot, Props{}, "")
	root := &RootController{
		id:        uuid.New().String(),
		container: container,
		current:   hostRoot,
	}
	hostRoot.stateNode = root
	hostRoot.updateQueue = createUpdateQueue()
	return root
}

func (r *RootController) ID() string           { return r.id }
func (r *RootController) Container() Container { return r.container }
func (r *RootController) Current() *Node       { return r.current }
func (r *RootController) PendingLanes() Lanes  { return r.pendingLanes }
func (r *RootController) FinishedLane() Lane   { return r.finishedLane }
func (r *RootController) Commits() uint64      { return r.commits }
