package fiber

// beginWork reconciles the children of wip and returns the first of them, or
// nil when wip is a leaf.
func (pass *renderPass) beginWork(wip *Node) (*Node, error) {
	switch wip.tag {
	case HostRoot:
		return pass.updateHostRoot(wip)
	case HostComponent:
		return pass.reconcileChildren(wip, wip.pendingProps.Children())
	case HostText:
		return nil, nil
	case FunctionComponentTag:
		children, err := pass.renderWithHooks(wip)
		if err != nil {
			return nil, err
		}
		return pass.reconcileChildren(wip, children)
	case FragmentTag:
		return pass.reconcileChildren(wip, wip.pendingProps.Children())
	default:
		return nil, usageErrorf(ErrUnsupportedChild, "begin: unknown work tag %v", wip.tag)
	}
}

func (pass *renderPass) updateHostRoot(wip *Node) (*Node, error) {
	queue := wip.updateQueue
	pending := queue.pending
	state, skipped := processUpdateQueue(wip.memoizedState, pending, pass.lane)
	if skipped != NoLanes {
		pass.logSkipped(skipped)
	}
	pass.consume(queue, pending)
	wip.memoizedState = state
	return pass.reconcileChildren(wip, state)
}

func (pass *renderPass) reconcileChildren(wip *Node, children any) (*Node, error) {
	var (
		child *Node
		err   error
	)
	if current := wip.alternate; current != nil {
		child, err = pass.updateChildren.reconcile(wip, current.child, children)
	} else {
		child, err = pass.mountChildren.reconcile(wip, nil, children)
	}
	if err != nil {
		return nil, err
	}
	wip.child = child
	return child, nil
}
