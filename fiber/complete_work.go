package fiber

import "reflect"

// completeWork creates or diffs the host instance of wip once all of its
// children are complete, then bubbles their flags up.
func (pass *renderPass) completeWork(wip *Node) {
	current := wip.alternate
	host := pass.r.host

	switch wip.tag {
	case HostComponent:
		if current != nil && wip.stateNode != nil {
			if hostPropsChanged(current.memoizedProps, wip.pendingProps) {
				markUpdate(wip)
			}
		} else {
			typ, _ := wip.elementType.(HostType)
			instance := host.CreateInstance(typ, hostProps(wip.pendingProps))
			appendAllChildren(host, instance, wip)
			wip.stateNode = instance
		}
		markRefIfChanged(current, wip)
	case HostText:
		content := textContent(wip.pendingProps)
		if current != nil && wip.stateNode != nil {
			if textContent(current.memoizedProps) != content {
				markUpdate(wip)
			}
		} else {
			wip.stateNode = host.CreateTextInstance(content)
		}
	case HostRoot, FunctionComponentTag, FragmentTag:
	}
	bubbleProperties(wip)
}

func markUpdate(n *Node) {
	n.flags |= Update
}

func markRefIfChanged(current, wip *Node) {
	if (current == nil && wip.ref != nil) || (current != nil && !sameRef(current.ref, wip.ref)) {
		wip.flags |= Ref
	}
}

// sameRef compares refs by identity. Callback refs are funcs, which == would
// panic on.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	return va.Comparable() && a == b
}

// appendAllChildren attaches the top-most host instances below wip to parent,
// looking through function components and fragments.
func appendAllChildren(host HostConfig, parent Instance, wip *Node) {
	node := wip.child
	for node != nil {
		if node.tag.isHost() {
			host.AppendInitialChild(parent, node.stateNode)
		} else if node.child != nil {
			node.child.parent = node
			node = node.child
			continue
		}
		if node == wip {
			return
		}
		for node.sibling == nil {
			if node.parent == nil || node.parent == wip {
				return
			}
			node = node.parent
		}
		node.sibling.parent = node.parent
		node = node.sibling
	}
}

func bubbleProperties(wip *Node) {
	subtreeFlags := NoFlags
	for child := wip.child; child != nil; child = child.sibling {
		subtreeFlags |= child.subtreeFlags
		subtreeFlags |= child.flags
		child.parent = wip
	}
	wip.subtreeFlags |= subtreeFlags
}

// hostProps strips child descriptors, which are never host-visible.
func hostProps(p Props) Props {
	out := make(Props, len(p))
	for k, v := range p {
		if k != ChildrenProp {
			out[k] = v
		}
	}
	return out
}

func hostPropsChanged(prev, next Props) bool {
	remaining := 0
	for k := range prev {
		if k != ChildrenProp {
			remaining++
		}
	}
	for k, v := range next {
		if k == ChildrenProp {
			continue
		}
		pv, ok := prev[k]
		if !ok || !reflect.DeepEqual(pv, v) {
			return true
		}
		remaining--
	}
	return remaining != 0
}
