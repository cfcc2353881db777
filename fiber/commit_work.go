package fiber

import "go.uber.org/zap"

type committer struct {
	host   HostConfig
	logger *zap.Logger
	root   *RootController
}

// commitMutationEffects walks the finished tree depth first, only descending
// into subtrees that carry mutation flags, and applies each node's effects on
// the way back up.
func (c *committer) commitMutationEffects(finishedWork *Node) {
	next := finishedWork
	for next != nil {
		if child := next.child; child != nil && next.subtreeFlags&MutationMask != NoFlags {
			next = child
			continue
		}
		for next != nil {
			c.commitMutationEffectsOnNode(next)
			if next == finishedWork {
				return
			}
			if sibling := next.sibling; sibling != nil {
				next = sibling
				break
			}
			next = next.parent
		}
	}
}

func (c *committer) commitMutationEffectsOnNode(finishedWork *Node) {
	flags := finishedWork.flags
	if flags.Has(Placement) {
		c.commitPlacement(finishedWork)
		finishedWork.flags &^= Placement
	}
	if flags.Has(Update) {
		c.commitUpdate(finishedWork)
		finishedWork.flags &^= Update
	}
	if flags.Has(ChildDeletion) {
		for _, child := range finishedWork.deletions {
			c.commitDeletion(child)
		}
		finishedWork.deletions = nil
		finishedWork.flags &^= ChildDeletion
	}
	if flags.Has(Ref) {
		// refs would be attached here
		finishedWork.flags &^= Ref
	}
}

func (c *committer) commitUpdate(n *Node) {
	switch n.tag {
	case HostComponent:
		c.host.CommitUpdate(n.stateNode, hostProps(n.memoizedProps))
	case HostText:
		c.host.CommitUpdate(n.stateNode, Props{ContentProp: textContent(n.memoizedProps)})
	default:
		c.logger.Warn("update flag on a node without a host instance",
			zap.String("root", c.root.id),
			zap.Stringer("tag", n.tag),
		)
	}
}

func (c *committer) commitPlacement(finishedWork *Node) {
	parent, ok := c.getHostParent(finishedWork)
	if !ok {
		return
	}
	var before Instance
	if sibling := getHostSibling(finishedWork); sibling != nil {
		before = sibling.stateNode
	}
	c.insertOrAppendPlacementNode(finishedWork, parent, before)
}

func (c *committer) insertOrAppendPlacementNode(n *Node, parent Container, before Instance) {
	if n.tag.isHost() {
		if before != nil {
			c.host.InsertChildToContainer(n.stateNode, parent, before)
		} else {
			c.host.AppendChildToContainer(parent, n.stateNode)
		}
		return
	}
	for child := n.child; child != nil; child = child.sibling {
		c.insertOrAppendPlacementNode(child, parent, before)
	}
}

// getHostParent finds the container the host instances of n live in.
func (c *committer) getHostParent(n *Node) (Container, bool) {
	for parent := n.parent; parent != nil; parent = parent.parent {
		switch parent.tag {
		case HostComponent:
			return parent.stateNode, true
		case HostRoot:
			if root, ok := parent.stateNode.(*RootController); ok {
				return root.container, true
			}
			return nil, false
		}
	}
	c.logger.Warn("no host parent found, skipping host mutation",
		zap.String("root", c.root.id),
		zap.Stringer("tag", n.tag),
		zap.String("key", n.key),
	)
	return nil, false
}

// getHostSibling returns the first stable host node after n in host order.
// Nodes that are themselves being placed cannot serve as an anchor.
func getHostSibling(n *Node) *Node {
	node := n
findSibling:
	for {
		for node.sibling == nil {
			parent := node.parent
			if parent == nil || parent.tag == HostComponent || parent.tag == HostRoot {
				return nil
			}
			node = parent
		}
		node.sibling.parent = node.parent
		node = node.sibling

		for !node.tag.isHost() {
			if node.flags.Has(Placement) || node.child == nil {
				continue findSibling
			}
			node.child.parent = node
			node = node.child
		}
		if !node.flags.Has(Placement) {
			return node
		}
	}
}

// commitDeletion removes every top-most host instance of the deleted subtree
// from its host parent and detaches the subtree.
func (c *committer) commitDeletion(childToDelete *Node) {
	var boundaries []*Node
	var walk func(n *Node, underHost bool)
	walk = func(n *Node, underHost bool) {
		if n.tag.isHost() {
			// refs would be detached here
			if !underHost {
				boundaries = append(boundaries, n)
			}
			underHost = true
		}
		for child := n.child; child != nil; child = child.sibling {
			walk(child, underHost)
		}
	}
	walk(childToDelete, false)

	if len(boundaries) > 0 {
		if parent, ok := c.getHostParent(childToDelete); ok {
			for _, b := range boundaries {
				c.host.RemoveChild(b.stateNode, parent)
			}
		}
	}
	detachNode(childToDelete)
}

func detachNode(n *Node) {
	n.parent = nil
	n.child = nil
	if alt := n.alternate; alt != nil {
		alt.parent = nil
		alt.child = nil
	}
}
