package fiber

// Node is one position of the render tree for one generation. Every logical
// position has at most two nodes, the committed one and the work in progress
// one, linked through alternate.
type Node struct {
	tag         WorkTag
	elementType ElementType
	key         Key
	ref         any

	// HostComponent and HostText: the host instance. HostRoot: the
	// *RootController.
	stateNode any

	parent  *Node
	child   *Node
	sibling *Node
	index   int

	pendingProps  Props
	memoizedProps Props
	// HostRoot: the resolved top level element. FunctionComponentTag: the
	// first hook of the chain.
	memoizedState any
	updateQueue   *updateQueue

	alternate *Node

	flags        Flags
	subtreeFlags Flags
	deletions    []*Node
}

func newNode(tag WorkTag, pendingProps Props, key Key) *Node {
	return &Node{
		tag:          tag,
		key:          key,
		pendingProps: pendingProps,
	}
}

func (n *Node) Tag() WorkTag              { return n.tag }
func (n *Node) Type() ElementType         { return n.elementType }
func (n *Node) Key() Key                  { return n.key }
func (n *Node) StateNode() any            { return n.stateNode }
func (n *Node) Parent() *Node             { return n.parent }
func (n *Node) Child() *Node              { return n.child }
func (n *Node) Sibling() *Node            { return n.sibling }
func (n *Node) Index() int                { return n.index }
func (n *Node) Alternate() *Node          { return n.alternate }
func (n *Node) Flags() Flags              { return n.flags }
func (n *Node) SubtreeFlags() Flags       { return n.subtreeFlags }
func (n *Node) MemoizedProps() Props      { return n.memoizedProps }
func (n *Node) PendingDeletions() []*Node { return n.deletions }

// Children returns the direct children in sibling order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.child; c != nil; c = c.sibling {
		out = append(out, c)
	}
	return out
}

// cloneForWork returns the work in progress counterpart of current, reusing
// the existing alternate when there is one.
func cloneForWork(current *Node, pendingProps Props) *Node {
	wip := current.alternate
	if wip == nil {
		// mount
		wip = newNode(current.tag, pendingProps, current.key)
		wip.stateNode = current.stateNode
		wip.alternate = current
		current.alternate = wip
	} else {
		// update
		wip.pendingProps = pendingProps
		wip.flags = NoFlags
		wip.subtreeFlags = NoFlags
		wip.deletions = nil
	}
	wip.elementType = current.elementType
	wip.ref = current.ref
	wip.updateQueue = current.updateQueue
	wip.child = current.child
	wip.memoizedProps = current.memoizedProps
	wip.memoizedState = current.memoizedState
	return wip
}

func createNodeFromElement(element *Element) (*Node, error) {
	var tag WorkTag
	switch element.Type.(type) {
	case HostType:
		tag = HostComponent
	case *FunctionComponent:
		tag = FunctionComponentTag
	default:
		return nil, usageErrorf(ErrUnsupportedChild, "element type %T", element.Type)
	}
	n := newNode(tag, element.Props, element.Key)
	n.elementType = element.Type
	n.ref = element.Ref
	return n, nil
}

func createNodeFromFragment(children any, key Key) *Node {
	n := newNode(FragmentTag, Props{ChildrenProp: children}, key)
	n.elementType = Fragment
	return n
}

func createTextNode(content string) *Node {
	return newNode(HostText, Props{ContentProp: content}, "")
}

func textContent(p Props) string {
	if p == nil {
		return ""
	}
	s, _ := p[ContentProp].(string)
	return s
}
