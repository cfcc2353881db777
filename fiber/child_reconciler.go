package fiber

import (
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

// childReconciler diffs a node's previous children against new descriptors.
// With trackEffects unset it is used for mounts, where nothing can be moved or
// deleted and only the subtree root gets a Placement.
type childReconciler struct {
	trackEffects bool
	logger       *zap.Logger
}

type childKey struct {
	key   Key
	index int
}

func keyOf(key Key, index int) childKey {
	if key != "" {
		return childKey{key: key, index: -1}
	}
	return childKey{index: index}
}

func (c *childReconciler) reconcile(returnNode, currentFirst *Node, newChild any) (*Node, error) {
	if el, ok := newChild.(*Element); ok && el != nil && el.Type == Fragment && el.Key == "" {
		newChild = el.Props.Children()
	}

	switch v := newChild.(type) {
	case *Element:
		if v == nil {
			break
		}
		if !IsValidElement(v) {
			return nil, usageErrorf(ErrUnsupportedChild, "element not built with CreateElement: %v", v)
		}
		n, err := c.reconcileSingleElement(returnNode, currentFirst, v)
		if err != nil {
			return nil, err
		}
		return c.placeSingleChild(n), nil
	case []any:
		return c.reconcileChildrenArray(returnNode, currentFirst, v)
	case []*Element:
		children := make([]any, len(v))
		for i, el := range v {
			children[i] = el
		}
		return c.reconcileChildrenArray(returnNode, currentFirst, children)
	case nil, bool:
	default:
		content, ok := textOf(newChild)
		if !ok {
			return nil, usageErrorf(ErrUnsupportedChild, "%T", newChild)
		}
		return c.placeSingleChild(c.reconcileSingleTextNode(returnNode, currentFirst, content)), nil
	}

	c.deleteRemainingChildren(returnNode, currentFirst)
	return nil, nil
}

func textOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int8:
		return strconv.FormatInt(int64(t), 10), true
	case int16:
		return strconv.FormatInt(int64(t), 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint8:
		return strconv.FormatUint(uint64(t), 10), true
	case uint16:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	default:
		return "", false
	}
}

func (c *childReconciler) deleteChild(returnNode, child *Node) {
	if !c.trackEffects {
		return
	}
	returnNode.deletions = append(returnNode.deletions, child)
	returnNode.flags |= ChildDeletion
}

func (c *childReconciler) deleteRemainingChildren(returnNode, currentFirst *Node) {
	if !c.trackEffects {
		return
	}
	for child := currentFirst; child != nil; child = child.sibling {
		c.deleteChild(returnNode, child)
	}
}

func (c *childReconciler) reconcileSingleElement(returnNode, currentFirst *Node, element *Element) (*Node, error) {
	for current := currentFirst; current != nil; current = current.sibling {
		if current.key != element.Key {
			c.deleteChild(returnNode, current)
			continue
		}
		if current.elementType == element.Type {
			props := element.Props
			if element.Type == Fragment {
				props = Props{ChildrenProp: element.Props.Children()}
			}
			existing := useNode(current, props)
			existing.ref = element.Ref
			existing.parent = returnNode
			c.deleteRemainingChildren(returnNode, current.sibling)
			return existing, nil
		}
		// same key, different type: nothing further along can be reused
		c.deleteRemainingChildren(returnNode, current)
		break
	}

	var (
		created *Node
		err     error
	)
	if element.Type == Fragment {
		created = createNodeFromFragment(element.Props.Children(), element.Key)
	} else if created, err = createNodeFromElement(element); err != nil {
		return nil, err
	}
	created.parent = returnNode
	return created, nil
}

func (c *childReconciler) reconcileSingleTextNode(returnNode, currentFirst *Node, content string) *Node {
	if currentFirst != nil && currentFirst.tag == HostText {
		existing := useNode(currentFirst, Props{ContentProp: content})
		existing.parent = returnNode
		c.deleteRemainingChildren(returnNode, currentFirst.sibling)
		return existing
	}
	c.deleteRemainingChildren(returnNode, currentFirst)
	created := createTextNode(content)
	created.parent = returnNode
	return created
}

func (c *childReconciler) placeSingleChild(n *Node) *Node {
	if c.trackEffects && n.alternate == nil {
		n.flags |= Placement
	}
	return n
}

func (c *childReconciler) reconcileChildrenArray(returnNode, currentFirst *Node, newChildren []any) (*Node, error) {
	existing := make(map[childKey]*Node)
	var shadowed mapset.Set[*Node]
	for current := currentFirst; current != nil; current = current.sibling {
		k := keyOf(current.key, current.index)
		if prior, ok := existing[k]; ok {
			c.logger.Warn("duplicate key among previous siblings, the earlier node is deleted",
				zap.String("key", current.key),
				zap.Stringer("parent", returnNode.tag),
			)
			if shadowed == nil {
				shadowed = mapset.NewThreadUnsafeSet[*Node]()
			}
			shadowed.Add(prior)
		}
		existing[k] = current
	}

	var (
		first, prev     *Node
		lastPlacedIndex int
		seen            = mapset.NewThreadUnsafeSet[Key]()
	)
	for i, child := range newChildren {
		if el, ok := child.(*Element); ok && el != nil && el.Key != "" && !seen.Add(el.Key) {
			c.logger.Warn("duplicate key among siblings, only the first keeps its identity",
				zap.String("key", el.Key),
				zap.Stringer("parent", returnNode.tag),
			)
		}

		n, err := c.updateFromMap(existing, i, child)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		n.index = i
		n.parent = returnNode
		if prev == nil {
			first = n
		} else {
			prev.sibling = n
		}
		prev = n

		if !c.trackEffects {
			continue
		}
		current := n.alternate
		if current == nil {
			n.flags |= Placement
			continue
		}
		if current.index < lastPlacedIndex {
			// moved
			n.flags |= Placement
			continue
		}
		lastPlacedIndex = current.index
	}

	for current := currentFirst; current != nil; current = current.sibling {
		if existing[keyOf(current.key, current.index)] == current || (shadowed != nil && shadowed.Contains(current)) {
			c.deleteChild(returnNode, current)
		}
	}
	return first, nil
}

func (c *childReconciler) updateFromMap(existing map[childKey]*Node, index int, child any) (*Node, error) {
	switch v := child.(type) {
	case nil, bool:
		return nil, nil
	case *Element:
		if v == nil {
			return nil, nil
		}
		if !IsValidElement(v) {
			return nil, usageErrorf(ErrUnsupportedChild, "element not built with CreateElement: %v", v)
		}
		k := keyOf(v.Key, index)
		before := existing[k]
		if v.Type == Fragment {
			return updateFragment(existing, k, before, v.Props.Children(), v.Key), nil
		}
		if before != nil && before.elementType == v.Type {
			delete(existing, k)
			n := useNode(before, v.Props)
			n.ref = v.Ref
			return n, nil
		}
		return createNodeFromElement(v)
	case []any, []*Element:
		k := keyOf("", index)
		return updateFragment(existing, k, existing[k], v, ""), nil
	}

	content, ok := textOf(child)
	if !ok {
		return nil, usageErrorf(ErrUnsupportedChild, "%T", child)
	}
	k := keyOf("", index)
	if before := existing[k]; before != nil && before.tag == HostText {
		delete(existing, k)
		return useNode(before, Props{ContentProp: content}), nil
	}
	return createTextNode(content), nil
}

func updateFragment(existing map[childKey]*Node, k childKey, current *Node, children any, key Key) *Node {
	if current == nil || current.tag != FragmentTag {
		return createNodeFromFragment(children, key)
	}
	delete(existing, k)
	return useNode(current, Props{ChildrenProp: children})
}

func useNode(n *Node, props Props) *Node {
	clone := cloneForWork(n, props)
	clone.index = 0
	clone.sibling = nil
	return clone
}
