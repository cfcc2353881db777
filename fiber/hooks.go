package fiber

import "fmt"

type hook struct {
	memoizedState any
	queue         *updateQueue
	next          *hook
}

// Hooks is the render context handed to a component. It is only active while
// that component renders; calling a hook on it afterwards is a usage error.
type Hooks struct {
	pass     *renderPass
	node     *Node
	mounting bool
	active   bool

	// next unconsumed hook of the previous render, update mode only
	currentHook *hook
	// last hook appended to node during this render
	workInProgressHook *hook
}

func (pass *renderPass) renderWithHooks(wip *Node) (any, error) {
	component, ok := wip.elementType.(*FunctionComponent)
	if !ok || component.Render == nil {
		return nil, usageErrorf(ErrUnsupportedChild, "function component node without a render function: %T", wip.elementType)
	}

	h := &Hooks{
		pass:     pass,
		node:     wip,
		mounting: true,
		active:   true,
	}
	if current := wip.alternate; current != nil {
		h.mounting = false
		h.currentHook, _ = current.memoizedState.(*hook)
	}
	wip.memoizedState = nil
	defer func() {
		h.active = false
	}()

	children, err := component.Render(h, wip.pendingProps)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", component, err)
	}
	if !h.mounting && h.currentHook != nil {
		return nil, usageErrorf(ErrHookCountChanged, "%s rendered fewer hooks than during the previous render", component)
	}
	return children, nil
}

func (h *Hooks) mountWorkInProgressHook() *hook {
	hk := &hook{}
	if h.workInProgressHook == nil {
		h.node.memoizedState = hk
	} else {
		h.workInProgressHook.next = hk
	}
	h.workInProgressHook = hk
	return hk
}

func (h *Hooks) updateWorkInProgressHook() *hook {
	current := h.currentHook
	if current == nil {
		panic(usageErrorf(ErrHookCountChanged, "%v rendered more hooks than during the previous render", h.node.elementType))
	}
	h.currentHook = current.next

	hk := &hook{
		memoizedState: current.memoizedState,
		queue:         current.queue,
	}
	if h.workInProgressHook == nil {
		h.node.memoizedState = hk
	} else {
		h.workInProgressHook.next = hk
	}
	h.workInProgressHook = hk
	return hk
}

func resolveHooks(h *Hooks, name string) *Hooks {
	if h == nil || !h.active {
		panic(usageErrorf(ErrHookOutsideRender, "%s", name))
	}
	return h
}

// Setter schedules state updates for the hook that created it. It keeps its
// identity across renders and may be called from anywhere, including outside
// of a render.
type Setter[T any] struct {
	r     *Reconciler
	node  *Node
	queue *updateQueue
}

// Set replaces the state.
func (s *Setter[T]) Set(value T) error {
	return s.dispatch(createUpdate(value, nil, requestUpdateLane()))
}

// Update derives the next state from the previous one.
func (s *Setter[T]) Update(fn func(prev T) T) error {
	reducer := func(prev any) any {
		return fn(as[T](prev))
	}
	return s.dispatch(createUpdate(nil, reducer, requestUpdateLane()))
}

func (s *Setter[T]) dispatch(u *update) error {
	enqueueUpdate(s.queue, u)
	return s.r.ScheduleUpdateOnInstance(s.node, u.lane)
}

// UseState declares a state cell. The initial value is only used on mount.
func UseState[T any](h *Hooks, initial T) (T, *Setter[T]) {
	h = resolveHooks(h, "UseState")
	if h.mounting {
		return mountState(h, initial)
	}
	return updateState[T](h)
}

// UseStateFunc is UseState with a lazily computed initial value.
func UseStateFunc[T any](h *Hooks, initial func() T) (T, *Setter[T]) {
	h = resolveHooks(h, "UseStateFunc")
	if h.mounting {
		return mountState(h, initial())
	}
	return updateState[T](h)
}

func mountState[T any](h *Hooks, initial T) (T, *Setter[T]) {
	hk := h.mountWorkInProgressHook()
	hk.memoizedState = initial
	hk.queue = createUpdateQueue()
	s := &Setter[T]{
		r:     h.pass.r,
		node:  h.node,
		queue: hk.queue,
	}
	hk.queue.dispatch = s
	return initial, s
}

func updateState[T any](h *Hooks) (T, *Setter[T]) {
	hk := h.updateWorkInProgressHook()
	s, ok := hk.queue.dispatch.(*Setter[T])
	if !ok {
		panic(usageErrorf(ErrHookCountChanged, "%v called hooks in a different order than during the previous render", h.node.elementType))
	}

	pending := hk.queue.pending
	state, skipped := processUpdateQueue(hk.memoizedState, pending, h.pass.lane)
	if skipped != NoLanes {
		h.pass.logSkipped(skipped)
	}
	h.pass.consume(hk.queue, pending)
	hk.memoizedState = state
	return as[T](state), s
}

func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
