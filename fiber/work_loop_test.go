package fiber_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/fiberparty/fiber"
	"github.com/delaneyj/fiberparty/memhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// should leave the committed tree and pending updates alone when a pass fails
func TestFailedPassKeepsTreeAndUpdates(t *testing.T) {
	failNext := false
	var setter *fiber.Setter[int]
	comp := fiber.Component("Flaky", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		count, set := fiber.UseState(h, 0)
		setter = set
		if failNext {
			failNext = false
			return nil, errBoom
		}
		return fiber.H("span", nil, count), nil
	})

	f := newFixture(t)
	f.render(fiber.CreateElement(comp, nil))
	f.host.Reset()

	failNext = true
	err := f.r.Batch(func() {
		require.NoError(t, setter.Set(5))
	})
	var renderErr *fiber.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, 1, renderErr.Attempts)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, fiber.IsUsageError(err))
	assert.Equal(t, `<span>0</span>`, f.markup())
	assert.Equal(t, 0, f.host.Counters.Mutations())
	assert.Equal(t, uint64(1), f.root.Commits())

	err = f.r.Batch(func() {
		require.NoError(t, setter.Update(inc))
	})
	require.NoError(t, err)
	assert.Equal(t, `<span>6</span>`, f.markup())
}

// should render a failing root once no matter how many dispatches queued it
func TestFailedPassRunsOncePerFlush(t *testing.T) {
	fail := false
	renders := 0
	var setter *fiber.Setter[int]
	comp := fiber.Component("Flaky", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		renders++
		count, set := fiber.UseState(h, 0)
		setter = set
		if fail {
			return nil, errBoom
		}
		return count, nil
	})

	f := newFixture(t)
	f.render(fiber.CreateElement(comp, nil))
	renders = 0

	fail = true
	for i := 0; i < 3; i++ {
		require.NoError(t, setter.Update(inc))
	}
	f.host.Drain()

	assert.Equal(t, 1, renders)
	require.Len(t, f.errs, 1)
	assert.ErrorIs(t, f.errs[0], errBoom)
	assert.Equal(t, "0", f.markup())
	assert.Equal(t, fiber.SyncLane, f.root.PendingLanes())

	fail = false
	f.errs = nil
	require.NoError(t, setter.Update(inc))
	f.host.Drain()
	assert.Empty(t, f.errs)
	assert.Equal(t, "4", f.markup())
}

// should leave no lanes behind on a root updated from another root's render
func TestUpdateToOtherRootDuringRender(t *testing.T) {
	var setB *fiber.Setter[int]
	compB := fiber.Component("B", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		count, set := fiber.UseState(h, 0)
		setB = set
		return count, nil
	})
	compA := fiber.Component("A", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		if err := setB.Update(inc); err != nil {
			return nil, err
		}
		return "a", nil
	})

	f := newFixture(t)
	containerB := memhost.NewContainer()
	rootB := f.r.CreateRootController(containerB)
	require.NoError(t, f.r.RenderIntoController(fiber.CreateElement(compB, nil), rootB))
	f.host.Drain()

	f.render(fiber.CreateElement(compA, nil))

	assert.Equal(t, "a", f.markup())
	assert.Equal(t, "1", memhost.InnerMarkup(containerB))
	assert.Equal(t, fiber.NoLanes, rootB.PendingLanes())
	assert.Equal(t, fiber.NoLanes, f.root.PendingLanes())
	assert.Equal(t, uint64(2), rootB.Commits())
}

// should retry a failed pass from scratch up to the configured limit
func TestRenderRetries(t *testing.T) {
	failures := 2
	renders := 0
	comp := fiber.Component("Eventually", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		renders++
		if failures > 0 {
			failures--
			return nil, errBoom
		}
		return "done", nil
	})

	f := newFixture(t, fiber.WithMaxRenderRetries(2))
	require.NoError(t, f.renderSync(fiber.CreateElement(comp, nil)))
	assert.Equal(t, "done", f.markup())
	assert.Equal(t, 3, renders)
	assert.Equal(t, 2, f.logs.FilterMessage("render pass failed").Len())
}

// should give up once retries are exhausted
func TestRenderRetriesExhausted(t *testing.T) {
	comp := fiber.Component("Never", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		return nil, errBoom
	})

	f := newFixture(t, fiber.WithMaxRenderRetries(2))
	err := f.renderSync(fiber.CreateElement(comp, nil))

	var renderErr *fiber.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, 3, renderErr.Attempts)
	assert.Equal(t, "", f.markup())
	assert.Equal(t, uint64(0), f.root.Commits())
}

// should turn component panics into render errors
func TestComponentPanic(t *testing.T) {
	comp := fiber.Component("Panics", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		panic("kaboom")
	})

	f := newFixture(t)
	err := f.renderSync(fiber.CreateElement(comp, nil))

	var panicErr *fiber.PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "kaboom", panicErr.Value)
}

// should report errors from microtask flushes through the error handler
func TestMicrotaskFlushErrorsGoToHandler(t *testing.T) {
	comp := fiber.Component("Never", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		return nil, errBoom
	})

	f := newFixture(t)
	require.NoError(t, f.r.RenderIntoController(fiber.CreateElement(comp, nil), f.root))
	f.host.Drain()

	require.Len(t, f.errs, 1)
	assert.ErrorIs(t, f.errs[0], errBoom)
}

// should stop a component that updates itself on every render
func TestNestedUpdateLimit(t *testing.T) {
	renders := 0
	comp := fiber.Component("Loops", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		renders++
		count, set := fiber.UseState(h, 0)
		if err := set.Update(inc); err != nil {
			return nil, err
		}
		return count, nil
	})

	f := newFixture(t, fiber.WithNestedUpdateLimit(5))
	err := f.renderSync(fiber.CreateElement(comp, nil))
	f.host.Drain()

	assert.ErrorIs(t, err, fiber.ErrTooManyNestedUpdates)
	assert.True(t, fiber.IsUsageError(err))
	assert.Equal(t, 6, renders)
	assert.Equal(t, fiber.NoLanes, f.root.PendingLanes())
	assert.Empty(t, f.errs)
}

// should apply an update scheduled during render in a follow-up pass
func TestRenderPhaseUpdateSettles(t *testing.T) {
	comp := fiber.Component("Clamp", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		count, set := fiber.UseState(h, 0)
		if count < 3 {
			if err := set.Update(inc); err != nil {
				return nil, err
			}
		}
		return count, nil
	})

	f := newFixture(t)
	f.render(fiber.CreateElement(comp, nil))

	assert.Equal(t, "3", f.markup())
	assert.Equal(t, uint64(4), f.root.Commits())
}

// should refuse a synchronous flush from inside a render
func TestFlushSyncDuringRender(t *testing.T) {
	f := newFixture(t)
	var flushErr error
	comp := fiber.Component("Flushes", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		flushErr = f.r.FlushSync()
		return nil, nil
	})

	f.render(fiber.CreateElement(comp, nil))
	assert.ErrorIs(t, flushErr, fiber.ErrFlushDuringPass)
}

// should reject children the reconciler does not understand
func TestUnsupportedChild(t *testing.T) {
	f := newFixture(t)

	err := f.renderSync(fiber.H("div", nil, struct{}{}))
	assert.ErrorIs(t, err, fiber.ErrUnsupportedChild)
	assert.True(t, fiber.IsUsageError(err))

	err = f.renderSync(&fiber.Element{Type: fiber.HostType("div")})
	assert.ErrorIs(t, err, fiber.ErrUnsupportedChild)
	assert.False(t, fiber.IsValidElement(&fiber.Element{}))
}

// should only flush when the outermost batch ends
func TestNestedBatches(t *testing.T) {
	f := newFixture(t)

	f.r.StartBatch()
	f.r.StartBatch()
	require.NoError(t, f.r.RenderIntoController(fiber.H("a", nil), f.root))
	require.NoError(t, f.r.EndBatch())
	assert.Equal(t, "", f.markup())
	assert.Equal(t, 0, f.host.Pending())

	require.NoError(t, f.r.EndBatch())
	assert.Equal(t, `<a></a>`, f.markup())

	assert.ErrorIs(t, f.r.EndBatch(), fiber.ErrUnbalancedBatch)
}

// should reject rendering into a nil root
func TestRenderIntoNilRoot(t *testing.T) {
	f := newFixture(t)
	err := f.r.RenderIntoController(fiber.H("a", nil), nil)
	assert.ErrorIs(t, err, fiber.ErrNoRoot)
}
