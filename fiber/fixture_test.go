package fiber_test

import (
	"testing"

	"github.com/delaneyj/fiberparty/fiber"
	"github.com/delaneyj/fiberparty/memhost"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	t         *testing.T
	r         *fiber.Reconciler
	host      *memhost.Host
	container *memhost.Node
	root      *fiber.RootController
	logs      *observer.ObservedLogs
	errs      []error
}

func newFixture(t *testing.T, opts ...fiber.Option) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		t:         t,
		host:      memhost.New(),
		container: memhost.NewContainer(),
		logs:      logs,
	}
	opts = append([]fiber.Option{
		fiber.WithLogger(zap.New(core)),
		fiber.WithOnError(func(err error) {
			f.errs = append(f.errs, err)
		}),
	}, opts...)
	f.r = fiber.CreateReconciler(f.host, opts...)
	f.root = f.r.CreateRootController(f.container)
	return f
}

// render schedules element and runs microtasks until the host is idle.
func (f *fixture) render(element any) {
	f.t.Helper()
	require.NoError(f.t, f.r.RenderIntoController(element, f.root))
	f.host.Drain()
	require.Empty(f.t, f.errs)
}

// renderSync renders element inside a batch and returns the flush error.
func (f *fixture) renderSync(element any) error {
	f.t.Helper()
	return f.r.Batch(func() {
		require.NoError(f.t, f.r.RenderIntoController(element, f.root))
	})
}

func (f *fixture) markup() string {
	return memhost.InnerMarkup(f.container)
}

func (f *fixture) ops() []string {
	out := make([]string, 0, len(f.host.Ops))
	for _, op := range f.host.Ops {
		out = append(out, op.String())
	}
	return out
}

func li(key string, children ...any) *fiber.Element {
	return fiber.CreateKeyedElement(fiber.HostType("li"), key, fiber.Props{"id": key}, children...)
}

func list(keys ...string) *fiber.Element {
	items := make([]any, 0, len(keys))
	for _, k := range keys {
		items = append(items, li(k, k))
	}
	return fiber.H("ul", nil, items)
}

func recoverError(fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err, _ = rec.(error)
		}
	}()
	fn()
	return nil
}
