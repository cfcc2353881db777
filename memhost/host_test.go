package memhost_test

import (
	"testing"

	"github.com/delaneyj/fiberparty/fiber"
	"github.com/delaneyj/fiberparty/memhost"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should keep instances detached until they are appended to a container
func TestHostBuildsDetachedTrees(t *testing.T) {
	h := memhost.New()
	container := memhost.NewContainer()

	ul := h.CreateInstance("ul", fiber.Props{"class": "list"})
	li := h.CreateInstance("li", nil)
	text := h.CreateTextInstance("a & b")
	h.AppendInitialChild(li, text)
	h.AppendInitialChild(ul, li)

	assert.Empty(t, container.Children)
	assert.Equal(t, 0, h.Counters.Mutations())
	assert.Equal(t, 3, h.Counters.Creates)

	h.AppendChildToContainer(container, ul)
	assert.Equal(t, `<ul class="list"><li>a &amp; b</li></ul>`, memhost.InnerMarkup(container))
	assert.Equal(t, 1, h.Counters.Mutations())
}

// should insert before the anchor and move an already attached child
func TestHostInsertMovesChild(t *testing.T) {
	h := memhost.New()
	container := memhost.NewContainer()
	a := h.CreateInstance("li", fiber.Props{"id": "a"})
	b := h.CreateInstance("li", fiber.Props{"id": "b"})
	c := h.CreateInstance("li", fiber.Props{"id": "c"})
	for _, n := range []fiber.Instance{a, b, c} {
		h.AppendChildToContainer(container, n)
	}
	h.Reset()

	h.InsertChildToContainer(c, container, a)
	assert.Equal(t, `<li id="c"></li><li id="a"></li><li id="b"></li>`, memhost.InnerMarkup(container))

	h.RemoveChild(b, container)
	assert.Equal(t, `<li id="c"></li><li id="a"></li>`, memhost.InnerMarkup(container))

	want := []string{
		"insert li#c -> root before li#a",
		"remove li#b -> root",
	}
	got := make([]string, 0, len(h.Ops))
	for _, op := range h.Ops {
		got = append(got, op.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, memhost.Counters{Inserts: 1, Removes: 1}, h.Counters)
}

// should apply props to elements and content to text instances
func TestHostCommitUpdate(t *testing.T) {
	h := memhost.New()
	container := memhost.NewContainer()
	p := h.CreateInstance("p", fiber.Props{"title": "old", "onClick": func() {}})
	text := h.CreateTextInstance("old")
	h.AppendInitialChild(p, text)
	h.AppendChildToContainer(container, p)

	h.CommitUpdate(p, fiber.Props{"title": "<new>"})
	h.CommitUpdate(text, fiber.Props{fiber.ContentProp: "new"})

	assert.Equal(t, `<p title="&lt;new&gt;">new</p>`, memhost.InnerMarkup(container))
	assert.Equal(t, 2, h.Counters.Updates)
}

// should only run microtasks queued before the tick
func TestHostMicrotasks(t *testing.T) {
	h := memhost.New()
	var order []string
	h.ScheduleMicroTask(func() {
		order = append(order, "first")
		h.ScheduleMicroTask(func() {
			order = append(order, "nested")
		})
	})
	h.ScheduleMicroTask(func() {
		order = append(order, "second")
	})

	require.Equal(t, 2, h.Pending())
	assert.Equal(t, 2, h.Tick())
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, h.Pending())

	assert.Equal(t, 1, h.Drain())
	assert.Equal(t, []string{"first", "second", "nested"}, order)
	assert.Equal(t, 0, h.Pending())
}
