package fiber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingHost struct {
	calls int
}

func (h *countingHost) CreateInstance(HostType, Props) Instance              { h.calls++; return &struct{}{} }
func (h *countingHost) CreateTextInstance(string) Instance                   { h.calls++; return &struct{}{} }
func (h *countingHost) AppendInitialChild(Instance, Instance)                { h.calls++ }
func (h *countingHost) AppendChildToContainer(Container, Instance)           { h.calls++ }
func (h *countingHost) InsertChildToContainer(Instance, Container, Instance) { h.calls++ }
func (h *countingHost) RemoveChild(Instance, Container)                      { h.calls++ }
func (h *countingHost) CommitUpdate(Instance, Props)                         { h.calls++ }
func (h *countingHost) ScheduleMicroTask(cb func())                          { cb() }

// should skip placement and deletion when no host parent can be found
func TestMissingHostParentIsANoop(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	host := &countingHost{}
	c := &committer{host: host, logger: zap.New(core), root: newRootController(nil)}

	orphan := newNode(HostComponent, Props{}, "")
	orphan.elementType = HostType("div")
	orphan.stateNode = &struct{}{}
	orphan.flags = Placement

	c.commitMutationEffects(orphan)
	c.commitDeletion(orphan)

	assert.Equal(t, 0, host.calls)
	assert.Equal(t, 2, logs.FilterMessageSnippet("no host parent").Len())
	assert.Equal(t, NoFlags, orphan.flags)
}

// should find the next stable host node through non-host siblings
func TestGetHostSiblingSkipsUnstableNodes(t *testing.T) {
	parent := newNode(HostComponent, Props{}, "")
	placed := newNode(HostComponent, Props{}, "a")
	fragment := newNode(FragmentTag, Props{}, "")
	moving := newNode(HostComponent, Props{}, "b")
	stable := newNode(HostText, Props{}, "")
	moving.flags = Placement

	parent.child = placed
	placed.parent = parent
	placed.sibling = fragment
	fragment.parent = parent
	fragment.child = moving
	moving.parent = fragment
	moving.sibling = stable
	stable.parent = fragment

	assert.Same(t, stable, getHostSibling(placed))
	assert.Nil(t, getHostSibling(stable))
}
