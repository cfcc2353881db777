package memhost

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/delaneyj/fiberparty/fiber"
)

// Node is an element or text instance owned by Host.
type Node struct {
	Tag      string
	Text     bool
	Content  string
	Props    fiber.Props
	Parent   *Node
	Children []*Node
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Text {
		return fmt.Sprintf("%q", n.Content)
	}
	if id, ok := n.Props["id"]; ok {
		return fmt.Sprintf("%s#%v", n.Tag, id)
	}
	return n.Tag
}

type Attr struct {
	Name  string
	Value string
}

// Attrs returns the printable props in name order. Func values such as event
// handlers and nil values are skipped.
func (n *Node) Attrs() []Attr {
	attrs := make([]Attr, 0, len(n.Props))
	for k, v := range n.Props {
		if k == fiber.ChildrenProp || v == nil {
			continue
		}
		if reflect.TypeOf(v).Kind() == reflect.Func {
			continue
		}
		attrs = append(attrs, Attr{Name: k, Value: fmt.Sprint(v)})
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})
	return attrs
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.Children, child)
}

func (n *Node) detach(child *Node) bool {
	i := n.indexOf(child)
	if i < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	child.Parent = nil
	return true
}

type OpKind uint8

const (
	OpCreate OpKind = iota
	OpCreateText
	OpAppendInitial
	OpAppend
	OpInsert
	OpRemove
	OpUpdate
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpCreateText:
		return "create-text"
	case OpAppendInitial:
		return "append-initial"
	case OpAppend:
		return "append"
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Op is one recorded host call.
type Op struct {
	Kind   OpKind
	Target string
	Parent string
	Before string
}

func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Kind.String())
	sb.WriteString(" ")
	sb.WriteString(o.Target)
	if o.Parent != "" {
		sb.WriteString(" -> ")
		sb.WriteString(o.Parent)
	}
	if o.Before != "" {
		sb.WriteString(" before ")
		sb.WriteString(o.Before)
	}
	return sb.String()
}

type Counters struct {
	Creates int
	Appends int
	Inserts int
	Removes int
	Updates int
}

// Mutations counts calls that changed an attached tree.
func (c Counters) Mutations() int {
	return c.Appends + c.Inserts + c.Removes + c.Updates
}

// Host is an in-memory fiber.HostConfig. Microtasks only run when Tick or
// Drain is called, which makes scheduling observable in tests.
type Host struct {
	Ops      []Op
	Counters Counters

	microtasks []func()
}

var _ fiber.HostConfig = (*Host)(nil)

func New() *Host {
	return &Host{}
}

// NewContainer returns a detached node suitable as a root container.
func NewContainer() *Node {
	return &Node{Tag: "root"}
}

// Reset clears the op log and counters.
func (h *Host) Reset() {
	h.Ops = nil
	h.Counters = Counters{}
}

func (h *Host) record(op Op) {
	h.Ops = append(h.Ops, op)
}

func (h *Host) CreateInstance(typ fiber.HostType, props fiber.Props) fiber.Instance {
	n := &Node{Tag: string(typ), Props: props}
	h.Counters.Creates++
	h.record(Op{Kind: OpCreate, Target: n.String()})
	return n
}

func (h *Host) CreateTextInstance(content string) fiber.Instance {
	n := &Node{Text: true, Content: content}
	h.Counters.Creates++
	h.record(Op{Kind: OpCreateText, Target: n.String()})
	return n
}

func (h *Host) AppendInitialChild(parent fiber.Instance, child fiber.Instance) {
	p, c := mustNode(parent), mustNode(child)
	c.Parent = p
	p.Children = append(p.Children, c)
	h.record(Op{Kind: OpAppendInitial, Target: c.String(), Parent: p.String()})
}

func (h *Host) AppendChildToContainer(container fiber.Container, child fiber.Instance) {
	p, c := mustNode(container), mustNode(child)
	if c.Parent != nil {
		c.Parent.detach(c)
	}
	c.Parent = p
	p.Children = append(p.Children, c)
	h.Counters.Appends++
	h.record(Op{Kind: OpAppend, Target: c.String(), Parent: p.String()})
}

func (h *Host) InsertChildToContainer(child fiber.Instance, container fiber.Container, before fiber.Instance) {
	p, c, b := mustNode(container), mustNode(child), mustNode(before)
	if c.Parent != nil {
		c.Parent.detach(c)
	}
	c.Parent = p
	if i := p.indexOf(b); i >= 0 {
		p.Children = slices.Insert(p.Children, i, c)
	} else {
		p.Children = append(p.Children, c)
	}
	h.Counters.Inserts++
	h.record(Op{Kind: OpInsert, Target: c.String(), Parent: p.String(), Before: b.String()})
}

func (h *Host) RemoveChild(child fiber.Instance, container fiber.Container) {
	p, c := mustNode(container), mustNode(child)
	p.detach(c)
	h.Counters.Removes++
	h.record(Op{Kind: OpRemove, Target: c.String(), Parent: p.String()})
}

func (h *Host) CommitUpdate(instance fiber.Instance, newProps fiber.Props) {
	n := mustNode(instance)
	if n.Text {
		content, _ := newProps[fiber.ContentProp].(string)
		n.Content = content
	} else {
		n.Props = newProps
	}
	h.Counters.Updates++
	h.record(Op{Kind: OpUpdate, Target: n.String()})
}

func (h *Host) ScheduleMicroTask(cb func()) {
	h.microtasks = append(h.microtasks, cb)
}

// Pending is the number of queued microtasks.
func (h *Host) Pending() int {
	return len(h.microtasks)
}

// Tick runs the microtasks queued before the call and returns how many ran.
func (h *Host) Tick() int {
	tasks := h.microtasks
	h.microtasks = nil
	for _, cb := range tasks {
		cb()
	}
	return len(tasks)
}

// Drain ticks until no microtasks are left.
func (h *Host) Drain() int {
	ran := 0
	for len(h.microtasks) > 0 {
		ran += h.Tick()
	}
	return ran
}

func mustNode(v any) *Node {
	n, ok := v.(*Node)
	if !ok {
		panic(fmt.Sprintf("memhost: expected *memhost.Node, got %T", v))
	}
	return n
}
