package fiber

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	ChildrenProp = "children"
	ContentProp  = "content"
)

type symbol uint64

func newSymbol(name string) symbol {
	return symbol(xxhash.Sum64String(name))
}

var elementSymbol = newSymbol("fiberparty.element")

// Props are the inputs of a node. Host elements keep their child descriptors
// under ChildrenProp, text nodes keep their content under ContentProp.
type Props map[string]any

func (p Props) Children() any {
	if p == nil {
		return nil
	}
	return p[ChildrenProp]
}

// Key identifies a child among its siblings. The empty key means unkeyed.
type Key = string

// ElementType is the closed set of things a descriptor can render: a host
// tag, a function component or the Fragment marker.
type ElementType interface {
	isElementType()
}

// HostType names a host element such as "div".
type HostType string

func (HostType) isElementType() {}

// RenderFunc renders a component. The hooks handle is only valid for the
// duration of the call.
type RenderFunc func(h *Hooks, props Props) (any, error)

// FunctionComponent is compared by pointer, two components are the same type
// only if they are the same *FunctionComponent.
type FunctionComponent struct {
	Name   string
	Render RenderFunc
}

func (*FunctionComponent) isElementType() {}

func (c *FunctionComponent) String() string {
	if c.Name == "" {
		return "<anonymous>"
	}
	return c.Name
}

// Component declares a function component.
func Component(name string, render RenderFunc) *FunctionComponent {
	return &FunctionComponent{Name: name, Render: render}
}

type fragmentType struct {
	id symbol
}

func (*fragmentType) isElementType() {}

func (*fragmentType) String() string { return "Fragment" }

// Fragment groups children without a host instance of its own.
var Fragment ElementType = &fragmentType{id: newSymbol("fiberparty.fragment")}

// Element is an immutable node descriptor.
type Element struct {
	typeof symbol
	Type   ElementType
	Key    Key
	Ref    any
	Props  Props
}

func (e *Element) String() string {
	if e.Key != "" {
		return fmt.Sprintf("<%v key=%q>", e.Type, e.Key)
	}
	return fmt.Sprintf("<%v>", e.Type)
}

// IsValidElement reports whether v is a descriptor built by CreateElement.
func IsValidElement(v any) bool {
	e, ok := v.(*Element)
	return ok && e != nil && e.typeof == elementSymbol
}

// CreateElement builds a descriptor. The "key" and "ref" props are lifted out
// of props, children replace props[ChildrenProp] when given.
func CreateElement(typ ElementType, props Props, children ...any) *Element {
	e := &Element{
		typeof: elementSymbol,
		Type:   typ,
		Props:  Props{},
	}
	for k, v := range props {
		switch k {
		case "key":
			if v != nil {
				e.Key = fmt.Sprint(v)
			}
		case "ref":
			e.Ref = v
		default:
			e.Props[k] = v
		}
	}
	switch len(children) {
	case 0:
	case 1:
		e.Props[ChildrenProp] = children[0]
	default:
		e.Props[ChildrenProp] = children
	}
	return e
}

// CreateKeyedElement is CreateElement with an explicit key.
func CreateKeyedElement(typ ElementType, key Key, props Props, children ...any) *Element {
	e := CreateElement(typ, props, children...)
	e.Key = key
	return e
}

// H is shorthand for CreateElement on a host tag.
func H(tag string, props Props, children ...any) *Element {
	return CreateElement(HostType(tag), props, children...)
}
