package fiber

type WorkTag uint8

const (
	FunctionComponentTag WorkTag = iota
	HostRoot
	HostComponent
	HostText
	FragmentTag
)

func (t WorkTag) String() string {
	switch t {
	case FunctionComponentTag:
		return "FunctionComponent"
	case HostRoot:
		return "HostRoot"
	case HostComponent:
		return "HostComponent"
	case HostText:
		return "HostText"
	case FragmentTag:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// isHost reports whether nodes with this tag own a host instance.
func (t WorkTag) isHost() bool {
	return t == HostComponent || t == HostText
}

type Flags uint16

const (
	Placement Flags = 1 << iota
	Update
	ChildDeletion
	Ref

	NoFlags      Flags = 0
	MutationMask Flags = Placement | Update | ChildDeletion | Ref
)

func (f Flags) Has(other Flags) bool {
	return f&other != 0
}

type executionContext uint8

const (
	renderContext executionContext = 1 << iota
	commitContext

	noContext executionContext = 0
)
