package fiber

// Instance is a host-owned object, an element or a text node.
type Instance = any

// Container is the host object a root renders into. Host instances are
// containers for their children as well.
type Container = any

// HostConfig is the platform adapter the reconciler drives. All methods are
// called from the goroutine running the render and commit passes.
type HostConfig interface {
	CreateInstance(typ HostType, props Props) Instance
	CreateTextInstance(content string) Instance
	AppendInitialChild(parent Instance, child Instance)
	AppendChildToContainer(container Container, child Instance)
	InsertChildToContainer(child Instance, container Container, before Instance)
	RemoveChild(child Instance, container Container)
	// CommitUpdate applies new props to an element, or new content
	// (props[ContentProp]) to a text instance.
	CommitUpdate(instance Instance, newProps Props)
	ScheduleMicroTask(cb func())
}
