package fiber

import "math/bits"

// Lane is a single priority bit, Lanes a set of them. A numerically smaller
// lane has a higher priority.
type Lane uint32

type Lanes = Lane

const (
	NoLane  Lane = 0
	NoLanes      = NoLane
)

const (
	SyncLane Lane = 1 << iota
	// Reserved for schedulers that can interrupt a pass. Only SyncLane is
	// executed by this package.
	InputContinuousLane
	DefaultLane
	IdleLane
)

func (l Lane) String() string {
	switch l {
	case NoLane:
		return "NoLane"
	case SyncLane:
		return "SyncLane"
	case InputContinuousLane:
		return "InputContinuousLane"
	case DefaultLane:
		return "DefaultLane"
	case IdleLane:
		return "IdleLane"
	default:
		return "Lanes(" + bitString(uint32(l)) + ")"
	}
}

func bitString(v uint32) string {
	if v == 0 {
		return "0"
	}
	buf := make([]byte, 0, 32)
	for i := 31 - bits.LeadingZeros32(v); i >= 0; i-- {
		if v&(1<<i) != 0 {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
	}
	return "0b" + string(buf)
}

func mergeLanes(a, b Lanes) Lanes {
	return a | b
}

func requestUpdateLane() Lane {
	return SyncLane
}

// getHighestPriorityLane isolates the lowest set bit, 0b0110 -> 0b0010.
func getHighestPriorityLane(lanes Lanes) Lane {
	return lanes & -lanes
}

func markRootUpdated(root *RootController, lane Lane) {
	root.pendingLanes = mergeLanes(root.pendingLanes, lane)
}

// markRootFinished drops the finished lane and re-adds the lanes of updates
// that were scheduled while the pass was running.
func markRootFinished(root *RootController, lane Lane) {
	root.pendingLanes &^= lane
	root.pendingLanes = mergeLanes(root.pendingLanes, root.interleavedLanes)
	root.interleavedLanes = NoLanes
	root.finishedLane = lane
}
