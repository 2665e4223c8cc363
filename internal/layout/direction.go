package layout

import "github.com/1broseidon/komotile/internal/geometry"

// OperationDirection names one of the four cardinal directions a focus,
// move, or stack command can target.
type OperationDirection int

const (
	Left OperationDirection = iota
	Right
	Up
	Down
)

func (d OperationDirection) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction, used when a container absorbs a
// window stacked from the opposite side.
func (d OperationDirection) Opposite() OperationDirection {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// flip remaps a direction through a workspace's layout-flip axis before it
// reaches the layout's own IndexInDirection, so "move right" still moves
// visually right even when the active layout has been mirrored.
func (d OperationDirection) flip(axis *geometry.Axis) OperationDirection {
	if axis == nil {
		return d
	}
	switch d {
	case Left:
		if *axis == geometry.AxisHorizontal || *axis == geometry.AxisHorizontalAndVertical {
			return Right
		}
	case Right:
		if *axis == geometry.AxisHorizontal || *axis == geometry.AxisHorizontalAndVertical {
			return Left
		}
	case Up:
		if *axis == geometry.AxisVertical || *axis == geometry.AxisHorizontalAndVertical {
			return Down
		}
	case Down:
		if *axis == geometry.AxisVertical || *axis == geometry.AxisHorizontalAndVertical {
			return Up
		}
	}
	return d
}

// Destination resolves the target index for a directional command, applying
// the workspace's layout flip before delegating to the layout's own
// directional table.
func Destination(l Layout, flipAxis *geometry.Axis, dir OperationDirection, idx, length int) (int, bool) {
	if length == 0 {
		return 0, false
	}
	return l.IndexInDirection(dir.flip(flipAxis), idx, length)
}

// Sizing is the direction of a resize adjustment.
type Sizing int

const (
	Increase Sizing = iota
	Decrease
)

// CycleDirection names which way a stack/cycle command rotates a ring.
type CycleDirection int

const (
	Previous CycleDirection = iota
	Next
)
