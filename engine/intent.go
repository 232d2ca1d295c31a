package engine

import "fmt"

// Intent is a movement or rotation request forwarded by the driver
type Intent uint8

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentClockwise
	IntentCounterClockwise
)

func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentClockwise:
		return "clockwise"
	case IntentCounterClockwise:
		return "counter_clockwise"
	default:
		return fmt.Sprintf("Intent(%d)", uint8(i))
	}
}
