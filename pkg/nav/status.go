package nav

// Status is the state of the navigation state machine.
type Status int

const (
	// StatusIdle means no guidance is active.
	StatusIdle Status = iota
	// StatusNavigating means guidance toward the destination is active.
	StatusNavigating
	// StatusArrived means the vehicle reached the destination.
	StatusArrived
	// StatusOffRoute is reserved for route deviation detection; nothing
	// transitions into it yet.
	StatusOffRoute
	// StatusGPSLost means guidance is suspended until the signal returns.
	StatusGPSLost
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusNavigating:
		return "NAVIGATING"
	case StatusArrived:
		return "ARRIVED"
	case StatusOffRoute:
		return "OFF ROUTE"
	case StatusGPSLost:
		return "GPS LOST"
	default:
		return "UNKNOWN"
	}
}
