package midi

import "fmt"

// ConnectionError reports that no matching device could be found or
// opened. The connection stays down; the user may retry.
type ConnectionError struct {
	Reason string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RoutingError reports a live message that addressed an element the
// controller schema does not know. One bad message never terminates
// the session, so routing errors are reported, not returned.
type RoutingError struct {
	Command byte
	Channel byte
	ID      byte
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("element id=%d cannot be routed (command=0x%X channel=%d)", e.ID, e.Command, e.Channel)
}
