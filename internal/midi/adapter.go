package midi

// PortList names the available MIDI ports. Indexes into In and Out are
// the indexes OpenInput and OpenOutput accept.
type PortList struct {
	In  []string
	Out []string
}

// Adapter abstracts raw MIDI byte transport to and from one device.
// Implementations deliver inbound messages through the receive
// callback, at most one call in flight at a time, possibly on a thread
// distinct from the one issuing Send.
type Adapter interface {
	// Ports lists the currently available input and output ports.
	Ports() (PortList, error)

	// OpenInput opens the input port at the given index of Ports().In.
	OpenInput(index int) error

	// OpenOutput opens the output port at the given index of Ports().Out.
	OpenOutput(index int) error

	// SetReceiveCallback registers fn for inbound messages on the open
	// input port. Passing nil unregisters the current callback.
	SetReceiveCallback(fn func(msg []byte)) error

	// Send writes one raw message to the open output port.
	Send(msg []byte) error

	// CloseInput closes the input port. Safe to call when never opened.
	CloseInput() error

	// CloseOutput closes the output port. Safe to call when never opened.
	CloseOutput() error
}
