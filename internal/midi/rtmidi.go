package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// RtAdapter is the production Adapter backed by the rtmidi driver.
// One adapter handles one device connection at a time.
type RtAdapter struct {
	mu   sync.Mutex
	in   drivers.In
	out  drivers.Out
	send func(gomidi.Message) error
	stop func()
}

// NewRtAdapter creates an adapter over the system MIDI driver.
func NewRtAdapter() *RtAdapter {
	return &RtAdapter{}
}

// Ports lists the names of the available MIDI input and output ports.
func (a *RtAdapter) Ports() (PortList, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var ports PortList
	for _, in := range gomidi.GetInPorts() {
		ports.In = append(ports.In, in.String())
	}
	for _, out := range gomidi.GetOutPorts() {
		ports.Out = append(ports.Out, out.String())
	}
	return ports, nil
}

// OpenInput opens the input port at the given index.
func (a *RtAdapter) OpenInput(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ins := gomidi.GetInPorts()
	if index < 0 || index >= len(ins) {
		return fmt.Errorf("input port index %d out of range", index)
	}
	if err := ins[index].Open(); err != nil {
		return fmt.Errorf("failed to open input port %q: %w", ins[index].String(), err)
	}
	a.in = ins[index]
	return nil
}

// OpenOutput opens the output port at the given index.
func (a *RtAdapter) OpenOutput(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	outs := gomidi.GetOutPorts()
	if index < 0 || index >= len(outs) {
		return fmt.Errorf("output port index %d out of range", index)
	}
	if err := outs[index].Open(); err != nil {
		return fmt.Errorf("failed to open output port %q: %w", outs[index].String(), err)
	}
	send, err := gomidi.SendTo(outs[index])
	if err != nil {
		return fmt.Errorf("failed to create sender for %q: %w", outs[index].String(), err)
	}
	a.out = outs[index]
	a.send = send
	return nil
}

// SetReceiveCallback registers fn for inbound messages on the open
// input port. Passing nil unregisters the current listener.
func (a *RtAdapter) SetReceiveCallback(fn func(msg []byte)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stop != nil {
		a.stop()
		a.stop = nil
	}
	if fn == nil {
		return nil
	}
	if a.in == nil {
		return fmt.Errorf("input port is not open")
	}
	stop, err := gomidi.ListenTo(a.in, func(msg gomidi.Message, timestampms int32) {
		fn([]byte(msg))
	})
	if err != nil {
		return fmt.Errorf("failed to start listening: %w", err)
	}
	a.stop = stop
	return nil
}

// Send writes one raw message to the open output port.
func (a *RtAdapter) Send(msg []byte) error {
	a.mu.Lock()
	send := a.send
	a.mu.Unlock()

	if send == nil {
		return fmt.Errorf("output port is not open")
	}
	return send(gomidi.Message(msg))
}

// CloseInput stops listening and closes the input port.
func (a *RtAdapter) CloseInput() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stop != nil {
		a.stop()
		a.stop = nil
	}
	if a.in == nil {
		return nil
	}
	err := a.in.Close()
	a.in = nil
	return err
}

// CloseOutput closes the output port.
func (a *RtAdapter) CloseOutput() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.out == nil {
		return nil
	}
	err := a.out.Close()
	a.out = nil
	a.send = nil
	return err
}

// Shutdown releases the underlying MIDI driver. Call once when the
// process no longer needs any MIDI access.
func (a *RtAdapter) Shutdown() {
	gomidi.CloseDriver()
}
