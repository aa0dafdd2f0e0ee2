package midi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-midimap/internal/actions"
	"github.com/PixPMusic/gopher-midimap/internal/schema"
)

// flashDelay is the pause between LED states while flashing an element.
const flashDelay = 300 * time.Millisecond

// ConnectedController interprets live MIDI traffic for one physical
// device. It owns the engagement state of every button and knob and
// routes decoded events through a BoundController to the host's
// actions. One instance per physical connection.
type ConnectedController struct {
	adapter Adapter
	bound   *actions.BoundController
	log     *zap.Logger

	// Element id sets from the controller schema. They decide whether an
	// inbound message addresses a knob or a button.
	buttonIDs map[uint8]struct{}
	knobIDs   map[uint8]struct{}

	// mu guards the engagement maps and the connection flag. The
	// receive callback and outbound paths (init, flash) may run on
	// different threads.
	mu               sync.Mutex
	connected        bool
	buttonEngagement map[uint8]uint8
	knobEngagement   map[uint8]uint8

	flashDelay time.Duration
}

// Connect selects the MIDI ports matching the controller's name, opens
// them, initializes every known element, and only then registers the
// receive callback so that init writes cannot race live reads.
// Fails with a *ConnectionError when no matching port pair exists.
func Connect(controller *schema.Controller, bound *actions.BoundController, adapter Adapter, log *zap.Logger) (*ConnectedController, error) {
	ports, err := adapter.Ports()
	if err != nil {
		return nil, &ConnectionError{Reason: "failed to list MIDI ports", Err: err}
	}

	inIndex := findPort(ports.In, controller.Name)
	outIndex := findPort(ports.Out, controller.Name)
	if inIndex < 0 || outIndex < 0 {
		return nil, &ConnectionError{Reason: "no correct MIDI ports available"}
	}

	if err := adapter.OpenInput(inIndex); err != nil {
		return nil, &ConnectionError{Reason: "failed to open input port", Err: err}
	}
	if err := adapter.OpenOutput(outIndex); err != nil {
		_ = adapter.CloseInput()
		return nil, &ConnectionError{Reason: "failed to open output port", Err: err}
	}

	c := &ConnectedController{
		adapter:          adapter,
		bound:            bound,
		log:              log,
		buttonIDs:        idSet(controller.ButtonIDs()),
		knobIDs:          idSet(controller.KnobIDs()),
		buttonEngagement: make(map[uint8]uint8, len(controller.Buttons)),
		knobEngagement:   make(map[uint8]uint8, len(controller.Knobs)),
		flashDelay:       flashDelay,
	}

	c.initButtons(controller.ButtonIDs())
	c.initKnobs(controller.KnobIDs())

	if err := adapter.SetReceiveCallback(c.handleMessage); err != nil {
		_ = adapter.CloseInput()
		_ = adapter.CloseOutput()
		return nil, &ConnectionError{Reason: "failed to register receive callback", Err: err}
	}
	c.connected = true

	log.Info("controller connected",
		zap.String("controller", controller.Name),
		zap.Int("buttons", len(controller.Buttons)),
		zap.Int("knobs", len(controller.Knobs)),
	)
	return c, nil
}

// findPort returns the index of the first port whose name matches the
// controller name. Driver port names often carry a suffix after a
// colon, so only the part before it is compared.
func findPort(names []string, controllerName string) int {
	for i, name := range names {
		base := strings.SplitN(name, ":", 2)[0]
		if base == controllerName {
			return i
		}
	}
	return -1
}

func idSet(ids []uint8) map[uint8]struct{} {
	set := make(map[uint8]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// initButtons turns every button LED off and records the off state.
func (c *ConnectedController) initButtons(ids []uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if err := c.sendLocked(buttonLedOffCommand, id, c.bound.ButtonValueOff); err != nil {
			c.log.Warn("failed to initialize button led", zap.Uint8("id", id), zap.Error(err))
		}
		c.buttonEngagement[id] = c.bound.ButtonValueOff
	}
}

// initKnobs moves every knob indicator to the minimum and records it.
func (c *ConnectedController) initKnobs(ids []uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if err := c.sendLocked(knobSetCommand, id, c.bound.KnobValueMin); err != nil {
			c.log.Warn("failed to initialize knob", zap.Uint8("id", id), zap.Error(err))
		}
		c.knobEngagement[id] = c.bound.KnobValueMin
	}
}

// handleMessage decodes one raw inbound message and dispatches it.
// Runs on the adapter's receive thread; a bad message is reported and
// dropped, never fatal to the session.
func (c *ConnectedController) handleMessage(msg []byte) {
	if len(msg) < 3 {
		c.log.Warn("dropping short MIDI message", zap.Int("len", len(msg)))
		return
	}
	command := msg[0] & commandMask
	channel := msg[0] & channelMask
	id := msg[1]
	value := msg[2]

	_, isKnob := c.knobIDs[id]
	_, isButton := c.buttonIDs[id]

	switch {
	case isKnob:
		c.handleKnobMessage(id, value)
	case isButton && command == buttonEngagedCommand:
		c.handleButtonEngagement(id)
	case isButton && command == buttonDisengagedCommand:
		// Button release is deliberately not acted on yet. The case is
		// accepted here so a release never counts as unroutable.
	default:
		c.log.Warn("routing error", zap.Error(&RoutingError{Command: command, Channel: channel, ID: id}))
	}
}

// handleButtonEngagement invokes the press action bound to the button.
// An unbound button press is silently ignored.
func (c *ConnectedController) handleButtonEngagement(id uint8) {
	c.mu.Lock()
	c.buttonEngagement[id] = c.bound.ButtonValueOn
	c.mu.Unlock()

	if action, ok := c.bound.ButtonPressAction(id); ok {
		c.invoke(action)
	}
}

// handleKnobMessage turns an absolute knob value into an increase or
// decrease event. At the extremes the device keeps reporting the same
// value, so the stored previous value is overridden there: the floor
// always reads as an increase and the ceiling as a decrease, which is
// the only interpretation ever available at those boundaries.
func (c *ConnectedController) handleKnobMessage(id, value uint8) {
	c.mu.Lock()
	previous := int(c.knobEngagement[id])
	if value == c.bound.KnobValueMin {
		previous = int(value) - 1
	}
	if value == c.bound.KnobValueMax {
		previous = int(value) + 1
	}
	c.knobEngagement[id] = value
	c.mu.Unlock()

	switch {
	case int(value) > previous:
		if action, ok := c.bound.KnobIncreaseAction(id); ok {
			c.invoke(action)
		}
	case int(value) < previous:
		if action, ok := c.bound.KnobDecreaseAction(id); ok {
			c.invoke(action)
		}
	}
}

// invoke runs an action's callback. Callback failures are logged and
// never abort the session.
func (c *ConnectedController) invoke(action *actions.Action) {
	if err := action.Callback(); err != nil {
		c.log.Error("action failed", zap.String("action", action.ID), zap.Error(err))
	}
}

// SetKnobValue moves a knob indicator on the device and records the
// new value.
func (c *ConnectedController) SetKnobValue(id, value uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.sendLocked(knobSetCommand, id, value); err != nil {
		return err
	}
	c.knobEngagement[id] = value
	return nil
}

// TurnOnButtonLed lights a button LED on the device.
func (c *ConnectedController) TurnOnButtonLed(id uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked(buttonLedOnCommand, id, c.bound.ButtonValueOn)
}

// TurnOffButtonLed darkens a button LED on the device.
func (c *ConnectedController) TurnOffButtonLed(id uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked(buttonLedOffCommand, id, c.bound.ButtonValueOff)
}

func (c *ConnectedController) sendLocked(command, id, value uint8) error {
	if err := c.adapter.Send([]byte{command, id, value}); err != nil {
		return fmt.Errorf("failed to send MIDI message: %w", err)
	}
	return nil
}

// FlashKnob sweeps a knob indicator between its extremes three times
// for user-visible identification, then restores the last known value.
// It blocks the caller for the whole sequence (six flashDelay pauses)
// unless ctx is cancelled first.
func (c *ConnectedController) FlashKnob(ctx context.Context, id uint8) error {
	for i := 0; i < 3; i++ {
		if err := c.flashStep(ctx, knobSetCommand, id, c.bound.KnobValueMin); err != nil {
			return err
		}
		if err := c.flashStep(ctx, knobSetCommand, id, c.bound.KnobValueMax); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked(knobSetCommand, id, c.knobEngagement[id])
}

// FlashButton blinks a button LED three times for user-visible
// identification, then restores the last known state. It blocks the
// caller for the whole sequence unless ctx is cancelled first.
func (c *ConnectedController) FlashButton(ctx context.Context, id uint8) error {
	for i := 0; i < 3; i++ {
		if err := c.flashStep(ctx, buttonLedOnCommand, id, c.bound.ButtonValueOn); err != nil {
			return err
		}
		if err := c.flashStep(ctx, buttonLedOffCommand, id, c.bound.ButtonValueOff); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buttonEngagement[id] == c.bound.ButtonValueOn {
		return c.sendLocked(buttonLedOnCommand, id, c.bound.ButtonValueOn)
	}
	return c.sendLocked(buttonLedOffCommand, id, c.bound.ButtonValueOff)
}

func (c *ConnectedController) flashStep(ctx context.Context, command, id, value uint8) error {
	c.mu.Lock()
	err := c.sendLocked(command, id, value)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	timer := time.NewTimer(c.flashDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Disconnect unregisters the receive callback and closes both ports.
// Safe to call more than once and safe to call on a controller that
// never finished connecting.
func (c *ConnectedController) Disconnect() {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return
	}
	c.connected = false
	c.mu.Unlock()

	if err := c.adapter.SetReceiveCallback(nil); err != nil {
		c.log.Warn("failed to unregister receive callback", zap.Error(err))
	}
	if err := c.adapter.CloseInput(); err != nil {
		c.log.Warn("failed to close input port", zap.Error(err))
	}
	if err := c.adapter.CloseOutput(); err != nil {
		c.log.Warn("failed to close output port", zap.Error(err))
	}
	c.log.Info("controller disconnected")
}
