package actions

import (
	"fmt"

	"github.com/PixPMusic/gopher-midimap/internal/schema"
)

// ResolutionError reports a bind that references an unknown controller
// element or action. It is fatal to activating that one bind set.
type ResolutionError struct {
	Kind string // what kind of reference failed
	ID   string // the offending id
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve binds: unknown %s %q", e.Kind, e.ID)
}

// ButtonActions holds the resolved action for one bound button.
type ButtonActions struct {
	Press *Action
}

// KnobActions holds the resolved actions for one bound knob. Either
// direction may be nil when the bind left it out.
type KnobActions struct {
	Increase *Action
	Decrease *Action
}

// BoundController joins a controller schema, a bind set, and an action
// catalog into a query-optimized lookup structure. It is built once per
// triple and never mutated afterwards.
type BoundController struct {
	KnobValueMin   uint8
	KnobValueMax   uint8
	ButtonValueOff uint8
	ButtonValueOn  uint8

	buttons map[uint8]ButtonActions
	knobs   map[uint8]KnobActions
}

// Create resolves binds against a controller and an action catalog.
// Every referenced element id must exist on the controller and every
// referenced action id must exist in the catalog; otherwise Create
// fails with a *ResolutionError. Controller elements with no bind are
// simply absent from the result.
func Create(binds *schema.Binds, controller *schema.Controller, catalog *Catalog) (*BoundController, error) {
	if binds.ControllerName != controller.Name {
		return nil, &ResolutionError{Kind: "controller", ID: binds.ControllerName}
	}

	buttonIDs := make(map[uint8]struct{}, len(controller.Buttons))
	for _, b := range controller.Buttons {
		buttonIDs[b.ID] = struct{}{}
	}
	knobIDs := make(map[uint8]struct{}, len(controller.Knobs))
	for _, k := range controller.Knobs {
		knobIDs[k.ID] = struct{}{}
	}

	buttons := make(map[uint8]ButtonActions, len(binds.ButtonBinds))
	for _, bind := range binds.ButtonBinds {
		if _, ok := buttonIDs[bind.ButtonID]; !ok {
			return nil, &ResolutionError{Kind: "button id", ID: fmt.Sprint(bind.ButtonID)}
		}
		press, ok := catalog.Get(bind.ActionID)
		if !ok {
			return nil, &ResolutionError{Kind: "action id", ID: bind.ActionID}
		}
		buttons[bind.ButtonID] = ButtonActions{Press: press}
	}

	knobs := make(map[uint8]KnobActions, len(binds.KnobBinds))
	for _, bind := range binds.KnobBinds {
		if _, ok := knobIDs[bind.KnobID]; !ok {
			return nil, &ResolutionError{Kind: "knob id", ID: fmt.Sprint(bind.KnobID)}
		}
		var resolved KnobActions
		if bind.ActionIDIncrease != "" {
			increase, ok := catalog.Get(bind.ActionIDIncrease)
			if !ok {
				return nil, &ResolutionError{Kind: "action id", ID: bind.ActionIDIncrease}
			}
			resolved.Increase = increase
		}
		if bind.ActionIDDecrease != "" {
			decrease, ok := catalog.Get(bind.ActionIDDecrease)
			if !ok {
				return nil, &ResolutionError{Kind: "action id", ID: bind.ActionIDDecrease}
			}
			resolved.Decrease = decrease
		}
		knobs[bind.KnobID] = resolved
	}

	return &BoundController{
		KnobValueMin:   controller.KnobValueMin,
		KnobValueMax:   controller.KnobValueMax,
		ButtonValueOff: controller.ButtonValueOff,
		ButtonValueOn:  controller.ButtonValueOn,
		buttons:        buttons,
		knobs:          knobs,
	}, nil
}

// ButtonPressAction returns the action bound to pressing the button,
// or false if the id is unbound or unknown.
func (b *BoundController) ButtonPressAction(id uint8) (*Action, bool) {
	bound, ok := b.buttons[id]
	if !ok {
		return nil, false
	}
	return bound.Press, true
}

// KnobIncreaseAction returns the action bound to turning the knob up,
// or false if the id is unbound, unknown, or bound for decrease only.
func (b *BoundController) KnobIncreaseAction(id uint8) (*Action, bool) {
	bound, ok := b.knobs[id]
	if !ok || bound.Increase == nil {
		return nil, false
	}
	return bound.Increase, true
}

// KnobDecreaseAction returns the action bound to turning the knob down,
// or false if the id is unbound, unknown, or bound for increase only.
func (b *BoundController) KnobDecreaseAction(id uint8) (*Action, bool) {
	bound, ok := b.knobs[id]
	if !ok || bound.Decrease == nil {
		return nil, false
	}
	return bound.Decrease, true
}

// BoundButtonIDs returns the ids of every bound button.
func (b *BoundController) BoundButtonIDs() []uint8 {
	ids := make([]uint8, 0, len(b.buttons))
	for id := range b.buttons {
		ids = append(ids, id)
	}
	return ids
}

// BoundKnobIDs returns the ids of every bound knob.
func (b *BoundController) BoundKnobIDs() []uint8 {
	ids := make([]uint8, 0, len(b.knobs))
	for id := range b.knobs {
		ids = append(ids, id)
	}
	return ids
}
