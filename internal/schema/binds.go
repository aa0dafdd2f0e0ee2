package schema

// ButtonBind maps a button to the action executed when it is pressed.
type ButtonBind struct {
	ButtonID uint8  `yaml:"button_id"`
	ActionID string `yaml:"action_id"`
}

// KnobBind maps a knob to the actions executed when its value changes.
// Either direction may be left empty; a knob can be bound for increase
// only, decrease only, or neither.
type KnobBind struct {
	KnobID           uint8  `yaml:"knob_id"`
	ActionIDIncrease string `yaml:"action_id_increase,omitempty"`
	ActionIDDecrease string `yaml:"action_id_decrease,omitempty"`
}

// Binds is a user's mapping between one controller and one application.
// A bind set is loaded once and never mutated afterwards.
type Binds struct {
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description,omitempty"`
	AppName        string       `yaml:"app_name"`
	ControllerName string       `yaml:"controller_name"`
	ButtonBinds    []ButtonBind `yaml:"button_binds"`
	KnobBinds      []KnobBind   `yaml:"knob_binds"`
}

// Validate checks the bind set invariants. An element id may be bound
// at most once across the whole set, whether it names a button or a
// knob. Returns a *SchemaError describing the first violation found.
func (b *Binds) Validate() error {
	if b.Name == "" {
		return schemaErrorf("binds", "name must not be empty")
	}
	if b.AppName == "" {
		return schemaErrorf("binds", "app_name must not be empty")
	}
	ids := make([]uint8, 0, len(b.ButtonBinds)+len(b.KnobBinds))
	for _, bind := range b.ButtonBinds {
		if bind.ButtonID > maxDataByte {
			return schemaErrorf("binds", "button_id=%d is out of range [0, 127]", bind.ButtonID)
		}
		ids = append(ids, bind.ButtonID)
	}
	for _, bind := range b.KnobBinds {
		if bind.KnobID > maxDataByte {
			return schemaErrorf("binds", "knob_id=%d is out of range [0, 127]", bind.KnobID)
		}
		ids = append(ids, bind.KnobID)
	}
	if id, ok := findDuplicate(ids); ok {
		return schemaErrorf("binds", "id=%d was bound to multiple actions", id)
	}
	return nil
}

// ActionIDs returns every action id referenced by the bind set, in
// input order, skipping unbound knob directions.
func (b *Binds) ActionIDs() []string {
	ids := make([]string, 0, len(b.ButtonBinds)+2*len(b.KnobBinds))
	for _, bind := range b.ButtonBinds {
		ids = append(ids, bind.ActionID)
	}
	for _, bind := range b.KnobBinds {
		if bind.ActionIDIncrease != "" {
			ids = append(ids, bind.ActionIDIncrease)
		}
		if bind.ActionIDDecrease != "" {
			ids = append(ids, bind.ActionIDDecrease)
		}
	}
	return ids
}
