package schema

// maxDataByte is the largest value a MIDI data byte can carry (7 bits).
const maxDataByte = 127

// ControllerElement is one physical button or knob on a controller.
// The id is sent by the hardware with every event; the name is a
// user-facing label that tells elements apart.
type ControllerElement struct {
	ID   uint8  `yaml:"id"`
	Name string `yaml:"name"`
}

// Controller describes the capabilities of one MIDI device: its
// addressable buttons and knobs and the signal values they use.
// A controller is loaded once and never mutated afterwards.
type Controller struct {
	Name           string              `yaml:"name"`
	ButtonValueOff uint8               `yaml:"button_value_off"`
	ButtonValueOn  uint8               `yaml:"button_value_on"`
	KnobValueMin   uint8               `yaml:"knob_value_min"`
	KnobValueMax   uint8               `yaml:"knob_value_max"`
	Buttons        []ControllerElement `yaml:"buttons"`
	Knobs          []ControllerElement `yaml:"knobs"`
}

// Validate checks the controller schema invariants. It returns a
// *SchemaError describing the first violation found.
func (c *Controller) Validate() error {
	if c.Name == "" {
		return schemaErrorf("controller", "name must not be empty")
	}
	if c.ButtonValueOff > maxDataByte {
		return schemaErrorf("controller", "button_value_off=%d is out of range [0, 127]", c.ButtonValueOff)
	}
	if c.ButtonValueOn > maxDataByte {
		return schemaErrorf("controller", "button_value_on=%d is out of range [0, 127]", c.ButtonValueOn)
	}
	if c.KnobValueMin > maxDataByte {
		return schemaErrorf("controller", "knob_value_min=%d is out of range [0, 127]", c.KnobValueMin)
	}
	if c.KnobValueMax > maxDataByte {
		return schemaErrorf("controller", "knob_value_max=%d is out of range [0, 127]", c.KnobValueMax)
	}
	if c.ButtonValueOff == c.ButtonValueOn {
		return schemaErrorf("controller", "button_value_off and button_value_on are equal")
	}
	if c.KnobValueMin >= c.KnobValueMax {
		return schemaErrorf("controller", "knob_value_min must be smaller than knob_value_max")
	}
	if err := validateElements("controller", "button", c.Buttons); err != nil {
		return err
	}
	return validateElements("controller", "knob", c.Knobs)
}

// validateElements checks one kind of element for range violations and
// id/name collisions. Buttons and knobs are separate id namespaces, so
// each kind is checked on its own.
func validateElements(document, kind string, elements []ControllerElement) error {
	ids := make([]uint8, 0, len(elements))
	names := make([]string, 0, len(elements))
	for _, elem := range elements {
		if elem.ID > maxDataByte {
			return schemaErrorf(document, "%s id=%d is out of range [0, 127]", kind, elem.ID)
		}
		if elem.Name == "" {
			return schemaErrorf(document, "%s id=%d has an empty name", kind, elem.ID)
		}
		ids = append(ids, elem.ID)
		names = append(names, elem.Name)
	}
	if id, ok := findDuplicate(ids); ok {
		return schemaErrorf(document, "id=%d was used for multiple %ss", id, kind)
	}
	if name, ok := findDuplicate(names); ok {
		return schemaErrorf(document, "name=%q was used for multiple %ss", name, kind)
	}
	return nil
}

// ButtonIDs returns the ids of every button on the controller.
func (c *Controller) ButtonIDs() []uint8 {
	ids := make([]uint8, 0, len(c.Buttons))
	for _, b := range c.Buttons {
		ids = append(ids, b.ID)
	}
	return ids
}

// KnobIDs returns the ids of every knob on the controller.
func (c *Controller) KnobIDs() []uint8 {
	ids := make([]uint8, 0, len(c.Knobs))
	for _, k := range c.Knobs {
		ids = append(ids, k.ID)
	}
	return ids
}
