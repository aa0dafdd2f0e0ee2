package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validController() *Controller {
	return &Controller{
		Name:           "TestController",
		ButtonValueOff: 11,
		ButtonValueOn:  100,
		KnobValueMin:   33,
		KnobValueMax:   55,
		Buttons: []ControllerElement{
			{ID: 0, Name: "Button1"},
			{ID: 1, Name: "Button2"},
		},
		Knobs: []ControllerElement{
			{ID: 2, Name: "Knob1"},
			{ID: 3, Name: "Knob2"},
		},
	}
}

func TestControllerValidateOK(t *testing.T) {
	require.NoError(t, validController().Validate())
}

func TestControllerEmptyName(t *testing.T) {
	c := validController()
	c.Name = ""
	assertSchemaError(t, c.Validate())
}

func TestControllerEqualButtonValues(t *testing.T) {
	c := validController()
	c.ButtonValueOn = c.ButtonValueOff
	assertSchemaError(t, c.Validate())
}

func TestControllerKnobRangeInverted(t *testing.T) {
	c := validController()
	c.KnobValueMin = c.KnobValueMax
	assertSchemaError(t, c.Validate())

	c.KnobValueMin = c.KnobValueMax + 1
	assertSchemaError(t, c.Validate())
}

func TestControllerValueOutOfRange(t *testing.T) {
	for _, mutate := range []func(*Controller){
		func(c *Controller) { c.ButtonValueOff = 128 },
		func(c *Controller) { c.ButtonValueOn = 200 },
		func(c *Controller) { c.KnobValueMin = 128 },
		func(c *Controller) { c.KnobValueMax = 255 },
		func(c *Controller) { c.Buttons[0].ID = 128 },
		func(c *Controller) { c.Knobs[0].ID = 128 },
	} {
		c := validController()
		mutate(c)
		assertSchemaError(t, c.Validate())
	}
}

func TestControllerDuplicateButtonID(t *testing.T) {
	c := validController()
	c.Buttons = append(c.Buttons, ControllerElement{ID: 0, Name: "Button3"})
	err := c.Validate()
	assertSchemaError(t, err)
	assert.Contains(t, err.Error(), "id=0")
}

func TestControllerDuplicateKnobName(t *testing.T) {
	c := validController()
	c.Knobs = append(c.Knobs, ControllerElement{ID: 4, Name: "Knob1"})
	err := c.Validate()
	assertSchemaError(t, err)
	assert.Contains(t, err.Error(), `name="Knob1"`)
}

func TestControllerButtonAndKnobIDsMayOverlap(t *testing.T) {
	c := validController()
	c.Knobs[0].ID = c.Buttons[0].ID
	require.NoError(t, c.Validate())
}

func TestControllerEmptyElementName(t *testing.T) {
	c := validController()
	c.Buttons[1].Name = ""
	assertSchemaError(t, c.Validate())
}

func TestControllerElementIDs(t *testing.T) {
	c := validController()
	assert.Equal(t, []uint8{0, 1}, c.ButtonIDs())
	assert.Equal(t, []uint8{2, 3}, c.KnobIDs())
}

func assertSchemaError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}
