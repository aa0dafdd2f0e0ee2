package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBinds() *Binds {
	return &Binds{
		Name:           "TestBinds",
		Description:    "Test description",
		AppName:        "TestApp",
		ControllerName: "TestController",
		ButtonBinds: []ButtonBind{
			{ButtonID: 1, ActionID: "Action1"},
		},
		KnobBinds: []KnobBind{
			{KnobID: 2, ActionIDIncrease: "incr", ActionIDDecrease: "decr"},
		},
	}
}

func TestBindsValidateOK(t *testing.T) {
	require.NoError(t, validBinds().Validate())
}

func TestBindsEmptyName(t *testing.T) {
	b := validBinds()
	b.Name = ""
	assertSchemaError(t, b.Validate())
}

func TestBindsEmptyAppName(t *testing.T) {
	b := validBinds()
	b.AppName = ""
	assertSchemaError(t, b.Validate())
}

func TestBindsIDOutOfRange(t *testing.T) {
	b := validBinds()
	b.ButtonBinds[0].ButtonID = 128
	assertSchemaError(t, b.Validate())

	b = validBinds()
	b.KnobBinds[0].KnobID = 200
	assertSchemaError(t, b.Validate())
}

func TestBindsDuplicateIDAcrossKinds(t *testing.T) {
	// An id bound as a button and again as a knob is still a duplicate.
	b := validBinds()
	b.KnobBinds[0].KnobID = b.ButtonBinds[0].ButtonID
	err := b.Validate()
	assertSchemaError(t, err)
	assert.Contains(t, err.Error(), "id=1")
}

func TestBindsDuplicateButtonID(t *testing.T) {
	b := validBinds()
	b.ButtonBinds = append(b.ButtonBinds, ButtonBind{ButtonID: 1, ActionID: "Action2"})
	assertSchemaError(t, b.Validate())
}

func TestBindsPartialKnobBindIsLegal(t *testing.T) {
	b := validBinds()
	b.KnobBinds[0].ActionIDDecrease = ""
	require.NoError(t, b.Validate())

	b.KnobBinds[0].ActionIDIncrease = ""
	require.NoError(t, b.Validate())
}

func TestBindsActionIDs(t *testing.T) {
	b := validBinds()
	assert.Equal(t, []string{"Action1", "incr", "decr"}, b.ActionIDs())

	b.KnobBinds[0].ActionIDIncrease = ""
	assert.Equal(t, []string{"Action1", "decr"}, b.ActionIDs())
}
