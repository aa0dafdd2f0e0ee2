package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "controller.yaml")

	original := validController()
	require.NoError(t, original.SaveTo(path))

	loaded, err := LoadControllerFrom(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestBindsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binds.yml")

	original := validBinds()
	require.NoError(t, original.SaveTo(path))

	loaded, err := LoadBindsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestBindsRoundTripWithoutOptionalFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binds.yaml")

	original := validBinds()
	original.Description = ""
	original.KnobBinds[0].ActionIDDecrease = ""
	require.NoError(t, original.SaveTo(path))

	loaded, err := LoadBindsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSaveToRejectsInvalidModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "controller.yaml")

	c := validController()
	c.ButtonValueOn = c.ButtonValueOff
	err := c.SaveTo(path)
	assertSchemaError(t, err)
	assert.NoFileExists(t, path)
}

func TestLoadRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "controller.yaml")

	data := "name: TestController\nbutton_value_off: 1\nbutton_value_on: 1\nknob_value_min: 0\nknob_value_max: 127\nbuttons: []\nknobs: []\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadControllerFrom(path)
	assertSchemaError(t, err)
}

func TestLoadAllSkipsMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, validController().SaveTo(filepath.Join(dir, "a.yaml")))

	loaded, err := LoadAllControllersFrom([]string{filepath.Join(dir, "missing"), dir})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "TestController", loaded[0].Controller.Name)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), loaded[0].Path)
}

func TestLoadAllIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, validBinds().SaveTo(filepath.Join(dir, "binds.YAML")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	loaded, err := LoadAllBindsFrom([]string{dir})
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSaveCopyToAvoidsCollisions(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	path := filepath.Join(src, "binds.yaml")

	b := validBinds()
	require.NoError(t, b.SaveTo(path))

	first, err := b.SaveCopyTo(path, dst)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dst, "binds.yaml"), first)

	second, err := b.SaveCopyTo(path, dst)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.FileExists(t, second)
}
