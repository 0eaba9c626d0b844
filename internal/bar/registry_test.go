package bar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLastRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	first := &fakeComponent{text: "first"}
	second := &fakeComponent{text: "second"}
	reg.Register("wifi", func(Options) (Component, error) { return first, nil })
	reg.RegisterScript("wifi", func(Options) (Component, error) { return second, nil })

	c, ok, err := reg.TryCreate("wifi", Options{"component": "wifi"})
	require.True(t, ok)
	require.NoError(t, err)
	assert.Same(t, second, c)

	kind, found := reg.Kind("wifi")
	require.True(t, found)
	assert.Equal(t, KindScript, kind)
}

func TestRegistryTryCreateOutcomes(t *testing.T) {
	cat := &testCatalog{}
	reg := NewRegistry()
	cat.register(reg)

	c, ok, err := reg.TryCreate("nope", nil)
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Nil(t, c)

	_, ok, err = reg.TryCreate("wifi", Options{"interface": 5})
	assert.True(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOptions))

	_, ok, err = reg.TryCreate("broken", Options{})
	assert.True(t, ok)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidOptions))
	assert.Contains(t, err.Error(), "broken")

	c, ok, err = reg.TryCreate("time", Options{"component": "time"})
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, "%H:%M", c.(*fakeComponent).text)

	c, _, err = reg.TryCreate("time", Options{"format": "%T", "extra": true})
	require.NoError(t, err)
	assert.Equal(t, "%T", c.(*fakeComponent).text)
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	(&testCatalog{}).register(reg)
	assert.Equal(t, []string{"broken", "text", "time", "wifi"}, reg.Names())
}

func TestComponentName(t *testing.T) {
	assert.Equal(t, "time", ComponentName(map[string]interface{}{"component": "time"}))
	assert.Equal(t, "cpu", ComponentName("cpu"))
	assert.Equal(t, UnknownComponent, ComponentName(map[string]interface{}{"format": "x"}))
	assert.Equal(t, UnknownComponent, ComponentName(map[string]interface{}{"component": 7}))
	assert.Equal(t, UnknownComponent, ComponentName(42))
	assert.Equal(t, UnknownComponent, ComponentName(nil))
}
