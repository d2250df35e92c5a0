package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlesValidate(t *testing.T) {
	require.NoError(t, DefaultHandles().Validate())

	h := DefaultHandles()
	h.Overlay = ""
	h.LaserSheet = ""
	err := h.Validate()
	assert.ErrorIs(t, err, ErrMissingHandle)
	assert.Contains(t, err.Error(), "overlay")
	assert.Contains(t, err.Error(), "laser_sheet")
}

func TestProgressCounter(t *testing.T) {
	var p ProgressCounter
	assert.True(t, p.IsComplete())

	p.Begin(2)
	assert.False(t, p.IsComplete())
	p.Done()
	assert.False(t, p.IsComplete())
	p.Fail()
	assert.True(t, p.IsComplete())
	assert.Equal(t, 1, p.Failed())
}

func TestLoadCatalogYAML(t *testing.T) {
	src := `
templates:
  square_enemy:
    sprite_index: 1
    scale: 0.25
    health: 2
    enemy:
      speed: 90
    collider:
      half_width: 10
      half_height: 10
`
	c, err := LoadCatalogYAML(strings.NewReader(src))
	require.NoError(t, err)

	tpl, err := c.Template("square_enemy")
	require.NoError(t, err)
	require.NotNil(t, tpl.Enemy)
	assert.Equal(t, 90.0, tpl.Enemy.Speed)
	assert.Nil(t, tpl.Launcher)

	_, err = c.Template("dragon")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestLoadCatalogRejectsBadTemplates(t *testing.T) {
	_, err := LoadCatalogYAML(strings.NewReader("templates:\n  x:\n    enemy:\n      speed: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	_, err = LoadCatalogYAML(strings.NewReader("templates:\n  x:\n    wings: 2\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestDefaultCatalogIsValid(t *testing.T) {
	assert.NoError(t, DefaultCatalog().Validate())
}
