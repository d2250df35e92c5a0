package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent("Space")
	require.NoError(t, err)
	assert.True(t, ev.IsKeyDown(KeySpace))
	assert.False(t, ev.IsKeyDown(KeyP))

	ev, err = ParseEvent("close")
	require.NoError(t, err)
	assert.True(t, ev.IsClose())

	_, err = ParseEvent("f12")
	assert.Error(t, err)
}

func TestLoadScriptYAML(t *testing.T) {
	s, err := LoadScriptYAML(strings.NewReader("3: [p]\n5: [p, space]\n9: [escape]\n"))
	require.NoError(t, err)

	assert.Equal(t, []uint64{3, 5, 9}, s.Ticks())
	assert.Equal(t, []Event{Press(KeyP), Press(KeySpace)}, s.At(5))
	assert.Empty(t, s.At(4))

	var none *Script
	assert.Nil(t, none.At(1))
}

func TestLoadScriptRejectsUnknownEvent(t *testing.T) {
	_, err := LoadScriptYAML(strings.NewReader("1: [jump]\n"))
	assert.Error(t, err)
}
