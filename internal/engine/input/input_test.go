package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
)

func TestHandleTranslatesEvents(t *testing.T) {
	in := New()
	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_A}})
	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_A}})
	in.handle(&sdl.MouseMotionEvent{X: 10, Y: 20, XRel: 3, YRel: -4, State: sdl.ButtonLMask()})
	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT, X: 1, Y: 2})
	in.handle(&sdl.MouseWheelEvent{Y: -1})
	in.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480})

	ev := in.Events()
	require.Len(t, ev, 6)
	assert.Equal(t, EventKeyDown, ev[0].Type)
	assert.Equal(t, EventKeyUp, ev[1].Type)

	assert.Equal(t, EventMouseMove, ev[2].Type)
	assert.Equal(t, 3, ev[2].DeltaX)
	assert.Equal(t, -4, ev[2].DeltaY)
	assert.True(t, ev[2].Dragging(sdl.BUTTON_LEFT))
	assert.False(t, ev[2].Dragging(sdl.BUTTON_RIGHT))

	assert.Equal(t, Event{Type: EventMouseDown, MouseX: 1, MouseY: 2, Button: sdl.BUTTON_RIGHT}, ev[3])
	assert.Equal(t, float32(-1), ev[4].Wheel)
	assert.Equal(t, Event{Type: EventWindowResize, Width: 640, Height: 480}, ev[5])

	assert.True(t, in.IsKeyPressed(sdl.SCANCODE_A))
	assert.False(t, in.IsKeyPressed(sdl.SCANCODE_B))
}

func TestQuitEventSetsQuit(t *testing.T) {
	in := New()
	in.handle(&sdl.QuitEvent{})
	assert.True(t, in.quit)
	assert.Equal(t, EventQuit, in.Events()[0].Type)
}
