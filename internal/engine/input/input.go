// Package input turns SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	// Relative motion for EventMouseMove
	DeltaX int
	DeltaY int
	Wheel  float32
	Button uint8
	// Buttons held during EventMouseMove, as an SDL button mask
	Held uint32
}

// Input handles all input processing.
type Input struct {
	events []Event
	quit   bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events
	i.quit = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	return i.quit
}

// handle translates one SDL event.
func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		i.quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})
		} else if e.Type == sdl.KEYUP {
			i.events = append(i.events, Event{
				Type: EventKeyUp,
				Key:  e.Keysym.Scancode,
			})
		}

	case *sdl.MouseMotionEvent:
		i.events = append(i.events, Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
			Held:   e.State,
		})

	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.events = append(i.events, Event{
				Type:   EventMouseDown,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})
		} else if e.Type == sdl.MOUSEBUTTONUP {
			i.events = append(i.events, Event{
				Type:   EventMouseUp,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})
		}

	case *sdl.MouseWheelEvent:
		i.events = append(i.events, Event{
			Type:  EventMouseWheel,
			Wheel: float32(e.Y),
		})
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Dragging reports whether e is a motion with button held down.
func (e Event) Dragging(button uint8) bool {
	return e.Type == EventMouseMove && e.Held&sdl.Button(uint32(button)) != 0
}
