package viewer

import (
	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sciviz/internal/config"
	"github.com/Faultbox/sciviz/internal/engine/camera"
	"github.com/Faultbox/sciviz/internal/engine/input"
	"github.com/Faultbox/sciviz/internal/visual"
)

// controls maps input events onto the camera and the scene's models.
//
//	left drag   rotate
//	right drag  pan
//	wheel       zoom
//	middle      fade / unfade the model under the cursor
//	R           animated reset to the home view
//	A / Z       raise / lower model opacity
//	H           toggle models hidden
//	Esc         quit
type controls struct {
	scene    *visual.Scene
	ball     *camera.Trackball
	render   config.RenderConfig
	viewport func(width, height int)
	quit     bool

	width, height int
}

// fadedAlpha is the opacity of a model faded by a middle click.
const fadedAlpha = 0.3

func (c *controls) handle(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		c.quit = true
	case input.EventWindowResize:
		c.resize(ev.Width, ev.Height)
	case input.EventMouseMove:
		switch {
		case ev.Dragging(sdl.BUTTON_LEFT):
			c.ball.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
		case ev.Dragging(sdl.BUTTON_RIGHT):
			c.ball.HandlePan(float32(ev.DeltaX), float32(ev.DeltaY))
		}
	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_MIDDLE {
			c.fade(ev.MouseX, ev.MouseY)
		}
	case input.EventMouseWheel:
		c.ball.HandleZoom(ev.Wheel)
	case input.EventKeyDown:
		c.key(ev.Key)
	}
}

func (c *controls) key(k sdl.Scancode) {
	switch k {
	case sdl.SCANCODE_ESCAPE:
		c.quit = true
	case sdl.SCANCODE_R:
		c.ball.Reset()
	case sdl.SCANCODE_A:
		for _, m := range c.scene.Models() {
			m.IncAlpha()
		}
	case sdl.SCANCODE_Z:
		for _, m := range c.scene.Models() {
			m.DecAlpha()
		}
	case sdl.SCANCODE_H:
		for _, m := range c.scene.Models() {
			m.ToggleHide()
		}
	}
}

// fade toggles the opacity of the model under pixel (x, y).
func (c *controls) fade(x, y int) {
	if c.width == 0 || c.height == 0 {
		return
	}
	m, ok := c.scene.Pick(float32(x), float32(y), float32(c.width), float32(c.height))
	if !ok {
		return
	}
	if m.Alpha() > fadedAlpha {
		m.SetAlpha(fadedAlpha)
	} else {
		m.SetAlpha(1)
	}
}

// resize updates the viewport and keeps the projection's aspect ratio.
func (c *controls) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	if c.viewport != nil {
		c.viewport(width, height)
	}
	fov := c.render.FOV * math32.Pi / 180
	c.scene.SetPerspective(fov, float32(width)/float32(height), c.render.Near, c.render.Far)
}
