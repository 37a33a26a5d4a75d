// Package input turns SDL2 events into per-frame viewer input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Input is the state gathered from one frame of events.
type Input struct {
	Quit bool
	// Resized is set with the new size when the window changed size.
	Resized       bool
	Width, Height int

	// Relative mouse motion and wheel since the last Poll.
	MouseDX, MouseDY float32
	Wheel            float32
	// Dragging is true while the right button is held.
	Dragging bool

	pressed map[sdl.Scancode]bool
	held    map[sdl.Scancode]bool
	clicked bool
}

// New creates an empty input state.
func New() *Input {
	return &Input{
		pressed: make(map[sdl.Scancode]bool),
		held:    make(map[sdl.Scancode]bool),
	}
}

// Poll drains the SDL event queue.
func (i *Input) Poll() {
	i.Resized = false
	i.MouseDX, i.MouseDY, i.Wheel = 0, 0, 0
	i.clicked = false
	clear(i.pressed)

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.Resized = true
				i.Width, i.Height = int(e.Data1), int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			code := e.Keysym.Scancode
			if e.Type == sdl.KEYDOWN {
				if e.Repeat == 0 {
					i.pressed[code] = true
				}
				i.held[code] = true
			} else {
				i.held[code] = false
			}

		case *sdl.MouseMotionEvent:
			i.MouseDX += float32(e.XRel)
			i.MouseDY += float32(e.YRel)

		case *sdl.MouseButtonEvent:
			switch e.Button {
			case sdl.BUTTON_LEFT:
				if e.Type == sdl.MOUSEBUTTONDOWN {
					i.clicked = true
				}
			case sdl.BUTTON_RIGHT:
				i.Dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseWheelEvent:
			i.Wheel += float32(e.Y)
		}
	}
}

// Pressed reports whether key went down this frame.
func (i *Input) Pressed(key sdl.Scancode) bool {
	return i.pressed[key]
}

// Held reports whether key is down.
func (i *Input) Held(key sdl.Scancode) bool {
	return i.held[key]
}

// Clicked reports whether the left button went down this frame.
func (i *Input) Clicked() bool {
	return i.clicked
}

// Axis returns +1, -1 or 0 from a pair of keys.
func (i *Input) Axis(positive, negative sdl.Scancode) float32 {
	var v float32
	if i.held[positive] {
		v++
	}
	if i.held[negative] {
		v--
	}
	return v
}
