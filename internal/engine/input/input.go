// Package input tracks SDL2 keyboard and mouse state between frames.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Frame is the per-frame input that is not held state.
type Frame struct {
	Quit       bool
	Screenshot bool
	Resized    bool // Query the window for the new drawable size

	Wheel float32 // Scroll notches, positive away from the user
	DragX float32 // Mouse motion while the right button is held
	DragY float32 // Positive when the mouse moves up
}

// Input handles all input processing.
type Input struct {
	held     map[sdl.Scancode]bool
	dragging bool
	frame    Frame
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		held: make(map[sdl.Scancode]bool),
	}
}

// Update polls pending SDL events and returns the frame's input.
func (i *Input) Update() Frame {
	i.frame = Frame{}
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	return i.frame
}

// Held reports whether a key is currently down.
func (i *Input) Held(key sdl.Scancode) bool {
	return i.held[key]
}

// Frame returns the input gathered by the last Update.
func (i *Input) Frame() Frame {
	return i.frame
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.frame.Quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.frame.Resized = true
		}

	case *sdl.KeyboardEvent:
		switch e.Type {
		case sdl.KEYDOWN:
			i.held[e.Keysym.Scancode] = true
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				i.frame.Quit = true
			case sdl.SCANCODE_F12:
				i.frame.Screenshot = e.Repeat == 0
			}
		case sdl.KEYUP:
			delete(i.held, e.Keysym.Scancode)
		}

	case *sdl.MouseWheelEvent:
		i.frame.Wheel += float32(e.Y)

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_RIGHT {
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		}

	case *sdl.MouseMotionEvent:
		if i.dragging {
			i.frame.DragX += float32(e.XRel)
			i.frame.DragY -= float32(e.YRel)
		}
	}
}
