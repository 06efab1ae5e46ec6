package desktop

import "github.com/go-gl/glfw/v3.3/glfw"

// quitKeys close the game immediately.
var quitKeys = []glfw.Key{glfw.KeyEscape, glfw.KeyQ}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// QuitRequested reports a quit key press or a window close request.
func (in *Input) QuitRequested(window *glfw.Window) bool {
	if window.ShouldClose() {
		return true
	}
	for _, k := range quitKeys {
		if in.JustPressed(window, k) {
			return true
		}
	}
	return false
}
