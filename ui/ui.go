package ui

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/jyane/gones/nes"
)

// Start opens a glfw/OpenGL window, drives the Board's master clock from
// this goroutine, and uploads each completed frame as a texture. It also
// starts the portaudio stream and wires it to the Board's APU.
func Start(b *nes.Board, width, height int) {
	if err := glfw.Init(); err != nil {
		glog.Fatalln(err)
	}
	defer glfw.Terminate()

	window, err := glfw.CreateWindow(width, height, "gones", nil, nil)
	if err != nil {
		glog.Fatalln(err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glog.Fatalln(err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	program, err := newProgram()
	if err != nil {
		glog.Fatalln(err)
	}
	gl.UseProgram(program)

	audio := newAudio()
	b.APU.SetAudioOut(audio.channel)
	if err := audio.start(); err != nil {
		glog.Fatalln(err)
	}
	defer audio.terminate()

	for !window.ShouldClose() {
		for !b.Clock() {
			// keep driving the master clock until a frame finishes
		}
		updateTexture(program, b.PPU.Picture())
		b.SetControllers(pollButtons(window), [8]bool{})
		window.SwapBuffers()
		glfw.PollEvents()
		time.Sleep(time.Millisecond) // short pause between frames; no frame-rate limit
	}
}
