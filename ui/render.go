package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jyane/gones/nes"
)

// Shaders for a single textured quad covering the whole window.
const (
	vertexShader = `
  #version 330

  attribute vec3 position;
  attribute vec2 uv;
  varying vec2 vuv;
  void main(void){
    gl_Position = vec4(position, 1.0);
    vuv = uv;
  }
  ` + "\x00"

	fragmentShader = `
  #version 330

  varying vec2 vuv;
  uniform sampler2D texture;
  void main(void){
    gl_FragColor = texture2D(texture, vuv);
  }
  ` + "\x00"
)

func compileShader(code string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	ccode := gl.Str(code)
	gl.ShaderSource(shader, 1, &ccode, nil)
	gl.CompileShader(shader)
	var result int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile shader: %v\n%v", code, log)
	}
	return shader, nil
}

func newProgram() (uint32, error) {
	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	var result int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

var vertexPosition = []float32{
	1, 1,
	-1, 1,
	-1, -1,
	1, -1,
}
var vertexUV = []float32{
	1, 0,
	0, 0,
	0, 1,
	1, 1,
}

// updateTexture uploads one completed PPU frame as a 2D texture and draws it.
func updateTexture(program uint32, frame *image.RGBA) {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(frame.Rect.Size().X), int32(frame.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	positionLocation := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	uvLocation := uint32(gl.GetAttribLocation(program, gl.Str("uv\x00")))
	textureLocation := gl.GetUniformLocation(program, gl.Str("texture\x00"))
	gl.EnableVertexAttribArray(positionLocation)
	gl.EnableVertexAttribArray(uvLocation)
	gl.Uniform1i(textureLocation, 0)
	gl.VertexAttribPointer(positionLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexPosition))
	gl.VertexAttribPointer(uvLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexUV))
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
}

// pollButtons reads WASD+FGHJ as the one supported controller's 8 buttons.
func pollButtons(window *glfw.Window) [8]bool {
	var keys [8]bool
	keys[nes.ButtonRight] = window.GetKey(glfw.KeyD) == glfw.Press
	keys[nes.ButtonLeft] = window.GetKey(glfw.KeyA) == glfw.Press
	keys[nes.ButtonDown] = window.GetKey(glfw.KeyS) == glfw.Press
	keys[nes.ButtonUp] = window.GetKey(glfw.KeyW) == glfw.Press
	keys[nes.ButtonStart] = window.GetKey(glfw.KeyG) == glfw.Press
	keys[nes.ButtonSelect] = window.GetKey(glfw.KeyF) == glfw.Press
	keys[nes.ButtonB] = window.GetKey(glfw.KeyH) == glfw.Press
	keys[nes.ButtonA] = window.GetKey(glfw.KeyJ) == glfw.Press
	return keys
}
