// Package renderer is the OpenGL 4.1 core implementation of gpu.Backend.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/levelkit/internal/engine/lighting"
	"github.com/Faultbox/levelkit/internal/engine/shader"
	"github.com/Faultbox/levelkit/internal/logger"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Palette colors materials by index, wrapping around.
	Palette []mgl32.Vec3
}

// DefaultPalette is used when Config.Palette is empty.
var DefaultPalette = []mgl32.Vec3{
	{0.78, 0.74, 0.68}, // plaster
	{0.55, 0.42, 0.30}, // wood
	{0.62, 0.62, 0.66}, // tile
	{0.36, 0.30, 0.26}, // dark wood
}

type vertexArray struct {
	vao, vbo uint32
}

// Renderer draws uploaded vertex buffers with a forward point-light shader.
// All methods must run on the thread that owns the GL context.
type Renderer struct {
	cfg     Config
	program *shader.Program
	arrays  map[uint32]vertexArray
	nextID  uint32
	lights  *lighting.LightBuffer
	log     *zap.Logger

	crosshair uint32
}

// New initializes OpenGL and compiles the scene shader.
// IMPORTANT: Must be called AFTER the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette
	}
	r := &Renderer{
		cfg:    cfg,
		arrays: make(map[uint32]vertexArray),
		lights: lighting.NewLightBuffer(),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.05, 0.05, 0.07, 1.0)

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program.Use()
	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, &ident[0])
	r.SetLighting(lighting.Setup{Ambient: 0.2})

	if r.crosshair, err = r.Upload(crosshairMesh()); err != nil {
		return nil, fmt.Errorf("failed to create crosshair: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close deletes every live buffer and the shader.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("buffers", len(r.arrays)))
	for id := range r.arrays {
		r.Release(id)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.cfg.Width, r.cfg.Height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns width / height of the viewport.
func (r *Renderer) Aspect() float32 {
	if r.cfg.Height == 0 {
		return 1
	}
	return float32(r.cfg.Width) / float32(r.cfg.Height)
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
}

// Upload creates a VAO/VBO pair laid out as geom.Vertex.
func (r *Renderer) Upload(vertices []geom.Vertex) (uint32, error) {
	if len(vertices) == 0 {
		return 0, fmt.Errorf("upload: no vertices")
	}
	var va vertexArray
	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)
	gl.GenBuffers(1, &va.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*geom.VertexStride, gl.Ptr(vertices), gl.STATIC_DRAW)

	attribs := []struct {
		size   int32
		offset int
	}{
		{3, geom.OffsetPosition},
		{2, geom.OffsetUV},
		{3, geom.OffsetNormal},
		{3, geom.OffsetTangent},
		{3, geom.OffsetBitangent},
	}
	for loc, a := range attribs {
		gl.VertexAttribPointerWithOffset(uint32(loc), a.size, gl.FLOAT, false, geom.VertexStride, uintptr(a.offset))
		gl.EnableVertexAttribArray(uint32(loc))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.nextID++
	r.arrays[r.nextID] = va
	return r.nextID, nil
}

// Release deletes the VAO/VBO pair of id.
func (r *Renderer) Release(id uint32) {
	va, ok := r.arrays[id]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &va.vbo)
	gl.DeleteVertexArrays(1, &va.vao)
	delete(r.arrays, id)
}

// Draw renders a buffer with the material color and model matrix.
func (r *Renderer) Draw(id uint32, vertexCount int, materialIndex int, model mgl32.Mat4) {
	va, ok := r.arrays[id]
	if !ok {
		return
	}
	color := r.cfg.Palette[materialIndex%len(r.cfg.Palette)]
	gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, &model[0])
	gl.Uniform3fv(r.program.Uniform("uAlbedo"), 1, &color[0])
	gl.BindVertexArray(va.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
	gl.BindVertexArray(0)
}

// DrawCrosshair draws an unlit cross at the screen center. It overwrites
// the view-projection matrix.
func (r *Renderer) DrawCrosshair(color mgl32.Vec3) {
	va, ok := r.arrays[r.crosshair]
	if !ok {
		return
	}
	ident := mgl32.Ident4()
	gl.Disable(gl.DEPTH_TEST)
	gl.Uniform1i(r.program.Uniform("uUnlit"), 1)
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, &ident[0])
	gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, &ident[0])
	gl.Uniform3fv(r.program.Uniform("uAlbedo"), 1, &color[0])
	gl.BindVertexArray(va.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 12)
	gl.BindVertexArray(0)
	gl.Uniform1i(r.program.Uniform("uUnlit"), 0)
	gl.Enable(gl.DEPTH_TEST)
}

func crosshairMesh() []geom.Vertex {
	const long, thin = 0.02, 0.003
	var v []geom.Vertex
	for _, half := range [][2]float32{{long, thin}, {thin, long}} {
		corners := [4]mgl32.Vec3{
			{-half[0], -half[1], 0}, {half[0], -half[1], 0},
			{half[0], half[1], 0}, {-half[0], half[1], 0},
		}
		v = geom.AppendQuad(v, corners, geom.QuadUVs(corners, 1))
	}
	return v
}

// SetViewProjection sets the camera matrix for following draws.
func (r *Renderer) SetViewProjection(viewProj mgl32.Mat4) {
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, &viewProj[0])
}

// SetLighting uploads the point lights, sun and ambient term of setup.
func (r *Renderer) SetLighting(setup lighting.Setup) {
	r.lights.SetLights(setup.Lights)
	n := int32(r.lights.Count())
	gl.Uniform1i(r.program.Uniform("uLightCount"), n)
	if n > 0 {
		gl.Uniform3fv(r.program.Uniform("uLightPos"), n, &r.lights.Positions()[0])
		gl.Uniform3fv(r.program.Uniform("uLightColor"), n, &r.lights.Colors()[0])
		gl.Uniform1fv(r.program.Uniform("uLightRadius"), n, &r.lights.Radii()[0])
	}

	var sun mgl32.Vec3
	if setup.SunLatitude != 0 {
		sun = lighting.SunDirection(setup.SunLongitude, setup.SunLatitude)
	}
	gl.Uniform3fv(r.program.Uniform("uSunDir"), 1, &sun[0])
	gl.Uniform1f(r.program.Uniform("uAmbient"), setup.Ambient)
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    vUV = aUV;
    gl_Position = uViewProj * world;
}
`

const fragmentShader = `
#version 410 core

#define MAX_LIGHTS 32

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;

uniform vec3 uAlbedo;
uniform int uLightCount;
uniform vec3 uLightPos[MAX_LIGHTS];
uniform vec3 uLightColor[MAX_LIGHTS];
uniform float uLightRadius[MAX_LIGHTS];
uniform vec3 uSunDir;
uniform float uAmbient;
uniform int uUnlit;

out vec4 FragColor;

void main() {
    if (uUnlit == 1) {
        FragColor = vec4(uAlbedo, 1.0);
        return;
    }
    vec3 n = normalize(vNormal);
    vec3 light = vec3(uAmbient);
    light += max(dot(n, uSunDir), 0.0) * vec3(1.0, 0.95, 0.85);

    for (int i = 0; i < uLightCount; i++) {
        vec3 toLight = uLightPos[i] - vWorldPos;
        float dist = length(toLight);
        float atten = clamp(1.0 - dist / uLightRadius[i], 0.0, 1.0);
        light += uLightColor[i] * max(dot(n, toLight / dist), 0.0) * atten * atten;
    }

    // Checker from UVs so texture scale is visible without textures.
    float checker = mod(floor(vUV.x) + floor(vUV.y), 2.0) * 0.08 + 0.92;
    FragColor = vec4(uAlbedo * checker * light, 1.0);
}
`
