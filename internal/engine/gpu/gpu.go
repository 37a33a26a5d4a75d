// Package gpu defines the boundary between level geometry and the
// rendering backend: a backend interface and a move-only buffer handle that
// releases its GPU resource exactly once.
package gpu

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/pkg/geom"
)

// ErrNoBackend is returned when uploading without a backend.
var ErrNoBackend = errors.New("gpu: no backend")

// Backend uploads, draws and releases vertex buffers. IDs are opaque to
// callers and never reused while live.
type Backend interface {
	Upload(vertices []geom.Vertex) (uint32, error)
	Release(id uint32)
	Draw(id uint32, vertexCount int, materialIndex int, model mgl32.Mat4)
	SetViewProjection(viewProj mgl32.Mat4)
}

type handle struct {
	backend  Backend
	id       uint32
	count    int
	released bool
}

// Buffer owns one uploaded vertex buffer. The zero value is an empty
// buffer. Copies of a Buffer share the same resource, which is released on
// the first Release call; later calls are no-ops. Use Take to move
// ownership explicitly.
type Buffer struct {
	h *handle
}

// Upload sends vertices to backend and returns the owning Buffer.
func Upload(backend Backend, vertices []geom.Vertex) (Buffer, error) {
	if backend == nil {
		return Buffer{}, ErrNoBackend
	}
	id, err := backend.Upload(vertices)
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{h: &handle{backend: backend, id: id, count: len(vertices)}}, nil
}

// Valid reports whether the buffer holds a live resource.
func (b Buffer) Valid() bool {
	return b.h != nil && !b.h.released
}

// ID returns the backend id, or 0 when the buffer is not valid.
func (b Buffer) ID() uint32 {
	if !b.Valid() {
		return 0
	}
	return b.h.id
}

// VertexCount returns the number of uploaded vertices.
func (b Buffer) VertexCount() int {
	if !b.Valid() {
		return 0
	}
	return b.h.count
}

// Release frees the GPU resource once.
func (b Buffer) Release() {
	if !b.Valid() {
		return
	}
	b.h.released = true
	b.h.backend.Release(b.h.id)
}

// Take moves ownership out of *b, leaving it empty.
func (b *Buffer) Take() Buffer {
	out := *b
	*b = Buffer{}
	return out
}

// Draw submits the buffer with the given material and model matrix.
func (b Buffer) Draw(materialIndex int, model mgl32.Mat4) {
	if !b.Valid() {
		return
	}
	b.h.backend.Draw(b.h.id, b.h.count, materialIndex, model)
}
