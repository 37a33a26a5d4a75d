package gpu

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/pkg/geom"
)

// DrawCall records one Draw submission.
type DrawCall struct {
	ID            uint32
	VertexCount   int
	MaterialIndex int
	Model         mgl32.Mat4
}

// Headless is an in-memory Backend used by tools and tests. It keeps the
// uploaded vertices and counts releases per id.
type Headless struct {
	mu       sync.Mutex
	nextID   uint32
	live     map[uint32][]geom.Vertex
	releases map[uint32]int
	draws    []DrawCall
	viewProj mgl32.Mat4
}

// NewHeadless creates an empty headless backend.
func NewHeadless() *Headless {
	return &Headless{
		live:     make(map[uint32][]geom.Vertex),
		releases: make(map[uint32]int),
		viewProj: mgl32.Ident4(),
	}
}

// Upload stores a copy of vertices.
func (h *Headless) Upload(vertices []geom.Vertex) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.live[h.nextID] = append([]geom.Vertex(nil), vertices...)
	return h.nextID, nil
}

// Release drops a buffer and records the release.
func (h *Headless) Release(id uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.live, id)
	h.releases[id]++
}

// Draw records the call.
func (h *Headless) Draw(id uint32, vertexCount int, materialIndex int, model mgl32.Mat4) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.draws = append(h.draws, DrawCall{ID: id, VertexCount: vertexCount, MaterialIndex: materialIndex, Model: model})
}

// SetViewProjection stores the matrix.
func (h *Headless) SetViewProjection(viewProj mgl32.Mat4) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewProj = viewProj
}

// LiveBuffers returns the number of uploaded, unreleased buffers.
func (h *Headless) LiveBuffers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Uploaded returns the total number of uploads so far.
func (h *Headless) Uploaded() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int(h.nextID)
}

// ReleaseCount returns how many times id was released.
func (h *Headless) ReleaseCount(id uint32) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.releases[id]
}

// Vertices returns the stored vertices of a live buffer.
func (h *Headless) Vertices(id uint32) ([]geom.Vertex, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.live[id]
	return v, ok
}

// Draws returns and clears the recorded draw calls.
func (h *Headless) Draws() []DrawCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.draws
	h.draws = nil
	return out
}
