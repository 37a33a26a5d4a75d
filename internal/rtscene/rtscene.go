// Package rtscene flattens placed shapes into the ray-tracing scene: one
// shared vertex pool, a mesh table indexing into it and an instance table
// carrying transforms.
package rtscene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrSingularTransform is returned for a model matrix without inverse.
	ErrSingularTransform = errors.New("rtscene: singular model matrix")
	// ErrShapeMismatch is returned when one key is placed with different
	// vertex counts.
	ErrShapeMismatch = errors.New("rtscene: shape key reused with different vertex count")
)

// RTMesh is a contiguous range of the vertex pool.
type RTMesh struct {
	BaseVertex  uint32
	VertexCount uint32
}

// RTInstance places one mesh in the world.
type RTInstance struct {
	ModelMatrix        mgl32.Mat4
	InverseModelMatrix mgl32.Mat4
	MeshIndex          uint32
}

// Placement is one shape to instance. Vertices are the local-space triangle
// list for Key; only the first placement of a key contributes them.
type Placement struct {
	Key      string
	Vertices []mgl32.Vec3
	Model    mgl32.Mat4
}

// Scene is the packed ray-tracing data.
type Scene struct {
	Vertices  []mgl32.Vec3
	Meshes    []RTMesh
	Instances []RTInstance
	// MeshKeys[i] is the shape key of Meshes[i].
	MeshKeys []string
}

// Pack builds a Scene from placements in order.
func Pack(placements []Placement) (*Scene, error) {
	s := &Scene{
		Vertices:  []mgl32.Vec3{},
		Meshes:    []RTMesh{},
		Instances: make([]RTInstance, 0, len(placements)),
	}
	meshByKey := make(map[string]uint32)

	for i, p := range placements {
		inv, ok := inverse(p.Model)
		if !ok {
			return nil, fmt.Errorf("placement %d (%s): %w", i, p.Key, ErrSingularTransform)
		}

		idx, seen := meshByKey[p.Key]
		if seen {
			if got := s.Meshes[idx].VertexCount; got != uint32(len(p.Vertices)) {
				return nil, fmt.Errorf("placement %d (%s): %d vertices, first had %d: %w",
					i, p.Key, len(p.Vertices), got, ErrShapeMismatch)
			}
		} else {
			idx = uint32(len(s.Meshes))
			meshByKey[p.Key] = idx
			s.Meshes = append(s.Meshes, RTMesh{
				BaseVertex:  uint32(len(s.Vertices)),
				VertexCount: uint32(len(p.Vertices)),
			})
			s.MeshKeys = append(s.MeshKeys, p.Key)
			s.Vertices = append(s.Vertices, p.Vertices...)
		}

		s.Instances = append(s.Instances, RTInstance{
			ModelMatrix:        p.Model,
			InverseModelMatrix: inv,
			MeshIndex:          idx,
		})
	}
	return s, nil
}

// inverse returns the exact inverse of m. mgl32 returns the zero matrix for
// a zero determinant.
func inverse(m mgl32.Mat4) (mgl32.Mat4, bool) {
	if m.Det() == 0 {
		return mgl32.Mat4{}, false
	}
	inv := m.Inv()
	if inv == (mgl32.Mat4{}) {
		return mgl32.Mat4{}, false
	}
	return inv, true
}

// Stats summarizes a packed scene.
type Stats struct {
	Vertices  int
	Meshes    int
	Instances int
	// SharedInstances counts instances that reuse an earlier mesh.
	SharedInstances int
}

// Stats returns counts for logging and tooling.
func (s *Scene) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		Vertices:        len(s.Vertices),
		Meshes:          len(s.Meshes),
		Instances:       len(s.Instances),
		SharedInstances: len(s.Instances) - len(s.Meshes),
	}
}

// InstancesOf returns how many instances reference mesh index i.
func (s *Scene) InstancesOf(i uint32) int {
	n := 0
	for _, inst := range s.Instances {
		if inst.MeshIndex == i {
			n++
		}
	}
	return n
}
