package rtscene

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// std430 strides of the shader-side structs.
const (
	VertexStride   = 16
	MeshStride     = 16
	InstanceStride = 144
)

// VertexBytes encodes the vertex pool as vec4s with w = 1.
func (s *Scene) VertexBytes() []byte {
	buf := make([]byte, 0, len(s.Vertices)*VertexStride)
	for _, v := range s.Vertices {
		buf = appendVec4(buf, v.Vec4(1))
	}
	return buf
}

// MeshBytes encodes the mesh table: base, count and two padding words.
func (s *Scene) MeshBytes() []byte {
	buf := make([]byte, 0, len(s.Meshes)*MeshStride)
	for _, m := range s.Meshes {
		buf = binary.LittleEndian.AppendUint32(buf, m.BaseVertex)
		buf = binary.LittleEndian.AppendUint32(buf, m.VertexCount)
		buf = binary.LittleEndian.AppendUint32(buf, 0)
		buf = binary.LittleEndian.AppendUint32(buf, 0)
	}
	return buf
}

// InstanceBytes encodes the instance table: two column-major mat4s, the
// mesh index and three padding words.
func (s *Scene) InstanceBytes() []byte {
	buf := make([]byte, 0, len(s.Instances)*InstanceStride)
	for _, inst := range s.Instances {
		buf = appendMat4(buf, inst.ModelMatrix)
		buf = appendMat4(buf, inst.InverseModelMatrix)
		buf = binary.LittleEndian.AppendUint32(buf, inst.MeshIndex)
		for i := 0; i < 3; i++ {
			buf = binary.LittleEndian.AppendUint32(buf, 0)
		}
	}
	return buf
}

func appendVec4(buf []byte, v mgl32.Vec4) []byte {
	for _, f := range v {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

func appendMat4(buf []byte, m mgl32.Mat4) []byte {
	for _, f := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
