package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/picking"
)

const boxPadding = 1e-4

// HitKind identifies what a camera ray struck.
type HitKind int

const (
	HitNone HitKind = iota
	HitWall
	HitFloor
	HitCeiling
	HitDoor
	HitGameObject
	HitAnimatedObject
)

func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "NONE"
	case HitWall:
		return "WALL"
	case HitFloor:
		return "FLOOR"
	case HitCeiling:
		return "CEILING"
	case HitDoor:
		return "DOOR"
	case HitGameObject:
		return "GAME_OBJECT"
	case HitAnimatedObject:
		return "ANIMATED_OBJECT"
	default:
		return "UNKNOWN"
	}
}

// RayCastResult is the closest hit of a camera ray. Index refers to the
// collection named by Kind.
type RayCastResult struct {
	Hit      bool
	Kind     HitKind
	Index    int
	Distance float32
	Point    mgl32.Vec3
	Ray      picking.Ray
}

// SetCameraRayResult stores a result computed elsewhere.
func (r *Registry) SetCameraRayResult(res RayCastResult) {
	r.cameraRay = res
}

// CameraRayResult returns the last stored result.
func (r *Registry) CameraRayResult() RayCastResult {
	return r.cameraRay
}

// CastCameraRay finds the closest surface along ray, stores it as the
// camera ray result and returns it. The direction is normalized so
// Distance is in world units. Primitives without mesh data are skipped.
func (r *Registry) CastCameraRay(ray picking.Ray) RayCastResult {
	ray = picking.NewRay(ray.Origin, ray.Direction)
	res := RayCastResult{Ray: ray}
	consider := func(kind HitKind, index int, t float32, ok bool) {
		if ok && (!res.Hit || t < res.Distance) {
			res.Hit, res.Kind, res.Index, res.Distance = true, kind, index, t
		}
	}
	ident := mgl32.Ident4()

	for i := range r.walls {
		t, ok := ray.IntersectMesh(r.walls[i].Vertices, ident)
		consider(HitWall, i, t, ok)
	}
	for i := range r.floors {
		t, ok := ray.IntersectMesh(r.floors[i].Vertices, ident)
		consider(HitFloor, i, t, ok)
	}
	for i := range r.ceilings {
		t, ok := ray.IntersectMesh(r.ceilings[i].Vertices, ident)
		consider(HitCeiling, i, t, ok)
	}
	for i := range r.doors {
		t, ok := ray.IntersectMesh(r.doors[i].PanelVertices, r.doors[i].DoorModelMatrix())
		consider(HitDoor, i, t, ok)
	}
	for i := range r.gameObjs {
		t, ok := r.castObject(ray, r.gameObjs[i].ModelName, r.gameObjs[i].ModelMatrix())
		consider(HitGameObject, i, t, ok)
	}
	for i := range r.animated {
		t, ok := r.castObject(ray, r.animated[i].ModelName, r.animated[i].ModelMatrix())
		consider(HitAnimatedObject, i, t, ok)
	}

	if res.Hit {
		res.Point = ray.At(res.Distance)
	}
	r.cameraRay = res
	return res
}

// castObject tests the model's world box before its triangles.
func (r *Registry) castObject(ray picking.Ray, modelName string, m mgl32.Mat4) (float32, bool) {
	model, ok := r.model(modelName)
	if !ok || len(model.Vertices) == 0 {
		return 0, false
	}
	box := picking.BoundsAABB(model.Bounds().Transform(m).Expand(boxPadding))
	if _, hit := ray.IntersectAABB(box); !hit {
		return 0, false
	}
	return ray.IntersectMesh(model.Vertices, m)
}

// CursorShouldBeInterect reports whether the last camera ray rests on a
// door close enough to use that is not mid-swing.
func (r *Registry) CursorShouldBeInterect() bool {
	res := r.cameraRay
	if !res.Hit || res.Kind != HitDoor {
		return false
	}
	if res.Index < 0 || res.Index >= len(r.doors) {
		return false
	}
	if res.Distance > r.cfg.InteractDistance {
		return false
	}
	return r.doors[res.Index].IsInteractable()
}

// InteractWithCursorTarget toggles the targeted door if the cursor allows
// it and reports whether it did.
func (r *Registry) InteractWithCursorTarget() bool {
	if !r.CursorShouldBeInterect() {
		return false
	}
	r.doors[r.cameraRay.Index].Interact()
	return true
}
