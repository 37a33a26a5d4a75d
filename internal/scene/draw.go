package scene

import "github.com/go-gl/mathgl/mgl32"

// Draw submits every uploaded buffer to the backend. It does nothing
// without a backend.
func (r *Registry) Draw(viewProj mgl32.Mat4) {
	if r.backend == nil {
		return
	}
	r.backend.SetViewProjection(viewProj)

	for i := range r.walls {
		r.walls[i].Draw()
	}
	for i := range r.floors {
		r.floors[i].Draw()
	}
	for i := range r.ceilings {
		r.ceilings[i].Draw()
	}
	for i := range r.doors {
		r.doors[i].Draw()
	}

	if trim, ok := r.model(FloorTrimModel); ok {
		for i := range r.walls {
			for _, m := range r.walls[i].FloorTrims {
				trim.Buffer.Draw(r.walls[i].MaterialIndex, m)
			}
		}
	}
	if trim, ok := r.model(CeilingTrimModel); ok {
		for i := range r.walls {
			for _, m := range r.walls[i].CeilingTrims {
				trim.Buffer.Draw(r.walls[i].MaterialIndex, m)
			}
		}
	}

	for i := range r.gameObjs {
		o := &r.gameObjs[i]
		if m, ok := r.model(o.ModelName); ok {
			m.Buffer.Draw(o.MaterialIndex, o.ModelMatrix())
		}
	}
	for i := range r.animated {
		o := &r.animated[i]
		if m, ok := r.model(o.ModelName); ok {
			m.Buffer.Draw(o.MaterialIndex, o.ModelMatrix())
		}
	}
}
