package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around Y, latitude is
// the elevation from the horizon.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lonRad := float64(mgl32.DegToRad(longitude))
	latRad := float64(mgl32.DegToRad(latitude))

	// Spherical to Cartesian conversion
	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return mgl32.Vec3{x, y, z}
}
