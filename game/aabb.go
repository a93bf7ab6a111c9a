package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// PlayerBox returns the bounding box of a player standing at pos.
func PlayerBox(pos mgl32.Vec3) cube.BBox {
	return cube.Box(
		pos.X()-PlayerRadius, pos.Y()-PlayerRadius, pos.Z(),
		pos.X()+PlayerRadius, pos.Y()+PlayerRadius, pos.Z()+PlayerEyeLevel,
	)
}

// BoxFromPoints returns the smallest box holding every 2D point, extruded from the floor to height.
func BoxFromPoints(height float32, points ...mgl32.Vec2) cube.BBox {
	if len(points) == 0 {
		return cube.Box(0, 0, 0, 0, 0, height)
	}
	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for _, p := range points {
		minX, maxX = math32.Min(minX, p.X()), math32.Max(maxX, p.X())
		minY, maxY = math32.Min(minY, p.Y()), math32.Max(maxY, p.Y())
	}
	return cube.Box(minX, minY, 0, maxX, maxY, height)
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}
