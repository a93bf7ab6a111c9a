package env

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/game"
)

// Plane2D is a line in the XY plane. Points with a negative distance are behind it.
type Plane2D struct {
	Normal mgl32.Vec2
	Dist   float32
}

func (p Plane2D) normalize() Plane2D {
	l := p.Normal.Len()
	return Plane2D{Normal: p.Normal.Mul(1 / l), Dist: p.Dist / l}
}

// DistToPoint returns the signed distance from the plane to the point.
func (p Plane2D) DistToPoint(point mgl32.Vec2) float32 {
	return p.Normal.Dot(point) + p.Dist
}

// DistToCircle returns the signed distance from the plane to the nearest point of the circle.
func (p Plane2D) DistToCircle(center mgl32.Vec2, radius float32) float32 {
	return p.DistToPoint(center) - radius
}

// Box2D is an oriented square obstacle, bounded by four planes facing outwards.
type Box2D struct {
	planes [4]Plane2D
	bounds cube.BBox
}

// NewBox2D returns a square with sides of length size centred on the origin, moved by the 2D homogeneous
// transform. The transform must be invertible. height is the height of its bounding box.
func NewBox2D(size, height float32, transform mgl32.Mat3) Box2D {
	h := size / 2
	inverseTranspose := transform.Inv().Transpose()
	plane := func(v mgl32.Vec3) Plane2D {
		v = inverseTranspose.Mul3x1(v)
		return Plane2D{Normal: v.Vec2(), Dist: v.Z()}.normalize()
	}
	corner := func(x, y float32) mgl32.Vec2 {
		return transform.Mul3x1(mgl32.Vec3{x, y, 1}).Vec2()
	}
	return Box2D{
		planes: [4]Plane2D{
			plane(mgl32.Vec3{-1, 0, -h}),
			plane(mgl32.Vec3{1, 0, -h}),
			plane(mgl32.Vec3{0, -1, -h}),
			plane(mgl32.Vec3{0, 1, -h}),
		},
		bounds: game.BoxFromPoints(height, corner(-h, -h), corner(h, -h), corner(h, h), corner(-h, h)),
	}
}

// Bounds returns the axis-aligned bounding box of the obstacle.
func (b Box2D) Bounds() cube.BBox {
	return b.bounds
}

// CollideCircle returns the shortest offset that moves the circle out of the box, or false if they do
// not overlap.
func (b Box2D) CollideCircle(center mgl32.Vec2, radius float32) (mgl32.Vec2, bool) {
	var (
		normal mgl32.Vec2
		depth  = float32(-1)
	)
	for _, p := range b.planes {
		d := p.DistToCircle(center, radius)
		if d >= 0 {
			return mgl32.Vec2{}, false
		}
		if depth < 0 || -d < depth {
			normal, depth = p.Normal, -d
		}
	}
	return normal.Mul(depth), true
}
