package mesh

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	fc "github.com/sruffner/figurecomposer-sub001"
)

// Projector is the external 3D-to-2D projection service. Project returns
// the screen-space image of a world point, or ok=false when the point has
// no well-defined projection. RotationAngle (degrees) and the back/front
// world coordinates along each data axis drive strip orientation and
// back-to-front traversal in the generator.
type Projector interface {
	Project(x, y, z float64) (p fc.Point, ok bool)
	RotationAngle() float64
	BackX() float64
	FrontX() float64
	BackY() float64
	FrontY() float64
}

// Camera is a reference Projector: an orthographic view of the data box,
// rotated about the vertical axis and tilted by an elevation angle, mapped
// into a width x height viewport. The surrounding system substitutes its
// own projector; Camera makes the module usable and testable standalone.
type Camera struct {
	x0, x1, y0, y1, z0, z1 float64
	rotation               float64 // degrees about the vertical axis
	elevation              float64 // degrees above the XY plane
	width, height          float64

	rot   r3.Rotation // data box to view space
	scale float64
}

// NewCamera creates an orthographic camera over the given data box,
// viewed at the given rotation and elevation (degrees), projecting into a
// width x height viewport.
func NewCamera(x0, x1, y0, y1, z0, z1, rotation, elevation, width, height float64) *Camera {
	c := &Camera{
		x0: x0, x1: x1, y0: y0, y1: y1, z0: z0, z1: z1,
		width: width, height: height,
	}
	c.SetAngles(rotation, elevation)
	return c
}

// SetAngles updates the camera rotation and elevation (degrees). Any mesh
// generator using this camera must be invalidated afterwards.
func (c *Camera) SetAngles(rotation, elevation float64) {
	c.rotation = rotation
	c.elevation = elevation
	rz := r3.NewRotation(rotation*math.Pi/180, r3.Vec{Z: 1})
	rx := r3.NewRotation(elevation*math.Pi/180, r3.Vec{X: 1})
	c.rot = composeRotations(rx, rz)
	// Fit the rotated unit box: its view-space image never exceeds a
	// radius of sqrt(3) around the center.
	c.scale = math.Min(c.width, c.height) / (2 * math.Sqrt(3))
}

// composeRotations returns a rotation applying first then second.
func composeRotations(second, first r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(second), quat.Number(first)))
}

// RotationAngle returns the camera rotation in degrees.
func (c *Camera) RotationAngle() float64 { return c.rotation }

// Elevation returns the camera elevation in degrees.
func (c *Camera) Elevation() float64 { return c.elevation }

// normalize maps a world point into the [-1,1] data box.
func (c *Camera) normalize(x, y, z float64) (r3.Vec, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		return r3.Vec{}, false
	}
	nx := 2*(x-c.x0)/(c.x1-c.x0) - 1
	ny := 2*(y-c.y0)/(c.y1-c.y0) - 1
	nz := 0.0
	if c.z1 != c.z0 {
		nz = 2*(z-c.z0)/(c.z1-c.z0) - 1
	}
	return r3.Vec{X: nx, Y: ny, Z: nz}, true
}

// Project maps a world point to viewport coordinates. ok is false for NaN
// inputs or a point with no finite image.
func (c *Camera) Project(x, y, z float64) (fc.Point, bool) {
	n, ok := c.normalize(x, y, z)
	if !ok {
		return fc.Point{}, false
	}
	v := c.rot.Rotate(n)
	p := fc.Pt(c.width/2+v.X*c.scale, c.height/2-v.Z*c.scale)
	if !p.IsDefined() {
		return fc.Point{}, false
	}
	return p, true
}

// depthOfAxis returns the view-space depth gained per unit step along a
// data axis. Positive means the axis maximum lies farther from the viewer.
func (c *Camera) depthOfAxis(axis r3.Vec) float64 {
	return c.rot.Rotate(axis).Y
}

// BackX returns the world X coordinate on the side of the data box
// farthest from the viewer.
func (c *Camera) BackX() float64 {
	if c.depthOfAxis(r3.Vec{X: 1}) >= 0 {
		return c.x1
	}
	return c.x0
}

// FrontX returns the world X coordinate on the side nearest the viewer.
func (c *Camera) FrontX() float64 {
	if c.depthOfAxis(r3.Vec{X: 1}) >= 0 {
		return c.x0
	}
	return c.x1
}

// BackY returns the world Y coordinate on the side of the data box
// farthest from the viewer.
func (c *Camera) BackY() float64 {
	if c.depthOfAxis(r3.Vec{Y: 1}) >= 0 {
		return c.y1
	}
	return c.y0
}

// FrontY returns the world Y coordinate on the side nearest the viewer.
func (c *Camera) FrontY() float64 {
	if c.depthOfAxis(r3.Vec{Y: 1}) >= 0 {
		return c.y0
	}
	return c.y1
}
