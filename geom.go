package frond

import "github.com/chewxy/math32"

// Vec3 is a 3D vector used for positions, directions, and offsets
// throughout the API. Components are float32, matching the precision
// tracking runtimes deliver.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// LengthSq returns the squared length of v.
func (v Vec3) LengthSq() float32 {
	return v.Dot(v)
}

// Dist returns the distance between v and o.
func (v Vec3) Dist(o Vec3) float32 {
	return v.Sub(o).Length()
}

// Lerp linearly interpolates from v toward o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// minNormalLength is the smallest vector length accepted by Normalized.
// Anything shorter is treated as degenerate input.
const minNormalLength = 1e-6

// Normalized returns v scaled to unit length. The second return value is
// false when v is too short to yield a meaningful direction, in which case
// the zero vector is returned.
func (v Vec3) Normalized() (Vec3, bool) {
	l := v.Length()
	if l < minNormalLength || !isFinite(l) {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Quat is a rotation quaternion. The zero value is not a valid rotation;
// use QuatIdentity or one of the constructors.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{0, 0, 0, 1}

// Rotate applies the rotation q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*cross(q.xyz, cross(q.xyz, v) + q.w*v)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Add(v.Scale(q.W)).Scale(2)
	return v.Add(u.Cross(t))
}

// Normalized returns q scaled to unit length. A degenerate quaternion
// normalizes to the identity.
func (q Quat) Normalized() Quat {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < minNormalLength || !isFinite(l) {
		return QuatIdentity
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// IsFinite reports whether every component is a finite number.
func (q Quat) IsFinite() bool {
	return isFinite(q.X) && isFinite(q.Y) && isFinite(q.Z) && isFinite(q.W)
}

// Slerp spherically interpolates from a to b by t in [0, 1]. Inputs are
// assumed unit-length. Falls back to normalized lerp when the quaternions
// are nearly parallel or opposed.
func Slerp(a, b Quat, t float32) Quat {
	cos := a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W

	// Take the short way around.
	if cos < 0 {
		b = Quat{-b.X, -b.Y, -b.Z, -b.W}
		cos = -cos
	}

	if cos > 0.9995 {
		return Quat{
			a.X + (b.X-a.X)*t,
			a.Y + (b.Y-a.Y)*t,
			a.Z + (b.Z-a.Z)*t,
			a.W + (b.W-a.W)*t,
		}.Normalized()
	}

	theta := math32.Acos(cos)
	sin := math32.Sin(theta)
	wa := math32.Sin((1-t)*theta) / sin
	wb := math32.Sin(t*theta) / sin
	return Quat{
		a.X*wa + b.X*wb,
		a.Y*wa + b.Y*wb,
		a.Z*wa + b.Z*wb,
		a.W*wa + b.W*wb,
	}.Normalized()
}

// QuatFromAxes builds the rotation whose local X, Y, Z axes are the given
// world-space vectors. The inputs must form a right-handed orthonormal
// basis; garbage in, garbage out.
func QuatFromAxes(x, y, z Vec3) Quat {
	// Shepperd's method over the column-major rotation matrix [x y z].
	trace := x.X + y.Y + z.Z
	var q Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = Quat{(y.Z - z.Y) / s, (z.X - x.Z) / s, (x.Y - y.X) / s, s / 4}
	case x.X > y.Y && x.X > z.Z:
		s := math32.Sqrt(1+x.X-y.Y-z.Z) * 2
		q = Quat{s / 4, (y.X + x.Y) / s, (z.X + x.Z) / s, (y.Z - z.Y) / s}
	case y.Y > z.Z:
		s := math32.Sqrt(1+y.Y-x.X-z.Z) * 2
		q = Quat{(y.X + x.Y) / s, s / 4, (z.Y + y.Z) / s, (z.X - x.Z) / s}
	default:
		s := math32.Sqrt(1+z.Z-x.X-y.Y) * 2
		q = Quat{(z.X + x.Z) / s, (z.Y + y.Z) / s, s / 4, (x.Y - y.X) / s}
	}
	return q.Normalized()
}

// QuatBetween returns the shortest rotation carrying unit vector from
// onto unit vector to. Opposite vectors rotate a half turn about an
// arbitrary perpendicular axis.
func QuatBetween(from, to Vec3) Quat {
	d := from.Dot(to)
	if d < -0.999999 {
		axis, ok := from.Cross(worldRight).Normalized()
		if !ok {
			axis, _ = from.Cross(worldUp).Normalized()
		}
		return Quat{axis.X, axis.Y, axis.Z, 0}
	}
	c := from.Cross(to)
	return Quat{c.X, c.Y, c.Z, 1 + d}.Normalized()
}

// Basis is a right-handed orthonormal frame: X right, Y up, Z outward.
type Basis struct {
	X, Y, Z Vec3
}

// Quat returns the rotation carrying the world axes onto this basis.
func (b Basis) Quat() Quat {
	return QuatFromAxes(b.X, b.Y, b.Z)
}

// World axes used as degenerate-input fallbacks by basisFromNormal.
var (
	worldRight   = Vec3{1, 0, 0}
	worldUp      = Vec3{0, 1, 0}
	worldForward = Vec3{0, 0, -1}
)

// basisFromNormal completes a right-handed orthonormal basis around the
// unit normal z. xHint suggests the X direction; its component along z is
// removed. When the hint is degenerate (zero, non-finite, or parallel to
// z) a fixed world axis is substituted, so the result is always a valid
// basis and never contains non-finite values.
func basisFromNormal(z, xHint Vec3) Basis {
	x := xHint.Sub(z.Scale(xHint.Dot(z)))
	nx, ok := x.Normalized()
	if !ok {
		// Hint collapsed onto the normal. Pick whichever world axis is
		// least aligned with z.
		alt := worldRight
		if math32.Abs(z.Dot(worldRight)) > 0.9 {
			alt = worldUp
		}
		x = alt.Sub(z.Scale(alt.Dot(z)))
		nx, _ = x.Normalized()
	}
	y := z.Cross(nx)
	return Basis{X: nx, Y: y, Z: z}
}

// rayPlaneDist returns the distance t along the ray origin+t*dir to the
// plane through point with unit normal. ok is false when the ray is
// parallel to the plane or the hit is behind the origin.
func rayPlaneDist(origin, dir, point, normal Vec3) (t float32, ok bool) {
	denom := dir.Dot(normal)
	if math32.Abs(denom) < 1e-7 {
		return 0, false
	}
	t = point.Sub(origin).Dot(normal) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}
