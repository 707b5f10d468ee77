package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatEuler builds a rotation from Euler angles in degrees. Roll is applied
// first, then pitch about X, then yaw about Y.
func QuatEuler(pitch, yaw, roll float32) Quat {
	qy := QuatFromAxisAngle(Up, mgl32.DegToRad(yaw))
	qx := QuatFromAxisAngle(Right, mgl32.DegToRad(pitch))
	qz := QuatFromAxisAngle(Forward, mgl32.DegToRad(roll))
	return qy.Mul(qx).Mul(qz)
}

// Euler decomposes q into pitch, yaw and roll in degrees, each in (-180, 180].
// It is the inverse of QuatEuler away from the pitch singularity at ±90.
func (q Quat) Euler() (pitch, yaw, roll float32) {
	q = q.Normalize()
	m12 := 2 * (q.Y*q.Z - q.X*q.W)
	m02 := 2 * (q.X*q.Z + q.Y*q.W)
	m22 := 1 - 2*(q.X*q.X+q.Y*q.Y)
	m10 := 2 * (q.X*q.Y + q.Z*q.W)
	m11 := 1 - 2*(q.X*q.X+q.Z*q.Z)

	sp := Clamp(-m12, -1, 1)
	pitch = mgl32.RadToDeg(float32(math.Asin(float64(sp))))
	yaw = mgl32.RadToDeg(float32(math.Atan2(float64(m02), float64(m22))))
	roll = mgl32.RadToDeg(float32(math.Atan2(float64(m10), float64(m11))))
	return WrapAngle(pitch), WrapAngle(yaw), WrapAngle(roll)
}

// LookRotation returns the rotation whose forward axis points along forward
// and whose up axis is as close to up as possible. A zero forward yields
// the identity.
func LookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	if f == (Vec3{}) {
		return QuatIdentity()
	}
	r := up.Cross(f).Normalize()
	if r == (Vec3{}) {
		// forward is parallel to up; pick any perpendicular right axis
		r = Right
		if Abs(f.X) > 0.9 {
			r = Forward.Cross(f).Normalize()
		}
	}
	u := f.Cross(r)

	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / Sqrt(trace+1)
		q = Quat{X: (m21 - m12) * s, Y: (m02 - m20) * s, Z: (m10 - m01) * s, W: 0.25 / s}
	case m00 > m11 && m00 > m22:
		s := 2 * Sqrt(1+m00-m11-m22)
		q = Quat{X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s, W: (m21 - m12) / s}
	case m11 > m22:
		s := 2 * Sqrt(1+m11-m00-m22)
		q = Quat{X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s, W: (m02 - m20) / s}
	default:
		s := 2 * Sqrt(1+m22-m00-m11)
		q = Quat{X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s, W: (m10 - m01) / s}
	}
	return q.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Angle returns the angle in degrees between two rotations.
func (q Quat) Angle(other Quat) float32 {
	d := Abs(q.Normalize().Dot(other.Normalize()))
	if d > 1 {
		d = 1
	}
	return mgl32.RadToDeg(2 * float32(math.Acos(float64(d))))
}

// Slerp performs spherical linear interpolation between two quaternions.
// t is clamped to [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	t = Clamp01(t)

	// Compute cos of angle between quaternions
	dot := q.Dot(other)

	// If dot is negative, negate one quaternion to take the shorter path
	if dot < 0 {
		other = Quat{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		dot = -dot
	}

	// If quaternions are very close, use linear interpolation to avoid division by zero
	if dot > 0.9995 {
		return Quat{
			X: q.X + t*(other.X-q.X),
			Y: q.Y + t*(other.Y-q.Y),
			Z: q.Z + t*(other.Z-q.Z),
			W: q.W + t*(other.W-q.W),
		}.Normalize()
	}

	theta0 := float32(math.Acos(float64(dot)))
	theta := theta0 * t
	sinTheta := float32(math.Sin(float64(theta)))
	sinTheta0 := float32(math.Sin(float64(theta0)))

	s0 := float32(math.Cos(float64(theta))) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	mq := mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
	return fromMgl(mq.Rotate(v.mgl()))
}

// Forward returns the rotated +Z axis.
func (q Quat) Forward() Vec3 {
	return q.Rotate(Forward)
}

// Right returns the rotated +X axis.
func (q Quat) Right() Vec3 {
	return q.Rotate(Right)
}
