package astro

import (
	"math"
)

// EarthRadiusKm is the equatorial radius of the Earth (WGS84).
const EarthRadiusKm = 6378.137

// Vec3 is a Cartesian vector in the geocentric equatorial frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// RADec returns the direction of v as RA/Dec in degrees. The zero vector
// maps to 0, 0.
func (v Vec3) RADec() Position {
	r := v.Norm()
	if r == 0 {
		return Position{}
	}
	return Position{
		RA:  normalizeAngle360(radToDeg(math.Atan2(v.Y, v.X))),
		Dec: radToDeg(math.Asin(v.Z / r)),
	}
}

// Toward returns the direction of target as seen from observer.
func Toward(observer, target Vec3) Position {
	return target.Sub(observer).RADec()
}

// FromRADec returns the unit vector pointing at ra, dec.
func FromRADec(ra, dec float64) Vec3 {
	a, d := degToRad(ra), degToRad(dec)
	return Vec3{
		X: math.Cos(d) * math.Cos(a),
		Y: math.Cos(d) * math.Sin(a),
		Z: math.Sin(d),
	}
}

// Altitude returns the height above the equatorial radius in km.
func Altitude(pos Vec3) float64 {
	return pos.Norm() - EarthRadiusKm
}

// EarthAngularRadius returns the apparent radius of the Earth in degrees as
// seen from pos. It is 90 at or below the surface.
func EarthAngularRadius(pos Vec3) float64 {
	r := pos.Norm()
	if r <= EarthRadiusKm {
		return 90
	}
	return radToDeg(math.Asin(EarthRadiusKm / r))
}

// EarthOcculted reports whether the Earth blocks ra, dec from pos.
func EarthOcculted(pos Vec3, ra, dec float64) bool {
	cos := FromRADec(ra, dec).Dot(pos.Scale(-1).Normalized())
	sep := radToDeg(math.Acos(math.Max(-1, math.Min(1, cos))))
	return sep < EarthAngularRadius(pos)
}
