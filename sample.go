package yuletree

import "math"

// SampleSphere returns a point uniformly distributed by volume inside the
// sphere of the given radius centered at the origin.
//
// The polar angle comes from acos(2v-1) so directions are uniform over the
// sphere, and the radius is scaled by the cube root of a uniform draw since
// enclosed volume grows with r³.
func SampleSphere(src Source, radius float64) Vec3 {
	src = sourceOr(src)
	u := src.Float64()
	v := src.Float64()
	theta := 2 * math.Pi * u
	phi := math.Acos(2*v - 1)
	r := math.Cbrt(src.Float64()) * radius

	sinPhi := math.Sin(phi)
	return Vec3{
		X: r * sinPhi * math.Cos(theta),
		Y: r * sinPhi * math.Sin(theta),
		Z: r * math.Cos(phi),
	}
}

// SampleCone returns a point inside a right circular cone standing on the XZ
// plane. heightRatio in [0, 1] picks the slice: 0 is the base at -height/2,
// 1 is the apex at +height/2. The slice radius tapers linearly from maxRadius
// to zero, and the point is spread uniformly by area across that disk.
//
// heightRatio is supplied by the caller so each particle class can bias its
// own vertical density; see BiasedRatio.
func SampleCone(src Source, height, maxRadius, heightRatio float64) Vec3 {
	src = sourceOr(src)
	y := (heightRatio - 0.5) * height
	currentRadius := maxRadius * (1 - heightRatio)

	angle := src.Float64() * math.Pi * 2
	r := currentRadius * math.Sqrt(src.Float64())

	return Vec3{
		X: math.Cos(angle) * r,
		Y: y,
		Z: math.Sin(angle) * r,
	}
}

// BiasedRatio returns a uniform draw raised to exponent. Exponents above 1
// crowd values toward 0, which packs cone particles toward the base and thins
// the apex.
func BiasedRatio(src Source, exponent float64) float64 {
	return math.Pow(sourceOr(src).Float64(), exponent)
}
