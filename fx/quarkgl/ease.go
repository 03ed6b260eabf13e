package quarkgl

// Ease is the smoothstep curve t*t*(3-2t).
//
// Defined for t in [0,1]; callers clamp. Values past 1 are not clamped here and
// keep moving past the target.
func Ease(t Scalar) Scalar {
	return t * t * (3 - 2*t)
}

// Lerp blends a toward b by t.
func Lerp(a, b, t Scalar) Scalar {
	return a + (b-a)*t
}

func LerpVec2(a, b Vec2, t Scalar) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

func LerpVec3(a, b Vec3, t Scalar) Vec3 {
	return Vec3{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t), Z: Lerp(a.Z, b.Z, t)}
}
