package field

import "golang.org/x/exp/constraints"

func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)

	return n
}

func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// Smoothstep is the GLSL smoothstep: a cubic Hermite ramp from edge0 to edge1.
func Smoothstep[F constraints.Float](edge0, edge1, x F) F {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
