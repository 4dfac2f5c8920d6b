package sim

import "math"

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// hash31 maps a scalar to three pseudo-random values in [0,1).
func hash31(p float64) [3]float64 {
	r := [3]float64{fract(p * 0.1031), fract(p * 0.1030), fract(p * 0.0973)}
	d := r[0]*(r[1]+33.33) + r[1]*(r[2]+33.33) + r[2]*(r[0]+33.33)
	for i := range r {
		r[i] = fract(r[i] + d)
	}
	return r
}

// hash33 maps a 3-vector to three pseudo-random values in [0,1).
func hash33(v [3]float64) [3]float64 {
	p := [3]float64{fract(v[0] * 0.1031), fract(v[1] * 0.1030), fract(v[2] * 0.0973)}
	d := p[0]*(p[1]+33.33) + p[1]*(p[0]+33.33) + p[2]*(p[2]+33.33)
	for i := range p {
		p[i] = fract(p[i] + d)
	}
	return [3]float64{
		fract((p[0] + p[1]) * p[2]),
		fract((p[0] + p[0]) * p[1]),
		fract((p[1] + p[0]) * p[0]),
	}
}
