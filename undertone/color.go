package undertone

import "math"

// HSV converts 0-255 channel means to hue in degrees and saturation/value in [0,1]
func HSV(r, g, b float64) (h, s, v float64) {
	r, g, b = r/255, g/255, b/255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	d := maxC - minC

	v = maxC
	if maxC > 0 {
		s = d / maxC
	}
	if d == 0 {
		return 0, s, v
	}
	switch maxC {
	case r:
		h = 60 * math.Mod((g-b)/d, 6)
	case g:
		h = 60 * ((b-r)/d + 2)
	default:
		h = 60 * ((r-g)/d + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// Lab converts 0-255 sRGB to CIE Lab (D65) in the 8-bit convention:
// L scaled to 0-255, a and b offset by 128
func Lab(r, g, b float64) (l, a, bb float64) {
	rl, gl, bl := linearize(r/255), linearize(g/255), linearize(b/255)

	x := (0.4124564*rl + 0.3575761*gl + 0.1804375*bl) / 0.95047
	y := 0.2126729*rl + 0.7151522*gl + 0.0721750*bl
	z := (0.0193339*rl + 0.1191920*gl + 0.9503041*bl) / 1.08883

	fx, fy, fz := labF(x), labF(y), labF(z)
	L := 116*fy - 16
	A := 500 * (fx - fy)
	B := 200 * (fy - fz)
	return L * 255 / 100, A + 128, B + 128
}

// Yellowness is (R+G-2B)/(R+G+B+1) mapped from [-1,1] onto [0,1]
func Yellowness(r, g, b float64) float64 {
	yi := (r + g - 2*b) / (r + g + b + 1)
	return math.Max(0, math.Min(1, (yi+1)/2))
}

func linearize(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116
}
