package undertone

import "math"

const (
	Warm    = "warm"
	Cool    = "cool"
	Neutral = "neutral"
)

// Vote weights per method
const (
	WeightRGB        = 2.0
	WeightHSV        = 1.5
	WeightLab        = 3.0
	WeightYellowness = 1.5
	WeightHueAngle   = 1.0
)

// Classifier thresholds
const (
	RGBWarmRG = 1.15
	RGBWarmRB = 1.3
	RGBCoolRB = 0.95

	HSVMinSaturation = 0.1
	HSVWarmHueMin    = 18.0
	HSVWarmHueMax    = 50.0
	HSVCoolHueBelow  = 12.0
	HSVCoolHueAbove  = 180.0

	LabWarmB = 18.0 // b* at or above, with b* > a*
	LabCoolA = 10.0 // a* at or above, with a* > b*
	LabCoolB = -10.0

	YellownessWarm = 0.58
	YellownessCool = 0.45

	HueAngleMinChroma = 8.0
	HueAngleWarmMin   = 60.0
	HueAngleWarmMax   = 120.0
	HueAngleCoolMax   = 40.0
	HueAngleCoolMin   = 180.0

	// LightThreshold splits light from deep seasons on the 8-bit L scale
	LightThreshold = 140.0
)

func classifyRGB(r, g, b float64) string {
	rg := r / math.Max(g, 1)
	rb := r / math.Max(b, 1)
	switch {
	case rg > RGBWarmRG && rb > RGBWarmRB:
		return Warm
	case rb < RGBCoolRB:
		return Cool
	}
	return Neutral
}

func classifyHSV(hue, sat float64) string {
	switch {
	case sat < HSVMinSaturation:
		return Neutral
	case hue >= HSVWarmHueMin && hue <= HSVWarmHueMax:
		return Warm
	case hue < HSVCoolHueBelow || hue > HSVCoolHueAbove:
		return Cool
	}
	return Neutral
}

// classifyLab takes a and b in the 8-bit convention
func classifyLab(a, b float64) string {
	as, bs := a-128, b-128
	switch {
	case bs >= LabWarmB && bs > as:
		return Warm
	case as > bs && (as >= LabCoolA || bs <= LabCoolB):
		return Cool
	}
	return Neutral
}

func classifyYellowness(y float64) string {
	switch {
	case y > YellownessWarm:
		return Warm
	case y < YellownessCool:
		return Cool
	}
	return Neutral
}

func classifyHueAngle(a, b float64) string {
	as, bs := a-128, b-128
	if math.Hypot(as, bs) < HueAngleMinChroma {
		return Neutral
	}
	h := math.Atan2(bs, as) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	switch {
	case h >= HueAngleWarmMin && h < HueAngleWarmMax:
		return Warm
	case h <= HueAngleCoolMax || h >= HueAngleCoolMin:
		return Cool
	}
	return Neutral
}

type vote struct {
	method string
	label  string
	weight float64
}

// tally returns the winning label and its share of the total weight.
// Anything short of a strict winner between warm and cool is neutral.
func tally(votes []vote) (string, float64) {
	scores := map[string]float64{}
	var total float64
	for _, v := range votes {
		scores[v.label] += v.weight
		total += v.weight
	}

	label := Neutral
	switch w, c, n := scores[Warm], scores[Cool], scores[Neutral]; {
	case w > c && w > n:
		label = Warm
	case c > w && c > n:
		label = Cool
	}
	if total == 0 {
		return label, 0
	}
	return label, math.Round(scores[label]/total*1000) / 10
}
