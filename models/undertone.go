package models

// SkinAnalysis carries the raw channel statistics of the sampled skin region
type SkinAnalysis struct {
	R          float64 `json:"r"`
	G          float64 `json:"g"`
	B          float64 `json:"b"`
	Lightness  float64 `json:"lightness"` // L on the 0-255 scale
	LabA       float64 `json:"lab_a"`     // a, offset 128
	LabB       float64 `json:"lab_b"`     // b, offset 128
	Hue        float64 `json:"hue"`       // degrees
	Saturation float64 `json:"saturation"`
	Yellowness float64 `json:"yellowness"` // normalized to [0,1]
}

// UndertoneVerdict is the combined result of an undertone analysis
type UndertoneVerdict struct {
	Undertone    string            `json:"undertone"`
	Season       string            `json:"season"`
	Confidence   float64           `json:"confidence"`
	ColorPalette []string          `json:"color_palette"`
	SkinAnalysis SkinAnalysis      `json:"skin_analysis"`
	Methods      map[string]string `json:"methods"`
	SampleRegion string            `json:"sample_region"` // "face" or "center"
}
