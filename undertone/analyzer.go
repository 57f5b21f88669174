package undertone

import (
	"context"
	"image"
	"log"
	"math"

	"github.com/raushankrgupta/closetly/models"
)

const (
	RegionFace   = "face"
	RegionCenter = "center"
)

// Analyzer classifies skin undertone from a photo
type Analyzer struct {
	Locator FaceLocator
}

// NewAnalyzer builds an analyzer. A nil locator always samples the centre.
func NewAnalyzer(locator FaceLocator) *Analyzer {
	return &Analyzer{Locator: locator}
}

// Analyze samples the photo and classifies the mean skin colour
func (a *Analyzer) Analyze(ctx context.Context, photo *Photo) models.UndertoneVerdict {
	r, g, b, region := a.sample(ctx, photo)
	v := Classify(r, g, b)
	v.SampleRegion = region
	return v
}

func (a *Analyzer) sample(ctx context.Context, photo *Photo) (r, g, b float64, region string) {
	if a.Locator != nil {
		face, ok, err := a.Locator.LocateFace(ctx, photo)
		if err != nil {
			log.Printf("face localisation failed, sampling centre: %v", err)
		}
		if ok {
			if r, g, b, n := meanColor(photo.Image, cheeks(face)...); n > 0 {
				return r, g, b, RegionFace
			}
		}
	}
	r, g, b, _ = meanColor(photo.Image, centerQuadrant(photo.Image.Bounds()))
	return r, g, b, RegionCenter
}

// Classify runs every method on a mean colour and combines the votes
func Classify(r, g, b float64) models.UndertoneVerdict {
	hue, sat, _ := HSV(r, g, b)
	l, la, lb := Lab(r, g, b)
	yellow := Yellowness(r, g, b)

	votes := []vote{
		{"rgb", classifyRGB(r, g, b), WeightRGB},
		{"hsv", classifyHSV(hue, sat), WeightHSV},
		{"lab", classifyLab(la, lb), WeightLab},
		{"yellowness", classifyYellowness(yellow), WeightYellowness},
		{"hue_angle", classifyHueAngle(la, lb), WeightHueAngle},
	}
	undertone, confidence := tally(votes)

	methods := make(map[string]string, len(votes))
	for _, v := range votes {
		methods[v.method] = v.label
	}

	season := Season(undertone, l)
	return models.UndertoneVerdict{
		Undertone:    undertone,
		Season:       season,
		Confidence:   confidence,
		ColorPalette: Palette(season, undertone),
		SkinAnalysis: models.SkinAnalysis{
			R:          round2(r),
			G:          round2(g),
			B:          round2(b),
			Lightness:  round2(l),
			LabA:       round2(la),
			LabB:       round2(lb),
			Hue:        round2(hue),
			Saturation: round2(sat),
			Yellowness: round2(yellow),
		},
		Methods: methods,
	}
}

func centerQuadrant(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	c := image.Rect(b.Min.X+w/4, b.Min.Y+h/4, b.Min.X+3*w/4, b.Min.Y+3*h/4)
	if c.Empty() {
		return b
	}
	return c
}

// cheeks returns the left and right cheek patches of a face box
func cheeks(face image.Rectangle) []image.Rectangle {
	w, h := float64(face.Dx()), float64(face.Dy())
	y0 := face.Min.Y + int(0.45*h)
	y1 := face.Min.Y + int(0.70*h)
	return []image.Rectangle{
		image.Rect(face.Min.X+int(0.15*w), y0, face.Min.X+int(0.35*w), y1),
		image.Rect(face.Min.X+int(0.65*w), y0, face.Min.X+int(0.85*w), y1),
	}
}

// meanColor averages 8-bit channels over the union of regions
func meanColor(img image.Image, regions ...image.Rectangle) (r, g, b float64, n int) {
	var sr, sg, sb float64
	bounds := img.Bounds()
	for _, reg := range regions {
		reg = reg.Intersect(bounds)
		for y := reg.Min.Y; y < reg.Max.Y; y++ {
			for x := reg.Min.X; x < reg.Max.X; x++ {
				cr, cg, cb, _ := img.At(x, y).RGBA()
				sr += float64(cr >> 8)
				sg += float64(cg >> 8)
				sb += float64(cb >> 8)
				n++
			}
		}
	}
	if n == 0 {
		return 0, 0, 0, 0
	}
	return sr / float64(n), sg / float64(n), sb / float64(n), n
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
