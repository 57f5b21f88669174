package undertone

import (
	"context"
	"image"
)

// FaceLocator finds the most prominent face in a photo. ok is false when
// no face was detected.
type FaceLocator interface {
	LocateFace(ctx context.Context, photo *Photo) (box image.Rectangle, ok bool, err error)
}

// BoxFinder returns a face bounding box as fractions of the image size
// (x0, y0, x1, y1)
type BoxFinder func(ctx context.Context, raw []byte, format string) (box [4]float64, ok bool, err error)

// GeminiFaceLocator adapts a fractional box finder, normally
// utils.LocateFaceBox, to pixel rectangles
type GeminiFaceLocator struct {
	Find BoxFinder
}

func (g GeminiFaceLocator) LocateFace(ctx context.Context, photo *Photo) (image.Rectangle, bool, error) {
	if g.Find == nil {
		return image.Rectangle{}, false, nil
	}
	frac, ok, err := g.Find(ctx, photo.Raw, photo.Format)
	if err != nil || !ok {
		return image.Rectangle{}, false, err
	}

	b := photo.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	box := image.Rect(
		b.Min.X+int(frac[0]*w), b.Min.Y+int(frac[1]*h),
		b.Min.X+int(frac[2]*w), b.Min.Y+int(frac[3]*h),
	).Intersect(b)
	if box.Empty() {
		return image.Rectangle{}, false, nil
	}
	return box, true, nil
}
