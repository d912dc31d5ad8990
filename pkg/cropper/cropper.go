package cropper

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/cutout/pkg/types"
)

// Cropper applies capture specs to decoded images for a fixed Origin.
// It holds no mutable state and may be shared between goroutines.
type Cropper struct {
	origin types.Origin
}

// New creates a Cropper that interprets specs with the top-left origin
func New() *Cropper {
	return &Cropper{origin: types.TopLeft}
}

// NewWithOrigin creates a Cropper for the given origin
func NewWithOrigin(origin types.Origin) *Cropper {
	return &Cropper{origin: origin}
}

// Origin returns the origin specs are interpreted against
func (c *Cropper) Origin() types.Origin {
	return c.origin
}

// Rect resolves spec against an image of the given size
func (c *Cropper) Rect(spec types.CaptureSpec, imgWidth, imgHeight int) (types.AbsoluteRect, error) {
	w, h := Dimensions(imgWidth, imgHeight)
	return Convert(spec, c.origin, w, h)
}

// Crop resolves spec against img and returns the cropped region together
// with the rectangle it was taken from.
func (c *Cropper) Crop(img image.Image, spec types.CaptureSpec) (image.Image, types.AbsoluteRect, error) {
	bounds := img.Bounds()
	rect, err := c.Rect(spec, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, types.AbsoluteRect{}, err
	}
	return CropRect(img, rect), rect, nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// CropRect cuts rect out of img. rect is relative to img.Bounds().Min and
// must already be validated by Convert.
//
// Images that support SubImage (every decoder's output) keep their pixel type
// and bit depth, and the result shares pixels with img. Anything else is
// copied into an *image.NRGBA.
func CropRect(img image.Image, rect types.AbsoluteRect) image.Image {
	off := img.Bounds().Min
	r := image.Rect(
		off.X+int(rect.X),
		off.Y+int(rect.Y),
		off.X+int(rect.X)+int(rect.Width),
		off.Y+int(rect.Y)+int(rect.Height),
	)
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	return imaging.Crop(img, r)
}
