package cropper

import (
	"fmt"
	"math/bits"

	"github.com/menta2k/cutout/pkg/types"
)

// BoundsKind identifies which bound a capture violated
type BoundsKind int

const (
	// OriginOutside: the absolute top-left corner is not inside the image
	OriginOutside BoundsKind = iota
	// ExceedsBounds: the corner is inside but the rectangle runs past the right or bottom edge
	ExceedsBounds
	// YOutsideHeight: bottom-left y is larger than the image height
	YOutsideHeight
	// BelowTop: bottom-left y+height reaches above the top edge
	BelowTop
)

func (k BoundsKind) String() string {
	switch k {
	case OriginOutside:
		return "origin outside image bounds"
	case ExceedsBounds:
		return "rectangle exceeds image bounds"
	case YOutsideHeight:
		return "y outside image height"
	case BelowTop:
		return "rectangle outside image height"
	default:
		return fmt.Sprintf("BoundsKind(%d)", int(k))
	}
}

// BoundsError is returned by Convert when a capture does not fit an image.
// X and Y are absolute coordinates for OriginOutside and ExceedsBounds and
// the capture's own offsets otherwise.
type BoundsError struct {
	Kind        BoundsKind
	Capture     string
	X, Y        uint32
	Width       uint32
	Height      uint32
	ImageWidth  uint32
	ImageHeight uint32
}

func (e *BoundsError) Error() string {
	switch e.Kind {
	case YOutsideHeight:
		return fmt.Sprintf("capture %q y=%d is outside image height=%d", e.Capture, e.Y, e.ImageHeight)
	case BelowTop:
		return fmt.Sprintf("capture %q (y=%d, height=%d) is outside image height=%d", e.Capture, e.Y, e.Height, e.ImageHeight)
	case OriginOutside:
		return fmt.Sprintf("capture %q origin (%d, %d) is outside image bounds %dx%d",
			e.Capture, e.X, e.Y, e.ImageWidth, e.ImageHeight)
	default:
		return fmt.Sprintf("capture %q rectangle (%d, %d, %dx%d) exceeds image bounds %dx%d",
			e.Capture, e.X, e.Y, e.Width, e.Height, e.ImageWidth, e.ImageHeight)
	}
}

// Convert maps spec onto an imgWidth x imgHeight image and returns the
// rectangle in top-left coordinates. The result always satisfies
// X < imgWidth, Y < imgHeight, X+Width <= imgWidth and Y+Height <= imgHeight.
func Convert(spec types.CaptureSpec, origin types.Origin, imgWidth, imgHeight uint32) (types.AbsoluteRect, error) {
	absX := spec.X
	absY := spec.Y

	if origin == types.BottomLeft {
		if spec.Y > imgHeight {
			return types.AbsoluteRect{}, &BoundsError{
				Kind: YOutsideHeight, Capture: spec.Name,
				X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height,
				ImageWidth: imgWidth, ImageHeight: imgHeight,
			}
		}
		top, borrow1 := bits.Sub32(imgHeight, spec.Y, 0)
		top, borrow2 := bits.Sub32(top, spec.Height, 0)
		if borrow1 != 0 || borrow2 != 0 {
			return types.AbsoluteRect{}, &BoundsError{
				Kind: BelowTop, Capture: spec.Name,
				X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height,
				ImageWidth: imgWidth, ImageHeight: imgHeight,
			}
		}
		absY = top
	}

	if absX >= imgWidth || absY >= imgHeight {
		return types.AbsoluteRect{}, &BoundsError{
			Kind: OriginOutside, Capture: spec.Name,
			X: absX, Y: absY, Width: spec.Width, Height: spec.Height,
			ImageWidth: imgWidth, ImageHeight: imgHeight,
		}
	}

	// both differences are positive after the origin check
	if spec.Width > imgWidth-absX || spec.Height > imgHeight-absY {
		return types.AbsoluteRect{}, &BoundsError{
			Kind: ExceedsBounds, Capture: spec.Name,
			X: absX, Y: absY, Width: spec.Width, Height: spec.Height,
			ImageWidth: imgWidth, ImageHeight: imgHeight,
		}
	}

	return types.AbsoluteRect{X: absX, Y: absY, Width: spec.Width, Height: spec.Height}, nil
}

// Dimensions converts image.Rectangle sizes to the unsigned range Convert
// works in. Negative sizes are reported as zero.
func Dimensions(width, height int) (uint32, uint32) {
	return clampDim(width), clampDim(height)
}

func clampDim(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if uint64(v) > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}
