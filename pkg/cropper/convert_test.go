package cropper

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/menta2k/cutout/pkg/types"
)

func spec(x, y, w, h uint32) types.CaptureSpec {
	return types.CaptureSpec{Name: "test", X: x, Y: y, Width: w, Height: h}
}

func boundsKind(t *testing.T, err error) BoundsKind {
	t.Helper()
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("Expected *BoundsError, got %T: %v", err, err)
	}
	return be.Kind
}

func TestConvertTopLeftIdentity(t *testing.T) {
	tests := []types.CaptureSpec{
		spec(100, 200, 50, 75),
		spec(0, 0, 1000, 1000),
		spec(900, 900, 100, 100),
		spec(999, 999, 1, 1),
	}

	for _, s := range tests {
		rect, err := Convert(s, types.TopLeft, 1000, 1000)
		if err != nil {
			t.Fatalf("Convert(%+v) failed: %v", s, err)
		}
		if rect.X != s.X || rect.Y != s.Y || rect.Width != s.Width || rect.Height != s.Height {
			t.Errorf("Convert(%+v) = %+v, expected identity", s, rect)
		}
	}
}

func TestConvertBottomLeft(t *testing.T) {
	tests := []struct {
		in    types.CaptureSpec
		wantX uint32
		wantY uint32
	}{
		{spec(0, 0, 100, 100), 0, 900},
		{spec(50, 200, 100, 100), 50, 700},
		{spec(0, 900, 100, 100), 0, 0},
		{spec(0, 0, 100, 1000), 0, 0},
	}

	for _, test := range tests {
		rect, err := Convert(test.in, types.BottomLeft, 1000, 1000)
		if err != nil {
			t.Fatalf("Convert(%+v) failed: %v", test.in, err)
		}
		if rect.X != test.wantX || rect.Y != test.wantY {
			t.Errorf("Convert(%+v) = (%d, %d), expected (%d, %d)",
				test.in, rect.X, rect.Y, test.wantX, test.wantY)
		}
	}
}

func TestConvertOriginOutside(t *testing.T) {
	tests := []struct {
		in     types.CaptureSpec
		origin types.Origin
	}{
		{spec(1000, 0, 100, 100), types.TopLeft},
		{spec(0, 1000, 100, 100), types.TopLeft},
		{spec(1000, 0, 100, 100), types.BottomLeft},
		{spec(math.MaxUint32, 0, 1, 1), types.TopLeft},
	}

	for _, test := range tests {
		_, err := Convert(test.in, test.origin, 1000, 1000)
		if err == nil {
			t.Fatalf("Convert(%+v) should fail", test.in)
		}
		if kind := boundsKind(t, err); kind != OriginOutside {
			t.Errorf("Convert(%+v) kind = %v, expected %v", test.in, kind, OriginOutside)
		}
		if !strings.Contains(err.Error(), "is outside image bounds") {
			t.Errorf("Unexpected message: %v", err)
		}
	}
}

func TestConvertExceedsBounds(t *testing.T) {
	tests := []struct {
		in     types.CaptureSpec
		origin types.Origin
	}{
		{spec(900, 0, 200, 100), types.TopLeft},
		{spec(0, 900, 100, 200), types.TopLeft},
		{spec(999, 999, 2, 1), types.TopLeft},
		{spec(900, 0, 200, 100), types.BottomLeft},
		{spec(1, 0, 1000, 10), types.BottomLeft},
		// would wrap to a small value if added instead of compared
		{spec(10, 10, math.MaxUint32, math.MaxUint32), types.TopLeft},
	}

	for _, test := range tests {
		_, err := Convert(test.in, test.origin, 1000, 1000)
		if err == nil {
			t.Fatalf("Convert(%+v, %v) should fail", test.in, test.origin)
		}
		if kind := boundsKind(t, err); kind != ExceedsBounds {
			t.Errorf("Convert(%+v, %v) kind = %v, expected %v", test.in, test.origin, kind, ExceedsBounds)
		}
		if !strings.Contains(err.Error(), "exceeds image bounds") {
			t.Errorf("Unexpected message: %v", err)
		}
	}
}

func TestConvertBottomLeftYOutsideHeight(t *testing.T) {
	for _, y := range []uint32{1001, 5000, math.MaxUint32} {
		_, err := Convert(spec(0, y, 1, 1), types.BottomLeft, 1000, 1000)
		if err == nil {
			t.Fatalf("y=%d should fail", y)
		}
		if kind := boundsKind(t, err); kind != YOutsideHeight {
			t.Errorf("y=%d kind = %v, expected %v", y, kind, YOutsideHeight)
		}
		if !strings.Contains(err.Error(), "is outside image height") {
			t.Errorf("Unexpected message: %v", err)
		}
	}
}

func TestConvertBottomLeftUnderflow(t *testing.T) {
	tests := []types.CaptureSpec{
		spec(0, 950, 100, 100),
		spec(0, 1000, 100, 1),
		spec(0, 0, 100, 1001),
		spec(0, 1, 100, math.MaxUint32),
	}

	for _, s := range tests {
		rect, err := Convert(s, types.BottomLeft, 1000, 1000)
		if err == nil {
			t.Fatalf("Convert(%+v) should fail, got %+v", s, rect)
		}
		if kind := boundsKind(t, err); kind != BelowTop {
			t.Errorf("Convert(%+v) kind = %v, expected %v", s, kind, BelowTop)
		}
		msg := err.Error()
		if !strings.Contains(msg, `"test"`) || !strings.Contains(msg, "height=1000") {
			t.Errorf("Message should name the capture and image height: %v", msg)
		}
	}
}

func TestConvertZeroSizedImage(t *testing.T) {
	_, err := Convert(spec(0, 0, 1, 1), types.TopLeft, 0, 0)
	if kind := boundsKind(t, err); kind != OriginOutside {
		t.Errorf("kind = %v, expected %v", kind, OriginOutside)
	}
}

func TestConvertResultInvariant(t *testing.T) {
	const w, h = 37, 23
	for _, origin := range []types.Origin{types.TopLeft, types.BottomLeft} {
		for x := uint32(0); x <= w+1; x++ {
			for y := uint32(0); y <= h+1; y++ {
				for sz := uint32(1); sz <= 25; sz += 3 {
					rect, err := Convert(spec(x, y, sz, sz), origin, w, h)
					if err != nil {
						continue
					}
					if rect.X >= w || rect.Y >= h || rect.X+rect.Width > w || rect.Y+rect.Height > h {
						t.Fatalf("origin %v spec (%d,%d,%d) produced out of bounds %+v", origin, x, y, sz, rect)
					}
				}
			}
		}
	}
}

func TestDimensions(t *testing.T) {
	w, h := Dimensions(-5, 20)
	if w != 0 || h != 20 {
		t.Errorf("Dimensions(-5, 20) = %d, %d", w, h)
	}
}
