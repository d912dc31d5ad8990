package types

import (
	"fmt"
	"strings"
)

// CaptureSpec is a named rectangle applied to every input image.
// X and Y are relative to the run's Origin.
type CaptureSpec struct {
	Name   string `json:"name" yaml:"name"`
	X      uint32 `json:"x" yaml:"x"`
	Y      uint32 `json:"y" yaml:"y"`
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
}

// Origin selects how a CaptureSpec's Y offset is interpreted
type Origin int

const (
	// TopLeft: y=0 is the top row, y grows downward
	TopLeft Origin = iota
	// BottomLeft: y=0 is the bottom row, y grows upward
	BottomLeft
)

// ParseOrigin accepts tl, top-left, top_left, bl, bottom-left and
// bottom_left, case-insensitively.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToLower(s) {
	case "tl", "top-left", "top_left":
		return TopLeft, nil
	case "bl", "bottom-left", "bottom_left":
		return BottomLeft, nil
	default:
		return TopLeft, fmt.Errorf("invalid origin %q: supported values: tl, bl", s)
	}
}

func (o Origin) String() string {
	switch o {
	case TopLeft:
		return "tl"
	case BottomLeft:
		return "bl"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Set implements pflag.Value so an Origin can be bound as a flag.
func (o *Origin) Set(s string) error {
	v, err := ParseOrigin(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Type implements pflag.Value
func (o *Origin) Type() string {
	return "origin"
}

// AbsoluteRect is a capture rectangle in top-left image coordinates.
type AbsoluteRect struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Planned describes one output a run would write.
type Planned struct {
	Capture    string
	Rect       AbsoluteRect
	OutputPath string
}
