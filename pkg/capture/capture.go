// Package capture parses capture specifications of the form
// <name>:<x>x<y>:<width>x<height>.
package capture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/menta2k/cutout/pkg/types"
)

// Format is the textual layout accepted by Parse
const Format = "<name>:<x>x<y>:<width>x<height>"

var (
	// ErrInvalidFormat reports a wrong number of ':' or 'x' separated parts
	ErrInvalidFormat = errors.New("invalid capture spec")
	// ErrInvalidNumber reports a component that is not a non-negative integer
	ErrInvalidNumber = errors.New("invalid number")
	// ErrZeroArea reports a zero width or height
	ErrZeroArea = errors.New("width and height must be positive")
)

// Parse parses a single capture spec, e.g. "left:200x300:1200x1850".
// The name is taken verbatim; empty and duplicate names are accepted.
func Parse(s string) (types.CaptureSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return types.CaptureSpec{}, fmt.Errorf("%w %q: expected format %s", ErrInvalidFormat, s, Format)
	}

	x, y, err := parsePair(parts[1], "x", "y", s)
	if err != nil {
		return types.CaptureSpec{}, err
	}
	w, h, err := parsePair(parts[2], "width", "height", s)
	if err != nil {
		return types.CaptureSpec{}, err
	}

	if w == 0 || h == 0 {
		return types.CaptureSpec{}, fmt.Errorf("%w in capture spec %q", ErrZeroArea, s)
	}

	return types.CaptureSpec{
		Name:   parts[0],
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
	}, nil
}

// ParseAll parses every spec in order and stops at the first failure.
func ParseAll(specs []string) ([]types.CaptureSpec, error) {
	out := make([]types.CaptureSpec, 0, len(specs))
	for _, s := range specs {
		spec, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// String renders spec back into the form accepted by Parse.
func String(spec types.CaptureSpec) string {
	return fmt.Sprintf("%s:%dx%d:%dx%d", spec.Name, spec.X, spec.Y, spec.Width, spec.Height)
}

// parsePair splits raw on 'x' into exactly two uint32 values.
func parsePair(raw, first, second, spec string) (uint32, uint32, error) {
	parts := strings.Split(raw, "x")
	switch {
	case len(parts) < 2:
		return 0, 0, fmt.Errorf("%w: missing %s value in %q of capture spec %q", ErrInvalidFormat, second, raw, spec)
	case len(parts) > 2:
		return 0, 0, fmt.Errorf("%w: too many components for %sx%s in capture spec %q", ErrInvalidFormat, first, second, spec)
	}

	a, err := parseComponent(parts[0], first, spec)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseComponent(parts[1], second, spec)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseComponent reads an unsigned decimal that may carry one leading '+'
func parseComponent(tok, label, spec string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(tok, "+"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse %s value %q in capture spec %q: %v", ErrInvalidNumber, label, tok, spec, err)
	}
	return uint32(v), nil
}
