package sidecut

import (
	"io"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [PolylineSVG] and
// [WritePolylineSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
	// Mirror the points about the x-axis before formatting, turning the
	// y-up coordinates of a path into SVG's y-down user space.
	FlipY bool
}

// PolylineSVG converts points to a string of SVG path commands, one move
// followed by a line to every further point.
//
// See [WritePolylineSVG] for a version that writes to an [io.Writer] instead
// of returning a string.
func PolylineSVG(pts []Point, opts SVGOptions) string {
	sb := &strings.Builder{}
	WritePolylineSVG(sb, pts, opts)
	return sb.String()
}

// WritePolylineSVG converts points to SVG path commands and writes them to w.
// Nothing is written for an empty slice.
func WritePolylineSVG(w io.Writer, pts []Point, opts SVGOptions) error {
	aff := Identity
	if opts.FlipY {
		aff = FlipY
	}
	buf := make([]byte, 0, 64)
	for i, pt := range pts {
		pt = pt.Transform(aff)
		buf = buf[:0]
		switch i {
		case 0:
			buf = append(buf, 'M')
		default:
			buf = append(buf, " L"...)
		}
		buf = appendCoord(buf, pt.X, opts.MaxPrecision)
		buf = append(buf, ',')
		buf = appendCoord(buf, pt.Y, opts.MaxPrecision)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func appendCoord(dst []byte, n float64, maxPrec int) []byte {
	if maxPrec <= 0 {
		return strconv.AppendFloat(dst, n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'f', maxPrec, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return append(dst, s...)
}
