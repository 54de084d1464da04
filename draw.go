package pdfrender

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gg"
)

// DrawMode selects how Draw paints an outline. Exactly one of Fill,
// Stroke and FillStroke is used per call.
type DrawMode interface {
	isDrawMode()
}

// Fill fills the outline.
type Fill struct {
	Paint Paint
	Alpha float64
}

// Stroke strokes the outline.
type Stroke struct {
	Paint Paint
	Alpha float64
	Style StrokeStyle
}

// FillStroke fills the outline, then strokes it.
type FillStroke struct {
	FillPaint   Paint
	FillAlpha   float64
	StrokePaint Paint
	StrokeAlpha float64
	Style       StrokeStyle
}

func (Fill) isDrawMode()       {}
func (Stroke) isDrawMode()     {}
func (FillStroke) isDrawMode() {}

// StrokeStyle describes line geometry in user space. Widths and dash
// lengths are scaled by the transform passed to Draw.
type StrokeStyle struct {
	Width      float64
	MiterLimit float64
	Cap        gg.LineCap
	Join       gg.LineJoin

	// Dash is nil for a solid line.
	Dash *DashPattern
}

// DefaultStrokeStyle returns the PDF initial line state: width 1, butt
// caps, miter joins with limit 10, solid.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      1,
		MiterLimit: 10,
		Cap:        gg.LineCapButt,
		Join:       gg.LineJoinMiter,
	}
}

// Clone returns a copy of s that does not share its dash array.
func (s StrokeStyle) Clone() StrokeStyle {
	if s.Dash != nil {
		d := *s.Dash
		d.Array = slices.Clone(d.Array)
		s.Dash = &d
	}
	return s
}

// DashPattern is a PDF dash array and phase.
type DashPattern struct {
	// Array holds alternating on and off lengths.
	Array []float64
	// Phase is the distance into the pattern at which the line starts.
	Phase float64
}

// GG converts the pattern to a gg dash. It returns nil for a nil pattern
// or one that draws a solid line.
func (d *DashPattern) GG() *gg.Dash {
	if d == nil {
		return nil
	}
	dash := gg.NewDash(d.Array...)
	if dash == nil {
		return nil
	}
	dash.Offset = d.Phase
	return dash
}

// Validate checks that the style describes drawable geometry.
func (s StrokeStyle) Validate() error {
	if !finite(s.Width) || s.Width < 0 {
		return fmt.Errorf("line width %v", s.Width)
	}
	if !finite(s.MiterLimit) || s.MiterLimit < 0 {
		return fmt.Errorf("miter limit %v", s.MiterLimit)
	}
	if s.Cap < gg.LineCapButt || s.Cap > gg.LineCapSquare {
		return fmt.Errorf("line cap %d", s.Cap)
	}
	if s.Join < gg.LineJoinMiter || s.Join > gg.LineJoinBevel {
		return fmt.Errorf("line join %d", s.Join)
	}
	if s.Dash != nil {
		for _, v := range s.Dash.Array {
			if !finite(v) || v < 0 {
				return fmt.Errorf("dash length %v", v)
			}
		}
		if !finite(s.Dash.Phase) {
			return fmt.Errorf("dash phase %v", s.Dash.Phase)
		}
	}
	return nil
}

// ValidateMode reports whether m can be drawn. The error wraps
// ErrInvalidDrawMode.
func ValidateMode(m DrawMode) error {
	var err error
	switch m := m.(type) {
	case Fill:
		err = checkPaint("fill", m.Paint, m.Alpha)
	case Stroke:
		err = checkPaint("stroke", m.Paint, m.Alpha)
		if err == nil {
			err = m.Style.Validate()
		}
	case FillStroke:
		err = checkPaint("fill", m.FillPaint, m.FillAlpha)
		if err == nil {
			err = checkPaint("stroke", m.StrokePaint, m.StrokeAlpha)
		}
		if err == nil {
			err = m.Style.Validate()
		}
	case nil:
		err = fmt.Errorf("nil mode")
	default:
		err = fmt.Errorf("unknown mode %T", m)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDrawMode, err)
	}
	return nil
}

func checkPaint(what string, p Paint, alpha float64) error {
	if p == nil {
		return fmt.Errorf("%s paint is nil", what)
	}
	if !(alpha >= 0 && alpha <= 1) {
		return fmt.Errorf("%s alpha %v outside [0, 1]", what, alpha)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
