package main

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/pdfrender"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf"
)

// demoDoc is an A6 page held in memory.
type demoDoc struct {
	r        *pdf.MemResolver
	mediaBox geom.Rect
	fontRef  pdf.Ref
	imageRef pdf.Ref
	image    *pdf.ImageXObject
	inline   *pdf.ImageXObject
}

func newDemoDoc() (*demoDoc, error) {
	d := &demoDoc{
		r:        pdf.NewMemResolver(),
		mediaBox: geom.NewRect(0, 0, 105, 148),
	}
	d.fontRef = d.r.Add(pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
		"Encoding": pdf.Name("WinAnsiEncoding"),
	})

	const size = 8
	pix := make([]byte, 0, size*size*3)
	for y := range size {
		for x := range size {
			pix = append(pix, byte(x*255/(size-1)), byte(y*255/(size-1)), 160)
		}
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(pix); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	stream := &pdf.Stream{Dict: pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(size),
		"Height":           pdf.Integer(size),
		"BitsPerComponent": pdf.Integer(8),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"Filter":           pdf.Name("FlateDecode"),
	}, Data: buf.Bytes()}
	d.imageRef = d.r.Add(stream)

	var err error
	if d.image, err = pdf.NewImageXObject(stream, d.r); err != nil {
		return nil, err
	}
	checker := []byte{0, 255, 0, 255, 255, 0, 255, 0, 0, 255, 0, 255, 255, 0, 255, 0}
	d.inline, err = pdf.NewInlineImage(pdf.Dict{
		"W": pdf.Integer(4), "H": pdf.Integer(4),
		"BPC": pdf.Integer(8), "CS": pdf.Name("G"),
	}, checker, d.r)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// painter tracks the operator index while issuing backend calls.
type painter struct {
	b  pdfrender.Backend
	t  geom.Transform
	op int
}

func (p *painter) inspect(name string, operands ...pdf.Object) {
	p.b.InspectOp(pdf.Op{Name: name, Operands: operands})
	p.op++
}

func num(v float64) pdf.Object { return pdf.Real(v) }

func (d *demoDoc) draw(b pdfrender.Backend, opts pdfrender.RenderOptions) error {
	if err := pdfrender.BeginPage(b, d.mediaBox, opts); err != nil {
		return err
	}
	p := &painter{b: b, t: opts.Transform}

	p.inspect("re", num(5), num(5), num(95), num(138))
	frame := geom.RectOutline(geom.NewRect(5, 5, 100, 143))
	style := pdfrender.DefaultStrokeStyle()
	style.Width = 0.8
	style.Dash = &pdfrender.DashPattern{Array: []float64{4, 2}}
	p.inspect("S")
	if err := b.Draw(&frame, pdfrender.Stroke{Paint: pdfrender.Gray(0.3), Alpha: 1, Style: style}, geom.NonZero, p.t); err != nil {
		return err
	}

	var star geom.Builder
	star.MoveTo(52.5, 130).LineTo(60, 108).LineTo(40, 122).LineTo(65, 122).LineTo(45, 108).Close()
	outline := star.Outline()
	p.inspect("B*")
	mode := pdfrender.FillStroke{
		FillPaint: pdfrender.RGB(1, 0.8, 0), FillAlpha: 1,
		StrokePaint: pdfrender.CMYK(0, 0.6, 1, 0.2), StrokeAlpha: 1,
		Style: pdfrender.StrokeStyle{Width: 0.5, MiterLimit: 10, Cap: gg.LineCapRound, Join: gg.LineJoinRound},
	}
	if err := b.Draw(&outline, mode, geom.EvenOdd, p.t); err != nil {
		return err
	}

	if err := d.text(p, "Hello, PDF", 10, 90, 9, pdfrender.TextFill); err != nil {
		return err
	}
	if err := d.text(p, "searchable but hidden", 10, 80, 4, pdfrender.TextInvisible); err != nil {
		return err
	}

	p.inspect("Do", pdf.Name("Im1"))
	if err := b.DrawImage(d.imageRef, d.image, nil, p.t.Multiply(geom.Matrix(40, 0, 0, 30, 10, 30)), pdfrender.BlendNormal, d.r); err != nil {
		return err
	}
	p.inspect("EI")
	if err := b.DrawInlineImage(d.inline, nil, p.t.Multiply(geom.Matrix(30, 0, 0, 30, 60, 30)), pdfrender.BlendMultiply, d.r); err != nil {
		return err
	}

	p.inspect("Q")
	b.SetClipPath(nil)
	return nil
}

// text shows s at (x, y) in the demo font, drawing glyph outlines for
// visible modes and reporting the span either way.
func (d *demoDoc) text(p *painter, s string, x, y, size float64, mode pdfrender.TextMode) error {
	p.inspect("Tf", pdf.Name("F1"), num(size))
	f, err := p.b.GetFont(d.fontRef, d.r)
	if err != nil {
		return err
	}
	raw := []byte(s)
	p.inspect("Tj", pdf.String(raw))
	if f == nil {
		p.b.BugTextNoFont(raw)
		return nil
	}
	if !mode.Visible() {
		p.b.BugTextInvisible(f.Text(raw))
	}

	paint := pdfrender.RGB(0.1, 0.2, 0.5)
	span := pdfrender.TextSpan{
		Font:      f,
		FontSize:  size,
		Transform: geom.Matrix(size, 0, 0, size, x, y),
		Text:      f.Text(raw),
		Paint:     paint,
		Alpha:     1,
		Mode:      mode,
		Op:        p.op - 1,
	}
	pen := 0.0
	var errs []error
	for i, code := range f.Codes(raw) {
		span.Chars = append(span.Chars, pdfrender.TextChar{Offset: i, Pos: pen, Width: f.Width(code)})
		if mode.Visible() {
			g, ok := f.GlyphForCode(code)
			if ok {
				t := p.t.Multiply(geom.Translate(x+pen*size, y)).Multiply(geom.Scale(size, size))
				if err := p.b.DrawGlyph(g, pdfrender.Fill{Paint: paint, Alpha: 1}, t); err != nil {
					errs = append(errs, fmt.Errorf("glyph %d: %w", g.ID, err))
				}
			}
		}
		pen += f.Width(code)
	}
	span.Width = pen * size
	span.Bounds = geom.NewRect(x, y-0.2*size, x+span.Width, y+0.8*size)
	p.b.AddText(span)
	return errors.Join(errs...)
}
