package geom

import (
	"testing"

	"github.com/gogpu/gg"
)

// segments returns the dashed intervals along the x axis as [start, end] pairs.
func segments(t *testing.T, o Outline) [][2]float64 {
	t.Helper()
	var out [][2]float64
	var start float64
	for e := range o.All() {
		switch e := e.(type) {
		case gg.MoveTo:
			start = e.Point.X
		case gg.LineTo:
			out = append(out, [2]float64{start, e.Point.X})
			start = e.Point.X
		default:
			t.Fatalf("unexpected element %T", e)
		}
	}
	return out
}

func line(x0, x1 float64) Outline {
	var b Builder
	b.MoveTo(x0, 0).LineTo(x1, 0)
	return b.Outline()
}

func TestDashLine(t *testing.T) {
	tests := []struct {
		name string
		dash *gg.Dash
		want [][2]float64
	}{
		{"plain", gg.NewDash(2, 3), [][2]float64{{0, 2}, {5, 7}}},
		{"phase", gg.NewDash(2, 3).WithOffset(1), [][2]float64{{0, 1}, {4, 6}, {9, 10}}},
		{"odd array", gg.NewDash(4), [][2]float64{{0, 4}, {8, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segments(t, line(0, 10).Dash(tt.dash, 0))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if !approx(got[i][0], tt.want[i][0]) || !approx(got[i][1], tt.want[i][1]) {
					t.Errorf("segment %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDashSolidReturnsSame(t *testing.T) {
	o := line(0, 10)
	if got := o.Dash(nil, 0); got.Len() != o.Len() {
		t.Errorf("nil dash: got %d elements, want %d", got.Len(), o.Len())
	}
}

func TestDashClosedSubpathIncludesClosingEdge(t *testing.T) {
	var b Builder
	b.Rect(0, 0, 10, 10)
	dashed := b.Outline().Dash(gg.NewDash(5, 5), 0)

	// perimeter 40 with period 10 gives four dashes
	moves := 0
	for e := range dashed.All() {
		if _, ok := e.(gg.MoveTo); ok {
			moves++
		}
	}
	if moves != 4 {
		t.Errorf("got %d dashes, want 4", moves)
	}
}

func TestDashFlattensCurves(t *testing.T) {
	var b Builder
	b.MoveTo(0, 0).CubicTo(0, 10, 10, 10, 10, 0)
	dashed := b.Outline().Dash(gg.NewDash(1, 1), 0.01)
	for e := range dashed.All() {
		switch e.(type) {
		case gg.MoveTo, gg.LineTo:
		default:
			t.Fatalf("dashed outline contains %T", e)
		}
	}
	if dashed.IsEmpty() {
		t.Fatal("dashed curve is empty")
	}
	bounds := dashed.Bounds()
	if bounds.Max.Y > 7.6 || bounds.Max.Y < 7 {
		t.Errorf("curve height: got %v, want about 7.5", bounds.Max.Y)
	}
}

func TestDashTooFineStaysSolid(t *testing.T) {
	var b Builder
	b.MoveTo(0, 0).LineTo(1000, 0).LineTo(1000, 1000).LineTo(0, 1000).Close()
	o := b.Outline()

	got := o.Dash(gg.NewDash(1e-5, 1e-5), 0)
	if got.Len() != o.Len() {
		t.Fatalf("got %d elements, want the %d-element solid outline", got.Len(), o.Len())
	}
	if n := segments(t, line(0, 1000).Dash(gg.NewDash(1, 1), 0)); len(n) != 500 {
		t.Errorf("1/1 dash on 1000 units: got %d dashes, want 500", len(n))
	}
}
