package font

import (
	"github.com/gogpu/pdfrender/pdf"
)

// widths holds a font dictionary's glyph widths in 1/1000 em.
type widths struct {
	first   int
	simple  []float64
	cid     map[uint32]float64
	missing float64
	hasCID  bool
}

func (w *widths) lookup(code uint32, isCID bool) (float64, bool) {
	if isCID {
		if v, ok := w.cid[code]; ok {
			return v, true
		}
		return w.missing, w.hasCID
	}
	i := int(code) - w.first
	if i >= 0 && i < len(w.simple) {
		return w.simple[i], true
	}
	return 0, false
}

// simpleWidths reads FirstChar, Widths and the descriptor's MissingWidth.
func simpleWidths(d, fd pdf.Dict, r pdf.Resolver) (widths, error) {
	var w widths
	w.first, _ = d.Int("FirstChar")
	w.missing, _ = fd.Number("MissingWidth")
	v, err := pdf.Deref(r, d["Widths"])
	if err != nil {
		return w, err
	}
	a, _ := v.(pdf.Array)
	w.simple = make([]float64, len(a))
	for i, o := range a {
		n, err := pdf.Deref(r, o)
		if err != nil {
			return w, err
		}
		w.simple[i], _ = pdf.Number(n)
	}
	return w, nil
}

// cidWidths reads a CIDFont's DW and W entries. W holds runs of either
// "c [w1 w2 ...]" or "cfirst clast w".
func cidWidths(d pdf.Dict, r pdf.Resolver) (widths, error) {
	w := widths{cid: make(map[uint32]float64), missing: 1000, hasCID: true}
	if dw, ok := d.Number("DW"); ok {
		w.missing = dw
	}
	v, err := pdf.Deref(r, d["W"])
	if err != nil {
		return w, err
	}
	a, _ := v.(pdf.Array)
	for i := 0; i < len(a); {
		first, ok := pdf.Number(a[i])
		if !ok || i+1 >= len(a) {
			break
		}
		next, err := pdf.Deref(r, a[i+1])
		if err != nil {
			return w, err
		}
		if run, ok := next.(pdf.Array); ok {
			for k, o := range run {
				if n, ok := pdf.Number(o); ok {
					w.cid[uint32(first)+uint32(k)] = n
				}
			}
			i += 2
			continue
		}
		if i+2 >= len(a) {
			break
		}
		last, ok1 := pdf.Number(next)
		width, ok2 := pdf.Number(a[i+2])
		if ok1 && ok2 && last >= first && last-first < 1<<16 {
			for c := uint32(first); c <= uint32(last); c++ {
				w.cid[c] = width
			}
		}
		i += 3
	}
	return w, nil
}
