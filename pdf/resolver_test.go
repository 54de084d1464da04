package pdf

import (
	"errors"
	"testing"
)

func TestDerefFollowsChain(t *testing.T) {
	m := NewMemResolver()
	inner := m.Add(Integer(42))
	outer := m.Add(inner)

	got, err := Deref(m, outer)
	if err != nil {
		t.Fatalf("Deref failed: %v", err)
	}
	if got != Integer(42) {
		t.Errorf("got %v, want 42", got)
	}
	if m.Calls(inner) != 1 || m.Calls(outer) != 1 {
		t.Errorf("got calls %d/%d, want 1/1", m.Calls(inner), m.Calls(outer))
	}
}

func TestDerefDirectObject(t *testing.T) {
	got, err := Deref(nil, Name("X"))
	if err != nil || got != Name("X") {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestDerefErrors(t *testing.T) {
	m := NewMemResolver()
	a, b := Ref{Num: 1}, Ref{Num: 2}
	m.Set(a, b)
	m.Set(b, a)

	_, err := Deref(m, a)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("cycle: got %v, want ErrMalformed", err)
	}

	_, err = Deref(m, Ref{Num: 99})
	if !errors.Is(err, ErrMissingObject) {
		t.Errorf("missing: got %v, want ErrMissingObject", err)
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Ref != (Ref{Num: 99}) {
		t.Errorf("missing: got %v, want *Error for 99 0 R", err)
	}

	_, err = Deref(nil, Ref{Num: 1})
	if !errors.Is(err, ErrMissingObject) {
		t.Errorf("nil resolver: got %v, want ErrMissingObject", err)
	}
}

func TestDerefDictAndStream(t *testing.T) {
	m := NewMemResolver()
	s := &Stream{Dict: Dict{"Length": Integer(0)}}
	sref := m.Add(s)

	d, err := DerefDict(m, sref)
	if err != nil || d["Length"] != Integer(0) {
		t.Errorf("stream dict: got %v, %v", d, err)
	}
	if got, err := DerefStream(m, sref); err != nil || got != s {
		t.Errorf("DerefStream: got %v, %v", got, err)
	}
	if _, err := DerefStream(m, Integer(1)); !errors.Is(err, ErrMalformed) {
		t.Errorf("DerefStream(int): got %v, want ErrMalformed", err)
	}
	if _, err := DerefDict(m, Name("x")); !errors.Is(err, ErrMalformed) {
		t.Errorf("DerefDict(name): got %v, want ErrMalformed", err)
	}
	if d, err := DerefDict(m, nil); d != nil || err != nil {
		t.Errorf("DerefDict(nil): got %v, %v", d, err)
	}
}

func TestResolverFunc(t *testing.T) {
	boom := errors.New("io failure")
	r := ResolverFunc(func(Ref) (Object, error) { return nil, boom })
	_, err := Deref(r, Ref{Num: 3})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped io failure", err)
	}
}

func TestNewResources(t *testing.T) {
	m := NewMemResolver()
	fonts := m.Add(Dict{"F1": Ref{Num: 50}})
	res, err := NewResources(Dict{
		"Font":       fonts,
		"XObject":    Dict{"Im1": Ref{Num: 60}},
		"ColorSpace": Dict{"CS0": Name("DeviceGray")},
	}, m)
	if err != nil {
		t.Fatalf("NewResources failed: %v", err)
	}
	if f, ok := res.Font("F1"); !ok || f != (Ref{Num: 50}) {
		t.Errorf("Font(F1) = %v, %v", f, ok)
	}
	if x, ok := res.XObject("Im1"); !ok || x != (Ref{Num: 60}) {
		t.Errorf("XObject(Im1) = %v, %v", x, ok)
	}
	if cs, ok := res.ColorSpace("CS0"); !ok || cs != Name("DeviceGray") {
		t.Errorf("ColorSpace(CS0) = %v, %v", cs, ok)
	}
	if _, ok := res.Font("F2"); ok {
		t.Error("Font(F2) should be absent")
	}
	var nilRes *Resources
	if _, ok := nilRes.Font("F1"); ok {
		t.Error("nil resources should have no fonts")
	}

	_, err = NewResources(Dict{"Font": Ref{Num: 404}}, m)
	if !errors.Is(err, ErrMissingObject) {
		t.Errorf("got %v, want ErrMissingObject", err)
	}
}
