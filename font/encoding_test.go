package font

import (
	"testing"

	"github.com/gogpu/pdfrender/pdf"
)

func TestBaseEncodings(t *testing.T) {
	tests := []struct {
		enc  pdf.Name
		code byte
		want rune
	}{
		{"WinAnsiEncoding", 'A', 'A'},
		{"WinAnsiEncoding", 0x80, '€'},
		{"WinAnsiEncoding", 0xE9, 'é'},
		{"MacRomanEncoding", 0x8E, 'é'},
		{"StandardEncoding", 0x27, '’'},
		{"StandardEncoding", 0xE1, 'Æ'},
	}
	for _, tt := range tests {
		t.Run(string(tt.enc), func(t *testing.T) {
			e, err := newSimpleEncoding(tt.enc, nil, standardEncoding)
			if err != nil {
				t.Fatalf("newSimpleEncoding: %v", err)
			}
			if got := e.rune(tt.code); got != tt.want {
				t.Errorf("code %#x: got %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestEncodingDifferences(t *testing.T) {
	r := pdf.NewMemResolver()
	diffs := r.Add(pdf.Array{pdf.Integer(32), pdf.Name("A"), pdf.Name("B"), pdf.Integer(0xC0), pdf.Name("uni263A")})
	d := pdf.Dict{
		"BaseEncoding": pdf.Name("WinAnsiEncoding"),
		"Differences":  diffs,
	}

	e, err := newSimpleEncoding(d, r, standardEncoding)
	if err != nil {
		t.Fatalf("newSimpleEncoding: %v", err)
	}
	checks := map[byte]rune{32: 'A', 33: 'B', 0xC0: '☺', 0x80: '€'}
	for code, want := range checks {
		if got := e.rune(code); got != want {
			t.Errorf("code %#x: got %q, want %q", code, got, want)
		}
	}
	if got := e.name(32); got != "A" {
		t.Errorf("name(32) = %q, want A", got)
	}
}

func TestEncodingDefault(t *testing.T) {
	e, err := newSimpleEncoding(nil, nil, identityEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.rune(0x41); got != 'A' {
		t.Errorf("got %q, want 'A'", got)
	}

	e, err = newSimpleEncoding(pdf.Name("NoSuchEncoding"), nil, standardEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.rune(0x60); got != '‘' {
		t.Errorf("got %q, want left quote", got)
	}
}

func TestEncodingMissingDifferences(t *testing.T) {
	d := pdf.Dict{"Differences": pdf.Ref{Num: 9}}
	if _, err := newSimpleEncoding(d, pdf.NewMemResolver(), standardEncoding); err == nil {
		t.Error("expected error for unresolvable Differences")
	}
}
