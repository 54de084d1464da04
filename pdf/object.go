package pdf

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/pdfrender/internal/cache"
)

// Object is a PDF object. The set of implementations is closed.
type Object interface {
	isObject()
}

// Null is the PDF null object.
type Null struct{}

// Bool is a PDF boolean.
type Bool bool

// Integer is a PDF integer number.
type Integer int64

// Real is a PDF real number.
type Real float64

// String is a PDF string as raw bytes.
type String []byte

// Name is a PDF name without the leading slash.
type Name string

// Array is a PDF array.
type Array []Object

// Dict is a PDF dictionary.
type Dict map[Name]Object

// Stream is a PDF stream: a dictionary plus the still-encoded data.
type Stream struct {
	Dict Dict
	Data []byte
}

// Ref is an indirect object reference. The zero Ref is not a valid
// reference and is used for direct objects.
type Ref struct {
	Num uint32
	Gen uint16
}

func (Null) isObject()    {}
func (Bool) isObject()    {}
func (Integer) isObject() {}
func (Real) isObject()    {}
func (String) isObject()  {}
func (Name) isObject()    {}
func (Array) isObject()   {}
func (Dict) isObject()    {}
func (*Stream) isObject() {}
func (Ref) isObject()     {}

// IsZero reports whether r is the zero reference.
func (r Ref) IsZero() bool { return r.Num == 0 && r.Gen == 0 }

// Hash returns a hash of r for sharded caches keyed by reference.
func (r Ref) Hash() uint64 { return cache.Uint64Hasher(uint64(r.Num)<<16 | uint64(r.Gen)) }

// String returns the reference in "N G R" form.
func (r Ref) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Number returns the numeric value of an Integer or Real.
func Number(o Object) (float64, bool) {
	switch v := o.(type) {
	case Integer:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// Get returns the value for key, or nil.
func (d Dict) Get(key Name) Object { return d[key] }

// Name returns the name stored under key.
func (d Dict) Name(key Name) (Name, bool) {
	n, ok := d[key].(Name)
	return n, ok
}

// Int returns the integer stored under key. Reals are truncated.
func (d Dict) Int(key Name) (int, bool) {
	switch v := d[key].(type) {
	case Integer:
		return int(v), true
	case Real:
		return int(v), true
	}
	return 0, false
}

// Number returns the number stored under key.
func (d Dict) Number(key Name) (float64, bool) { return Number(d[key]) }

// Bool returns the boolean stored under key.
func (d Dict) Bool(key Name) (bool, bool) {
	b, ok := d[key].(Bool)
	return bool(b), ok
}

// Array returns the array stored under key.
func (d Dict) Array(key Name) (Array, bool) {
	a, ok := d[key].(Array)
	return a, ok
}

// Dict returns the dictionary stored under key.
func (d Dict) Dict(key Name) (Dict, bool) {
	v, ok := d[key].(Dict)
	return v, ok
}

// First returns the value of the first key present. Inline image
// dictionaries use abbreviated keys, so lookups often try two names.
func (d Dict) First(keys ...Name) Object {
	for _, k := range keys {
		if v, ok := d[k]; ok {
			return v
		}
	}
	return nil
}

// Clone returns a shallow copy of d.
func (d Dict) Clone() Dict { return maps.Clone(d) }

// Numbers converts an array of numbers. It fails if any element is not
// a number.
func (a Array) Numbers() ([]float64, bool) {
	out := make([]float64, len(a))
	for i, o := range a {
		v, ok := Number(o)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Format renders an object in PDF syntax. Streams are summarized by
// their dictionary and data length.
func Format(o Object) string {
	var sb strings.Builder
	writeObject(&sb, o)
	return sb.String()
}

func writeObject(sb *strings.Builder, o Object) {
	switch v := o.(type) {
	case nil, Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(v)))
	case Integer:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case Real:
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 64))
	case String:
		writeString(sb, v)
	case Name:
		sb.WriteByte('/')
		sb.WriteString(string(v))
	case Array:
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeObject(sb, e)
		}
		sb.WriteByte(']')
	case Dict:
		writeDict(sb, v)
	case *Stream:
		writeDict(sb, v.Dict)
		fmt.Fprintf(sb, " stream(%d bytes)", len(v.Data))
	case Ref:
		sb.WriteString(v.String())
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func writeDict(sb *strings.Builder, d Dict) {
	keys := slices.Collect(maps.Keys(d))
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	sb.WriteString("<<")
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('/')
		sb.WriteString(string(k))
		sb.WriteByte(' ')
		writeObject(sb, d[k])
	}
	sb.WriteString(">>")
}

func writeString(sb *strings.Builder, s String) {
	printable := true
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			printable = false
			break
		}
	}
	if !printable {
		fmt.Fprintf(sb, "<%x>", []byte(s))
		return
	}
	sb.WriteByte('(')
	for _, c := range s {
		if c == '(' || c == ')' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte(')')
}
