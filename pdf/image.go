package pdf

import (
	"fmt"
)

// FilterSpec names one stream filter and its decode parameters.
type FilterSpec struct {
	Name   Name
	Params Dict
}

// ImageXObject is an image XObject or an inline image. Data still holds
// the encoded stream bytes; decoding happens on demand.
type ImageXObject struct {
	Width            int
	Height           int
	BitsPerComponent int
	ColorSpace       Object
	Decode           []float64
	ImageMask        bool
	Interpolate      bool
	SMask            Object
	Filters          []FilterSpec
	Dict             Dict
	Data             []byte
}

// NewImageXObject interprets an image stream.
func NewImageXObject(s *Stream, r Resolver) (*ImageXObject, error) {
	if s == nil {
		return nil, &Error{Op: "image", Err: ErrMalformed}
	}
	if st, _ := s.Dict.Name("Subtype"); st != "" && st != "Image" {
		return nil, &Error{Op: "image", Err: fmt.Errorf("%w: subtype %s", ErrMalformed, st)}
	}
	return newImage(s.Dict, s.Data, r, false)
}

// inlineKeys maps abbreviated inline image keys to their full names.
var inlineKeys = map[Name]Name{
	"W":   "Width",
	"H":   "Height",
	"BPC": "BitsPerComponent",
	"CS":  "ColorSpace",
	"D":   "Decode",
	"DP":  "DecodeParms",
	"F":   "Filter",
	"IM":  "ImageMask",
	"I":   "Interpolate",
}

// inlineNames maps abbreviated names used as values in inline images.
var inlineNames = map[Name]Name{
	"G":    "DeviceGray",
	"RGB":  "DeviceRGB",
	"CMYK": "DeviceCMYK",
	"I":    "Indexed",
	"AHx":  "ASCIIHexDecode",
	"A85":  "ASCII85Decode",
	"LZW":  "LZWDecode",
	"Fl":   "FlateDecode",
	"RL":   "RunLengthDecode",
	"CCF":  "CCITTFaxDecode",
	"DCT":  "DCTDecode",
}

// NewInlineImage interprets the dictionary of a BI ... ID ... EI
// sequence. Abbreviated keys and names are expanded. The returned image
// is meant to be shared by pointer between every call that draws it.
func NewInlineImage(d Dict, data []byte, r Resolver) (*ImageXObject, error) {
	full := make(Dict, len(d))
	for k, v := range d {
		if long, ok := inlineKeys[k]; ok {
			k = long
		}
		full[k] = expandInline(v)
	}
	return newImage(full, data, r, true)
}

func expandInline(o Object) Object {
	switch v := o.(type) {
	case Name:
		if long, ok := inlineNames[v]; ok {
			return long
		}
	case Array:
		out := make(Array, len(v))
		for i, e := range v {
			out[i] = expandInline(e)
		}
		return out
	}
	return o
}

func newImage(d Dict, data []byte, r Resolver, inline bool) (*ImageXObject, error) {
	op := "image"
	if inline {
		op = "inline image"
	}
	im := &ImageXObject{Dict: d, Data: data}

	var ok bool
	if im.Width, ok = intValue(r, d["Width"]); !ok || im.Width <= 0 {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: bad Width", ErrMalformed)}
	}
	if im.Height, ok = intValue(r, d["Height"]); !ok || im.Height <= 0 {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: bad Height", ErrMalformed)}
	}
	if b, ok := d.Bool("ImageMask"); ok {
		im.ImageMask = b
	}
	if b, ok := d.Bool("Interpolate"); ok {
		im.Interpolate = b
	}
	im.BitsPerComponent, _ = intValue(r, d["BitsPerComponent"])
	if im.ImageMask {
		im.BitsPerComponent = 1
	}
	im.ColorSpace = d["ColorSpace"]
	im.SMask = d["SMask"]

	if dec, err := Deref(r, d["Decode"]); err == nil {
		if a, ok := dec.(Array); ok {
			im.Decode, _ = a.Numbers()
		}
	}

	filters, err := FilterSpecs(d, r)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	im.Filters = filters
	return im, nil
}

// FilterSpecs reads the Filter and DecodeParms entries of a stream
// dictionary. Both may be a single value or an array.
func FilterSpecs(d Dict, r Resolver) ([]FilterSpec, error) {
	f, err := Deref(r, d["Filter"])
	if err != nil {
		return nil, err
	}
	p, err := Deref(r, d["DecodeParms"])
	if err != nil {
		return nil, err
	}

	var names []Name
	switch v := f.(type) {
	case nil, Null:
		return nil, nil
	case Name:
		names = []Name{v}
	case Array:
		for _, e := range v {
			n, ok := e.(Name)
			if !ok {
				return nil, fmt.Errorf("%w: filter %s", ErrMalformed, Format(e))
			}
			names = append(names, n)
		}
	default:
		return nil, fmt.Errorf("%w: filter %s", ErrMalformed, Format(v))
	}
	if len(names) == 0 {
		return nil, nil
	}

	params := make([]Dict, len(names))
	switch v := p.(type) {
	case Dict:
		params[0] = v
	case Array:
		for i := 0; i < len(v) && i < len(params); i++ {
			if pd, err := DerefDict(r, v[i]); err == nil {
				params[i] = pd
			}
		}
	}

	specs := make([]FilterSpec, len(names))
	for i, n := range names {
		if long, ok := inlineNames[n]; ok {
			n = long
		}
		specs[i] = FilterSpec{Name: n, Params: params[i]}
	}
	return specs, nil
}

func intValue(r Resolver, o Object) (int, bool) {
	v, err := Deref(r, o)
	if err != nil {
		return 0, false
	}
	n, ok := Number(v)
	return int(n), ok
}
