package pdf

// Resources is a page's resource dictionary split into its named
// sub-dictionaries. Values may be references; they are resolved lazily
// by whoever consumes them. Resources is read-only during a render.
type Resources struct {
	Fonts       Dict
	XObjects    Dict
	ColorSpaces Dict
	ExtGStates  Dict
	Patterns    Dict
	Shadings    Dict
	Properties  Dict
}

// NewResources splits a resource dictionary. Each sub-dictionary may
// itself be a reference.
func NewResources(d Dict, r Resolver) (*Resources, error) {
	res := &Resources{}
	fields := []struct {
		key Name
		dst *Dict
	}{
		{"Font", &res.Fonts},
		{"XObject", &res.XObjects},
		{"ColorSpace", &res.ColorSpaces},
		{"ExtGState", &res.ExtGStates},
		{"Pattern", &res.Patterns},
		{"Shading", &res.Shadings},
		{"Properties", &res.Properties},
	}
	for _, f := range fields {
		v, ok := d[f.key]
		if !ok {
			continue
		}
		sub, err := DerefDict(r, v)
		if err != nil {
			return nil, &Error{Op: "resources " + string(f.key), Err: err}
		}
		*f.dst = sub
	}
	return res, nil
}

// Font returns the font entry registered under name.
func (res *Resources) Font(name Name) (Object, bool) {
	return lookup(res, func(r *Resources) Dict { return r.Fonts }, name)
}

// XObject returns the external object registered under name.
func (res *Resources) XObject(name Name) (Object, bool) {
	return lookup(res, func(r *Resources) Dict { return r.XObjects }, name)
}

// ColorSpace returns the color space registered under name.
func (res *Resources) ColorSpace(name Name) (Object, bool) {
	return lookup(res, func(r *Resources) Dict { return r.ColorSpaces }, name)
}

func lookup(res *Resources, field func(*Resources) Dict, name Name) (Object, bool) {
	if res == nil {
		return nil, false
	}
	d := field(res)
	if d == nil {
		return nil, false
	}
	v, ok := d[name]
	return v, ok
}
