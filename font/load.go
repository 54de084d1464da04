package font

import (
	"errors"
	"log/slog"

	"github.com/gogpu/pdfrender/internal/nopslog"
	"github.com/gogpu/pdfrender/pdf"
	"github.com/gogpu/pdfrender/pdf/filter"
)

// Loader builds an Entry from a font dictionary. ref is the
// dictionary's reference, zero for a direct dictionary. A font that
// cannot be drawn yields (nil, nil); errors are reserved for resolver
// failures.
type Loader func(ref pdf.Ref, d pdf.Dict, r pdf.Resolver, log *slog.Logger) (*Entry, error)

// Font descriptor flags.
const (
	flagSymbolic    = 1 << 2
	flagNonsymbolic = 1 << 5
)

// Load is the default Loader.
func Load(ref pdf.Ref, d pdf.Dict, r pdf.Resolver, log *slog.Logger) (*Entry, error) {
	if log == nil {
		log = nopslog.Logger()
	}
	e, err := load(ref, d, r, log)
	if err != nil && errors.Is(err, pdf.ErrMalformed) {
		log.Debug("font: malformed font", "ref", ref, "err", err)
		return nil, nil
	}
	return e, err
}

func load(ref pdf.Ref, d pdf.Dict, r pdf.Resolver, log *slog.Logger) (*Entry, error) {
	subtype, _ := d.Name("Subtype")
	base, _ := d.Name("BaseFont")
	switch subtype {
	case "Type0":
		return loadType0(ref, d, r, log)
	case "Type1", "MMType1", "TrueType":
		return loadSimple(ref, d, r, log)
	}
	log.Debug("font: unsupported font type", "ref", ref, "subtype", subtype, "name", base)
	return nil, nil
}

func loadSimple(ref pdf.Ref, d pdf.Dict, r pdf.Resolver, log *slog.Logger) (*Entry, error) {
	base, _ := d.Name("BaseFont")
	e := newEntry(ref, string(base))

	fd, err := pdf.DerefDict(r, d["FontDescriptor"])
	if err != nil {
		return nil, err
	}
	flags, _ := fd.Int("Flags")
	e.Symbolic = flags&flagSymbolic != 0 && flags&flagNonsymbolic == 0

	prog, kind, err := embeddedProgram(fd, r, log)
	if err != nil {
		return nil, err
	}
	if prog == nil {
		std, ok, err := standardProgram(e.Name)
		if err != nil {
			log.Debug("font: substitute failed", "name", e.Name, "err", err)
			return nil, nil
		}
		if !ok {
			log.Debug("font: not embedded and not standard", "ref", ref, "name", e.Name)
			return nil, nil
		}
		prog, kind = std, KindStandard
		e.Symbolic = e.Name == "Symbol"
	}
	e.prog, e.Kind = prog, kind

	def := standardEncoding
	switch {
	case e.Kind == KindStandard && e.Symbolic:
		def = symbolEncoding
	case e.Symbolic:
		def = identityEncoding
	}
	if e.enc, err = newSimpleEncoding(d["Encoding"], r, def); err != nil {
		return nil, err
	}
	if e.widths, err = simpleWidths(d, fd, r); err != nil {
		return nil, err
	}
	if e.toUni, err = loadToUnicode(d, r); err != nil {
		return nil, err
	}
	return e, nil
}

func loadType0(ref pdf.Ref, d pdf.Dict, r pdf.Resolver, log *slog.Logger) (*Entry, error) {
	base, _ := d.Name("BaseFont")
	e := newEntry(ref, string(base))
	e.IsCID = true

	encObj, err := pdf.Deref(r, d["Encoding"])
	if err != nil {
		return nil, err
	}
	var cmapName string
	switch v := encObj.(type) {
	case pdf.Name:
		cmapName = string(v)
	case *pdf.Stream:
		// Embedded CMaps are treated as their named identity form.
		n, _ := v.Dict.Name("CMapName")
		cmapName = string(n)
		if _, ok := predefinedCodec(cmapName); !ok {
			log.Debug("font: embedded CMap read as Identity-H", "ref", ref, "cmap", cmapName)
			cmapName = "Identity-H"
		}
	}
	codec, ok := predefinedCodec(cmapName)
	if !ok {
		log.Debug("font: unsupported CMap", "ref", ref, "cmap", cmapName)
		return nil, nil
	}
	e.Vertical = IsVerticalCMap(cmapName)

	desc, err := pdf.Deref(r, d["DescendantFonts"])
	if err != nil {
		return nil, err
	}
	arr, _ := desc.(pdf.Array)
	if len(arr) == 0 {
		log.Debug("font: Type0 without descendant", "ref", ref)
		return nil, nil
	}
	cid, err := pdf.DerefDict(r, arr[0])
	if err != nil {
		return nil, err
	}
	fd, err := pdf.DerefDict(r, cid["FontDescriptor"])
	if err != nil {
		return nil, err
	}
	prog, kind, err := embeddedProgram(fd, r, log)
	if err != nil {
		return nil, err
	}
	if prog == nil {
		log.Debug("font: CID font without usable program", "ref", ref, "name", e.Name)
		return nil, nil
	}
	e.prog, e.Kind = prog, kind

	if ic, ok := codec.(identityCodec); ok {
		if ic.cidToGID, err = cidToGIDMap(cid, r); err != nil {
			return nil, err
		}
		codec = ic
	}
	e.codec = codec
	if e.widths, err = cidWidths(cid, r); err != nil {
		return nil, err
	}
	if e.toUni, err = loadToUnicode(d, r); err != nil {
		return nil, err
	}
	return e, nil
}

// embeddedProgram parses the font program named by a font descriptor.
// It returns a nil program when there is none or it cannot be parsed.
func embeddedProgram(fd pdf.Dict, r pdf.Resolver, log *slog.Logger) (program, Kind, error) {
	if fd == nil {
		return nil, KindUnknown, nil
	}
	if _, ok := fd["FontFile"]; ok {
		log.Debug("font: Type1 programs are not supported", "name", fd["FontName"])
	}
	for _, key := range []pdf.Name{"FontFile2", "FontFile3"} {
		s, err := optionalStream(r, fd[key])
		if err != nil {
			return nil, KindUnknown, err
		}
		if s == nil {
			continue
		}
		data, err := streamData(s, r)
		if err != nil {
			if errors.Is(err, pdf.ErrMissingObject) {
				return nil, KindUnknown, err
			}
			log.Debug("font: cannot decode program", "key", key, "err", err)
			return nil, KindUnknown, nil
		}
		sub, _ := s.Dict.Name("Subtype")
		var (
			prog program
			kind Kind
		)
		switch {
		case key == "FontFile2":
			prog, err = parseSFNT(data)
			kind = KindTrueType
		case sub == "OpenType":
			prog, err = parseSFNT(data)
			kind = KindOpenType
		case sub == "Type1C", sub == "CIDFontType0C":
			prog, err = parseCFF(data)
			kind = KindCFF
		default:
			log.Debug("font: unsupported FontFile3 subtype", "subtype", sub)
			return nil, KindUnknown, nil
		}
		if err != nil {
			log.Debug("font: cannot parse program", "key", key, "subtype", sub, "err", err)
			return nil, KindUnknown, nil
		}
		return prog, kind, nil
	}
	return nil, KindUnknown, nil
}

// optionalStream resolves o to a stream, or nil when o is absent or not
// a stream.
func optionalStream(r pdf.Resolver, o pdf.Object) (*pdf.Stream, error) {
	v, err := pdf.Deref(r, o)
	if err != nil {
		return nil, err
	}
	s, _ := v.(*pdf.Stream)
	return s, nil
}

func streamData(s *pdf.Stream, r pdf.Resolver) ([]byte, error) {
	specs, err := pdf.FilterSpecs(s.Dict, r)
	if err != nil {
		return nil, err
	}
	data, _, err := filter.NewPipeline().Decode(s.Data, specs)
	return data, err
}

func cidToGIDMap(cid pdf.Dict, r pdf.Resolver) ([]byte, error) {
	s, err := optionalStream(r, cid["CIDToGIDMap"])
	if err != nil || s == nil {
		return nil, err
	}
	data, err := streamData(s, r)
	if err != nil && errors.Is(err, pdf.ErrMissingObject) {
		return nil, err
	}
	return data, nil
}

func loadToUnicode(d pdf.Dict, r pdf.Resolver) (*toUnicode, error) {
	s, err := optionalStream(r, d["ToUnicode"])
	if err != nil || s == nil {
		return nil, err
	}
	data, err := streamData(s, r)
	if err != nil {
		if errors.Is(err, pdf.ErrMissingObject) {
			return nil, err
		}
		return nil, nil
	}
	return parseToUnicode(data), nil
}
