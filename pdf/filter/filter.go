// Package filter decodes PDF stream filters.
//
// Decoders are looked up by filter name in a Registry. A Pipeline applies
// a stream's filter chain in order and stops at image codecs (DCTDecode,
// JPXDecode, JBIG2Decode), which are left to the image decoder.
package filter

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/gogpu/pdfrender/pdf"
)

// Sentinel errors for filter decoding.
var (
	// ErrUnsupportedFilter is returned for filters without a decoder.
	ErrUnsupportedFilter = errors.New("filter: unsupported filter")

	// ErrLimitExceeded is returned when decoded data grows past the
	// pipeline's size limit.
	ErrLimitExceeded = errors.New("filter: decoded size limit exceeded")
)

// Decoder decodes one stream filter.
type Decoder interface {
	// Name returns the full PDF filter name, such as "FlateDecode".
	Name() string

	// Decode decodes in. params is the filter's DecodeParms and may be nil.
	Decode(in []byte, params pdf.Dict) ([]byte, error)
}

// LimitedDecoder is a Decoder that stops as soon as its output would
// pass limit bytes and returns ErrLimitExceeded. A limit of zero means no
// limit. Pipeline prefers it over Decode when a size limit is set.
type LimitedDecoder interface {
	Decoder
	DecodeLimited(in []byte, params pdf.Dict, limit int) ([]byte, error)
}

// imageCodecs are filters whose output is an image rather than samples.
var imageCodecs = map[pdf.Name]bool{
	"DCTDecode":   true,
	"JPXDecode":   true,
	"JBIG2Decode": true,
}

// IsImageCodec reports whether name is a filter that produces a complete
// encoded image.
func IsImageCodec(name pdf.Name) bool { return imageCodecs[name] }

// Registry maps filter names to decoders. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[pdf.Name]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[pdf.Name]Decoder)}
}

// Register adds d under its name, replacing any previous decoder.
func (r *Registry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[pdf.Name(d.Name())] = d
}

// Lookup returns the decoder for name.
func (r *Registry) Lookup(name pdf.Name) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[name]
	return d, ok
}

// Names returns the registered filter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decoders))
	for n := range r.decoders {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry with every built-in decoder.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		r.Register(Flate{})
		r.Register(LZW{})
		r.Register(ASCIIHex{})
		r.Register(ASCII85{})
		r.Register(RunLength{})
		r.Register(CCITTFax{})
		defaultRegistry = r
	})
	return defaultRegistry
}

// Limits bounds the work a pipeline may do.
type Limits struct {
	// MaxDecodedSize is the largest output any single filter may produce.
	// Zero means no limit.
	MaxDecodedSize int
}

// DefaultLimits allows up to 256 MiB per filter stage.
var DefaultLimits = Limits{MaxDecodedSize: 256 << 20}

// Pipeline applies a chain of filters.
type Pipeline struct {
	Registry *Registry
	Limits   Limits
}

// NewPipeline returns a pipeline over the default registry and limits.
func NewPipeline() *Pipeline {
	return &Pipeline{Registry: Default(), Limits: DefaultLimits}
}

// Decode runs data through specs in order. When it reaches an image
// codec it returns the data fed to that codec together with the codec's
// name; the codec must be the last filter. For plain sample data the
// returned codec is empty.
func (p *Pipeline) Decode(data []byte, specs []pdf.FilterSpec) ([]byte, pdf.Name, error) {
	reg := p.Registry
	if reg == nil {
		reg = Default()
	}
	for i, spec := range specs {
		if IsImageCodec(spec.Name) {
			if i != len(specs)-1 {
				return nil, "", fmt.Errorf("%w: %s must be the last filter", pdf.ErrMalformed, spec.Name)
			}
			return data, spec.Name, nil
		}
		dec, ok := reg.Lookup(spec.Name)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFilter, spec.Name)
		}
		out, err := p.decodeOne(dec, data, spec.Params)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", spec.Name, err)
		}
		if p.Limits.MaxDecodedSize > 0 && len(out) > p.Limits.MaxDecodedSize {
			return nil, "", fmt.Errorf("%s: %w", spec.Name, ErrLimitExceeded)
		}
		data = out
	}
	return data, "", nil
}

func (p *Pipeline) decodeOne(dec Decoder, data []byte, params pdf.Dict) ([]byte, error) {
	if ld, ok := dec.(LimitedDecoder); ok && p.Limits.MaxDecodedSize > 0 {
		return ld.DecodeLimited(data, params, p.Limits.MaxDecodedSize)
	}
	return dec.Decode(data, params)
}

// readAll reads r to the end, stopping with ErrLimitExceeded once more
// than limit bytes arrive. A truncated stream keeps what was read.
func readAll(r io.Reader, limit int) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}
	out, err := io.ReadAll(r)
	if limit > 0 && len(out) > limit {
		return nil, ErrLimitExceeded
	}
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %v", pdf.ErrDecode, err)
	}
	return out, nil
}

// intParam reads an integer decode parameter with a default.
func intParam(params pdf.Dict, key pdf.Name, def int) int {
	if v, ok := params.Int(key); ok {
		return v
	}
	return def
}

// boolParam reads a boolean decode parameter with a default.
func boolParam(params pdf.Dict, key pdf.Name, def bool) bool {
	if v, ok := params.Bool(key); ok {
		return v
	}
	return def
}
