package font

import (
	"errors"
	"log/slog"

	"github.com/gogpu/pdfrender/internal/cache"
	"github.com/gogpu/pdfrender/internal/nopslog"
	"github.com/gogpu/pdfrender/pdf"
)

// Cache shares loaded fonts. It is safe for concurrent use: concurrent
// requests for the same font reference share a single load.
//
// Fonts that load as nil are cached like any other result. Resolver
// errors are returned to every caller waiting on the load and are not
// cached. Direct font dictionaries have no identity and are loaded on
// every call.
type Cache struct {
	entries *cache.Sharded[pdf.Ref, *Entry]
	loader  Loader
	log     *slog.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLoader replaces the function that loads font dictionaries.
func WithLoader(l Loader) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithLogger sets the logger handed to the loader.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCache returns an empty cache using Load.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: cache.NewSharded[pdf.Ref, *Entry](0, pdf.Ref.Hash),
		loader:  Load,
		log:     nopslog.Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the font for a Font resource entry, which is normally a
// reference. It returns (nil, nil) for fonts that cannot be drawn.
func (c *Cache) Get(o pdf.Object, r pdf.Resolver) (*Entry, error) {
	switch v := o.(type) {
	case pdf.Ref:
		return c.entries.GetOrLoad(v, func() (*Entry, error) {
			d, err := pdf.DerefDict(r, v)
			if err != nil {
				if errors.Is(err, pdf.ErrMalformed) {
					c.log.Debug("font: not a dictionary", "ref", v, "err", err)
					return nil, nil
				}
				return nil, err
			}
			if d == nil {
				return nil, nil
			}
			return c.loader(v, d, r, c.log)
		})
	case pdf.Dict:
		return c.loader(pdf.Ref{}, v, r, c.log)
	case *pdf.Stream:
		return c.loader(pdf.Ref{}, v.Dict, r, c.log)
	}
	return nil, nil
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Loads    uint64
	Failures uint64
}

// Stats returns the cache counters.
func (c *Cache) Stats() Stats {
	s := c.entries.Stats()
	return Stats{Hits: s.Hits, Misses: s.Misses, Loads: s.Loads, Failures: s.Failures}
}

// Len returns the number of cached fonts, including nil results.
func (c *Cache) Len() int { return c.entries.Len() }

// Clear drops every cached font.
func (c *Cache) Clear() { c.entries.Clear() }
