package pdfrender

import (
	"log/slog"

	"github.com/gogpu/pdfrender/font"
	"github.com/gogpu/pdfrender/geom"
)

// Config carries the shared state handed to backend factories.
type Config struct {
	// FontCache is shared by every backend built from this Config.
	FontCache *font.Cache

	Logger *slog.Logger
}

// Option configures a Config.
//
// Example:
//
//	cache := font.NewCache()
//	page1, _ := pdfrender.NewBackend("scene", pdfrender.WithFontCache(cache))
//	page2, _ := pdfrender.NewBackend("scene", pdfrender.WithFontCache(cache))
type Option func(*Config)

// WithFontCache shares an existing font cache.
func WithFontCache(c *font.Cache) Option {
	return func(cfg *Config) {
		cfg.FontCache = c
	}
}

// WithLogger overrides the package logger for one backend.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// NewConfig applies opts. Unset fields get a fresh font cache and the
// package logger.
func NewConfig(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = Logger()
	}
	if cfg.FontCache == nil {
		cfg.FontCache = font.NewCache(font.WithLogger(cfg.Logger))
	}
	return cfg
}

// RenderOptions configures how a page is placed in output space.
type RenderOptions struct {
	// Transform maps page space to output space.
	Transform geom.Transform

	// Clip, when set, restricts the page in output space.
	Clip *geom.Outline
}

// DefaultRenderOptions returns the identity transform and no clip.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Transform: geom.Identity()}
}

// BeginPage starts a page on b: it sets the view box to the media box
// mapped through opts.Transform and applies opts.Clip. It fails with
// ErrInvalidTransform for a singular or non-finite transform.
func BeginPage(b Backend, mediaBox geom.Rect, opts RenderOptions) error {
	t := opts.Transform
	if !geom.IsFinite(t) || geom.ScaleFactor(t) == 0 {
		return ErrInvalidTransform
	}
	b.SetViewBox(geom.TransformRect(mediaBox, t))
	if opts.Clip != nil {
		b.SetClipPath(opts.Clip)
	}
	return nil
}
