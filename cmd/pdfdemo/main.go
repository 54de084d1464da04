// Command pdfdemo drives a built-in demo page through a registered
// backend. The trace backend prints one event per line; the scene
// backend rasterizes the page to a PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gg"
	ggscene "github.com/gogpu/gg/scene"

	"github.com/gogpu/pdfrender"
	"github.com/gogpu/pdfrender/backend/scene"
	"github.com/gogpu/pdfrender/backend/trace"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf/ximage"
)

// dpi is the output resolution; page units are millimeters.
const dpi = 150.0

func main() {
	var (
		backend = flag.String("backend", "trace", "backend name ("+fmt.Sprint(pdfrender.Backends())+")")
		output  = flag.String("output", "page.png", "output file for the scene backend")
		pages   = flag.Int("pages", 1, "number of times to draw the page")
		verbose = flag.Bool("v", false, "log backend diagnostics to stderr")
		decode  = flag.Bool("decode", false, "trace backend: decode images and report failures")
	)
	flag.Parse()

	if *verbose {
		pdfrender.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	b, err := pdfrender.NewBackend(*backend)
	if err != nil {
		log.Fatal(err)
	}
	if *decode && *backend == "trace" {
		b = trace.New(nil, trace.WithImageDecoder(&ximage.Decoder{Logger: pdfrender.Logger()}))
	}

	doc, err := newDemoDoc()
	if err != nil {
		log.Fatalf("Failed to build page: %v", err)
	}

	scale := dpi / 25.4
	w, h := doc.mediaBox.Width()*scale, doc.mediaBox.Height()*scale
	opts := pdfrender.DefaultRenderOptions()
	opts.Transform = geom.Matrix(scale, 0, 0, -scale, 0, h)

	for page := range *pages {
		if err := doc.draw(b, opts); err != nil {
			log.Fatalf("Page %d: %v", page+1, err)
		}
		switch b := b.(type) {
		case *trace.Tracer:
			for _, ev := range b.Finish() {
				fmt.Println(ev)
			}
		case *scene.Backend:
			out := *output
			if *pages > 1 {
				out = fmt.Sprintf("%d-%s", page+1, out)
			}
			if err := rasterize(b.Finish(), int(math.Ceil(w)), int(math.Ceil(h)), out); err != nil {
				log.Fatalf("Failed to save: %v", err)
			}
			log.Printf("Page saved to %s\n", out)
		default:
			log.Printf("Backend %s has no output\n", *backend)
		}
	}
}

func rasterize(res *scene.Result, w, h int, path string) error {
	r := ggscene.NewRenderer(w, h)
	if r == nil {
		return fmt.Errorf("empty page %dx%d", w, h)
	}
	defer r.Close()

	pm := gg.NewPixmap(w, h)
	pm.Clear(gg.RGB(1, 1, 1))
	if err := r.Render(pm, res.Scene); err != nil {
		return err
	}
	return pm.SavePNG(path)
}
