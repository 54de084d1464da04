package ximage

import (
	"log/slog"

	"github.com/gogpu/pdfrender/internal/nopslog"
)

func (d *Decoder) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return nopslog.Logger()
}
