package pdfrender

import "github.com/gogpu/pdfrender/pdf"

// BlendMode is a PDF separable or non-separable blend mode. It applies
// to image composition.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModeNames = [...]string{
	BlendNormal:     "Normal",
	BlendMultiply:   "Multiply",
	BlendScreen:     "Screen",
	BlendOverlay:    "Overlay",
	BlendDarken:     "Darken",
	BlendLighten:    "Lighten",
	BlendColorDodge: "ColorDodge",
	BlendColorBurn:  "ColorBurn",
	BlendHardLight:  "HardLight",
	BlendSoftLight:  "SoftLight",
	BlendDifference: "Difference",
	BlendExclusion:  "Exclusion",
	BlendHue:        "Hue",
	BlendSaturation: "Saturation",
	BlendColor:      "Color",
	BlendLuminosity: "Luminosity",
}

// String returns the PDF name of the mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// ParseBlendMode maps a /BM name to a BlendMode. Compatible is a synonym
// for Normal. Unknown names yield BlendNormal and false.
func ParseBlendMode(name pdf.Name) (BlendMode, bool) {
	if name == "Compatible" {
		return BlendNormal, true
	}
	for i, n := range blendModeNames {
		if string(name) == n {
			return BlendMode(i), true
		}
	}
	return BlendNormal, false
}
