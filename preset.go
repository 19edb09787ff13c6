package canvasfit

import (
	"fmt"
	"image"
)

// DefaultPresetName is used when no preset is chosen explicitly.
const DefaultPresetName = "Portrait"

// Preset is a named target canvas size.
type Preset struct {
	Name   string
	Ratio  string
	Width  int
	Height int
}

var (
	// Square is the 1:1 Instagram canvas.
	Square = Preset{Name: "Square", Ratio: "1:1", Width: 1080, Height: 1080}

	// Portrait is the 4:5 Instagram canvas.
	Portrait = Preset{Name: "Portrait", Ratio: "4:5", Width: 1080, Height: 1350}

	// Landscape is the 16:9 Instagram canvas.
	Landscape = Preset{Name: "Landscape", Ratio: "16:9", Width: 1080, Height: 606}
)

var presets = [...]Preset{Square, Portrait, Landscape}

// Presets returns all presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets[:])
	return out
}

// DefaultPreset returns the Portrait preset.
func DefaultPreset() Preset {
	return Portrait
}

// Lookup returns the preset with the given name. The match is exact and
// case-sensitive.
func Lookup(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, &Error{
		Kind: ErrInvalidPreset,
		Op:   "lookup",
		Err:  fmt.Errorf("unknown format %q, want one of Square, Portrait, Landscape", name),
	}
}

// Size returns the canvas dimensions.
func (p Preset) Size() image.Point {
	return image.Pt(p.Width, p.Height)
}

func (p Preset) String() string {
	return fmt.Sprintf("%s (%s) %d×%d", p.Name, p.Ratio, p.Width, p.Height)
}
