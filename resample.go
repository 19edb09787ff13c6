package canvasfit

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Resampler scales an image to exactly width x height, preserving alpha.
type Resampler interface {
	Resample(src image.Image, width, height int) (image.Image, error)
}

// FilterResampler resamples in-process with an imaging filter.
type FilterResampler struct {
	Filter imaging.ResampleFilter
}

// DefaultResampler uses the Lanczos filter.
func DefaultResampler() *FilterResampler {
	return &FilterResampler{Filter: imaging.Lanczos}
}

func (r *FilterResampler) Resample(src image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return imaging.Clone(src), nil
	}
	return imaging.Resize(src, width, height, r.Filter), nil
}

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// FilterNames lists the names accepted by FilterByName.
func FilterNames() []string {
	return []string{"lanczos", "catmullrom", "mitchell", "linear", "box", "nearest"}
}

// FilterByName maps a case-insensitive filter name to an imaging filter.
func FilterByName(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown filter %q, want one of %s", name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}
