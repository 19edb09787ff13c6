package canvasfit

import (
	"fmt"
	"image"
	"math"
)

// Layout is the placement of a source image on a preset canvas.
type Layout struct {
	Source image.Point
	Canvas image.Point
	Scaled image.Point
	Offset image.Point
	Scale  float64
}

// ComputeLayout scales a srcW x srcH image by the largest factor that keeps
// it inside the canvas of p and centers it. Scaled sizes are rounded half up
// and clamped to [1, canvas]; offsets are rounded down.
func ComputeLayout(srcW, srcH int, p Preset) (Layout, error) {
	if srcW <= 0 || srcH <= 0 {
		return Layout{}, &Error{
			Kind: ErrEmptySource,
			Op:   "layout",
			Err:  fmt.Errorf("source is %dx%d", srcW, srcH),
		}
	}

	sx := float64(p.Width) / float64(srcW)
	sy := float64(p.Height) / float64(srcH)
	s := math.Min(sx, sy)

	w := clamp(roundHalfUp(float64(srcW)*s), 1, p.Width)
	h := clamp(roundHalfUp(float64(srcH)*s), 1, p.Height)

	return Layout{
		Source: image.Pt(srcW, srcH),
		Canvas: p.Size(),
		Scaled: image.Pt(w, h),
		Offset: image.Pt((p.Width-w)/2, (p.Height-h)/2),
		Scale:  s,
	}, nil
}

// Rect is the region of the canvas covered by the scaled image.
func (l Layout) Rect() image.Rectangle {
	return image.Rectangle{Min: l.Offset, Max: l.Offset.Add(l.Scaled)}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
