package canvasfit

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"
)

type CompositorConfig struct {
	Resampler  Resampler
	AutoOrient bool
	Logger     hclog.Logger
}

// Compositor fits images onto preset canvases. It holds no per-call state
// and may be reused.
type Compositor struct {
	conf *CompositorConfig
}

func NewCompositor(conf CompositorConfig) *Compositor {
	if conf.Logger == nil {
		conf.Logger = hclog.NewNullLogger()
	}
	if conf.Resampler == nil {
		conf.Resampler = DefaultResampler()
	}
	return &Compositor{conf: &conf}
}

var defaultCompositor = NewCompositor(CompositorConfig{})

// ResizeToCanvas composes src onto the canvas of p with the default
// Lanczos resampler.
func ResizeToCanvas(src image.Image, p Preset) (*image.NRGBA, error) {
	return defaultCompositor.Compose(src, p)
}

// Compose returns a new transparent canvas of exactly p.Width x p.Height
// with src scaled to fit inside it and centered.
func (c *Compositor) Compose(src image.Image, p Preset) (*image.NRGBA, error) {
	canvas, _, err := c.compose(src, p)
	return canvas, err
}

func (c *Compositor) compose(src image.Image, p Preset) (*image.NRGBA, Layout, error) {
	if src == nil {
		return nil, Layout{}, &Error{Kind: ErrDecode, Op: "compose", Err: fmt.Errorf("nil image")}
	}
	b := src.Bounds()
	l, err := ComputeLayout(b.Dx(), b.Dy(), p)
	if err != nil {
		return nil, Layout{}, err
	}

	c.conf.Logger.Debug("Compose",
		"preset", p.Name,
		"source", l.Source,
		"scaled", l.Scaled,
		"offset", l.Offset,
		"scale", l.Scale,
	)

	// Sources without alpha become fully opaque.
	rgba := imaging.Clone(src)

	scaled, err := c.conf.Resampler.Resample(rgba, l.Scaled.X, l.Scaled.Y)
	if err != nil {
		return nil, Layout{}, fmt.Errorf("resample to %dx%d: %w", l.Scaled.X, l.Scaled.Y, err)
	}
	if sb := scaled.Bounds(); sb.Dx() != l.Scaled.X || sb.Dy() != l.Scaled.Y {
		return nil, Layout{}, fmt.Errorf("resampler returned %dx%d, want %dx%d", sb.Dx(), sb.Dy(), l.Scaled.X, l.Scaled.Y)
	}

	canvas := imaging.New(p.Width, p.Height, color.NRGBA{})
	canvas = imaging.Overlay(canvas, scaled, l.Offset, 1.0)
	return canvas, l, nil
}
