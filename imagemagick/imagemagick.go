package imagemagick

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// DefaultBinary is the ImageMagick command used when Binary is empty.
const DefaultBinary = "convert"

// Resampler scales images by running ImageMagick.
type Resampler struct {
	Binary string
	Logger hclog.Logger
}

func (r *Resampler) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

func (r *Resampler) logger() hclog.Logger {
	if r.Logger == nil {
		return hclog.NewNullLogger()
	}
	return r.Logger
}

func (r *Resampler) Resample(src image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	dir, err := os.MkdirTemp("", "canvasfit-magick-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	if err := writePNG(in, src); err != nil {
		return nil, fmt.Errorf("Failed to write source: %w", err)
	}

	args := []string{
		// use only the first frame
		in + "[0]",

		"-filter", "Lanczos",

		// '!' ignores the aspect ratio, the caller already computed it
		"-resize", fmt.Sprintf("%dx%d!", width, height),

		// force 8-bit RGBA output so alpha survives
		"PNG32:" + out,
	}

	r.logger().Debug("Run", "binary", r.binary(), "args", args)
	_, err = exec.Command(r.binary(), args...).Output()
	if err != nil {
		return nil, fmt.Errorf("Failed to resize image: %w", err)
	}

	f, err := os.Open(out)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Failed to decode resized image: %w", err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Available reports whether the ImageMagick binary can be found on PATH.
func Available(binary string) bool {
	if binary == "" {
		binary = DefaultBinary
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

func Version(binary string) (string, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	ver, err := exec.Command(binary, "-version").Output()
	if err != nil {
		return "", err
	}
	return string(ver), nil
}
