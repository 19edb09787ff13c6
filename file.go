package canvasfit

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Decoders beyond the ones imaging registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Result describes a written canvas.
type Result struct {
	Path   string
	Preset Preset
	Layout Layout
	Bytes  int64
}

// ResizeFile reads the image at src, fits it onto the canvas of p and writes
// the result to dst as PNG. dst is only touched once the canvas has been
// fully composed and encoded, and is replaced atomically.
func (c *Compositor) ResizeFile(dst, src string, p Preset) (Result, error) {
	if dst == "" || src == "" {
		return Result{}, fmt.Errorf("both input and output paths are required")
	}

	img, err := c.decodeFile(src)
	if err != nil {
		return Result{}, err
	}

	canvas, l, err := c.compose(img, p)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = src
		}
		return Result{}, err
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, canvas); err != nil {
		return Result{}, &Error{Kind: ErrWrite, Op: "encode", Path: dst, Err: err}
	}
	n := int64(buf.Len())

	c.conf.Logger.Debug("Write file", "path", dst, "bytes", n)
	if err := atomicWrite(dst, &buf); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			err = fmt.Errorf("permission denied when saving: %w", err)
		}
		return Result{}, &Error{Kind: ErrWrite, Op: "write", Path: dst, Err: err}
	}

	c.conf.Logger.Info("Resized", "src", src, "dst", dst, "preset", p.Name, "scaled", l.Scaled, "offset", l.Offset)
	return Result{Path: dst, Preset: p, Layout: l, Bytes: n}, nil
}

func (c *Compositor) decodeFile(path string) (image.Image, error) {
	c.conf.Logger.Debug("Open", "path", path)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("could not find input file: %w", err)
		}
		return nil, &Error{Kind: ErrDecode, Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(c.conf.AutoOrient))
	if err != nil {
		return nil, &Error{Kind: ErrDecode, Op: "decode", Path: path, Err: err}
	}
	return img, nil
}

// atomicWrite writes data to path through a temp file in the same directory.
func atomicWrite(path string, data io.Reader) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".canvasfit-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp to final: %w", err)
	}
	return nil
}

// SuggestOutputPath returns src with its extension replaced by .png. When
// that would overwrite src, the lowercase preset name is appended. Paths
// differing only in case count as the same file.
func SuggestOutputPath(src string, p Preset) string {
	base := strings.TrimSuffix(src, filepath.Ext(src))
	out := base + ".png"
	if strings.EqualFold(out, src) {
		out = base + "-" + strings.ToLower(p.Name) + ".png"
	}
	return out
}

// EnsurePNGExt appends .png to path unless it already ends with it. The
// bool reports whether the path was changed.
func EnsurePNGExt(path string) (string, bool) {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return path, false
	}
	return path + ".png", true
}
