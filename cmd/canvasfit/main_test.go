package main

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szxp/canvasfit"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeSource(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xcc
	}
	path := filepath.Join(dir, "source.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
	return path
}

func pngSize(t *testing.T, path string) image.Point {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return image.Pt(cfg.Width, cfg.Height)
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_DefaultPresetAndOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 2000, 1000)

	code, stdout, stderr := execute(src)
	require.Equal(t, 0, code, stderr)

	out := filepath.Join(dir, "source.png")
	assert.Equal(t, image.Pt(1080, 1350), pngSize(t, out))
	assert.Contains(t, stdout, "Image successfully resized!")
	assert.Contains(t, stdout, "Saved: "+out)
	assert.Contains(t, stdout, "Size: 1080×1350px")
}

func TestRun_ExplicitPresetAndOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 300, 500)
	out := filepath.Join(dir, "square.png")

	code, _, stderr := execute("--preset", "Square", src, out)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, image.Pt(1080, 1080), pngSize(t, out))
}

func TestRun_AppendsPNGExtension(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 100, 100)

	code, _, stderr := execute("-p", "Landscape", src, filepath.Join(dir, "out.jpg"))
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "cannot keep transparency")
	assert.Equal(t, image.Pt(1080, 606), pngSize(t, filepath.Join(dir, "out.jpg.png")))

	_, err := os.Stat(filepath.Join(dir, "out.jpg"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRun_ConfigAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 100, 100)
	conf := writeConfig(t, "preset = \"Landscape\"\nfilter = \"linear\"\n")

	out := filepath.Join(dir, "a.png")
	code, _, stderr := execute("--config", conf, src, out)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, image.Pt(1080, 606), pngSize(t, out))

	out = filepath.Join(dir, "b.png")
	code, _, stderr = execute("--config", conf, "--preset", "Square", src, out)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, image.Pt(1080, 1080), pngSize(t, out))
}

func TestRun_InvalidPreset(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 100, 100)
	out := filepath.Join(dir, "out.png")

	code, _, stderr := execute("--preset", "Story", src, out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Invalid format")

	_, err := os.Stat(out)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")

	missing := filepath.Join(dir, "nope.jpg")

	code, _, stderr := execute(missing, out)
	assert.Equal(t, 1, code)
	assert.Equal(t, "Input not found: could not find input file: "+missing+"\n", stderr)

	_, err := os.Stat(out)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRun_NoArgs(t *testing.T) {
	code, _, stderr := execute()
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error")
}

func TestRun_Presets(t *testing.T) {
	code, stdout, _ := execute("presets")
	require.Equal(t, 0, code)
	for _, p := range canvasfit.Presets() {
		assert.Contains(t, stdout, p.String())
	}
	assert.Contains(t, stdout, "* Portrait")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := execute("version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "canvasfit dev")
}

func TestRun_VersionResamplerFlag(t *testing.T) {
	code, stdout, stderr := execute("version", "--resampler", "imaging")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "canvasfit dev")

	code, _, stderr = execute("version", "--resampler", "gpu")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown resampler")
}

func TestRun_FailureReportedOnce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0644))

	code, _, stderr := execute(src, filepath.Join(dir, "out.png"))
	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr, "[ERROR]")
	assert.Equal(t, 1, strings.Count(stderr, "\n"), stderr)
	assert.True(t, strings.HasPrefix(stderr, "Cannot read image:"), stderr)
}

func TestErrorTitle(t *testing.T) {
	assert.Equal(t, "Invalid format", errorTitle(&canvasfit.Error{Kind: canvasfit.ErrInvalidPreset, Op: "lookup"}))
	assert.Equal(t, "Cannot read image", errorTitle(&canvasfit.Error{Kind: canvasfit.ErrDecode, Op: "read"}))
	assert.Equal(t, "Empty image", errorTitle(&canvasfit.Error{Kind: canvasfit.ErrEmptySource, Op: "layout"}))
	assert.Equal(t, "Cannot save image", errorTitle(&canvasfit.Error{Kind: canvasfit.ErrWrite, Op: "write"}))
	assert.Equal(t, "Error", errorTitle(errors.New("other")))

	missing := &canvasfit.Error{Kind: canvasfit.ErrDecode, Op: "read", Path: "in.jpg", Err: fs.ErrNotExist}
	assert.Equal(t, "Input not found", errorTitle(missing))
	assert.Equal(t, "could not find input file: in.jpg", errorMessage(missing))
	assert.Equal(t, "other", errorMessage(errors.New("other")))

	// a missing config file is not a missing input
	assert.Equal(t, "Error", errorTitle(fs.ErrNotExist))
}

func TestPresenter_Success(t *testing.T) {
	var out bytes.Buffer
	pr := presenter{out: &out, err: &out}
	pr.success(canvasfit.Result{Path: "x.png", Preset: canvasfit.Square})
	assert.Contains(t, out.String(), "Saved: x.png")
	assert.Contains(t, out.String(), "Size: 1080×1080px")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Version: ImageMagick 6.9", firstLine("Version: ImageMagick 6.9\nCopyright"))
	assert.Equal(t, "", firstLine(""))
}
