package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/fatih/color"

	"github.com/szxp/canvasfit"
)

var (
	cSucc  = color.New(color.FgGreen, color.Bold).SprintFunc()
	cWarn  = color.New(color.FgYellow, color.Bold).SprintFunc()
	cErr   = color.New(color.FgRed, color.Bold).SprintFunc()
	cLabel = color.New(color.FgHiCyan).SprintFunc()
)

// presenter is what the user sees. Logs go through hclog instead.
type presenter struct {
	out io.Writer
	err io.Writer
}

func (p presenter) success(res canvasfit.Result) {
	fmt.Fprintln(p.out, cSucc("Image successfully resized!"))
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "%s %s\n", cLabel("Saved:"), res.Path)
	fmt.Fprintf(p.out, "%s %d×%dpx\n", cLabel("Size:"), res.Preset.Width, res.Preset.Height)
}

func (p presenter) warn(format string, v ...interface{}) {
	fmt.Fprintf(p.err, "%s %s\n", cWarn("Warning:"), fmt.Sprintf(format, v...))
}

func (p presenter) failure(err error) {
	fmt.Fprintf(p.err, "%s %s\n", cErr(errorTitle(err)+":"), errorMessage(err))
}

func (p presenter) presets(def string) {
	for _, pr := range canvasfit.Presets() {
		mark := " "
		if pr.Name == def {
			mark = "*"
		}
		fmt.Fprintf(p.out, "%s %-10s %s\n", mark, pr.Name, cLabel(pr.String()))
	}
}

// errorMessage names the missing file instead of the decode failure it is
// reported as.
func errorMessage(err error) string {
	var e *canvasfit.Error
	if inputMissing(err) && errors.As(err, &e) && e.Path != "" {
		return "could not find input file: " + e.Path
	}
	return err.Error()
}

func inputMissing(err error) bool {
	return errors.Is(err, canvasfit.ErrDecode) && errors.Is(err, fs.ErrNotExist)
}

func errorTitle(err error) string {
	switch {
	case inputMissing(err):
		return "Input not found"
	case errors.Is(err, canvasfit.ErrInvalidPreset):
		return "Invalid format"
	case errors.Is(err, canvasfit.ErrDecode):
		return "Cannot read image"
	case errors.Is(err, canvasfit.ErrEmptySource):
		return "Empty image"
	case errors.Is(err, canvasfit.ErrWrite):
		return "Cannot save image"
	}
	return "Error"
}
