package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/szxp/canvasfit"
	"github.com/szxp/canvasfit/imagemagick"
)

// version will be set while building
var version string

// buildTime will be set while building
var buildTime string

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	pr := presenter{out: stdout, err: stderr}
	cmd := newRootCmd(pr, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		pr.failure(err)
		return 1
	}
	return 0
}

type options struct {
	configPath string
	preset     string
	filter     string
	resampler  string
	autoOrient bool
	logLevel   string
}

func newRootCmd(pr presenter, logOut io.Writer) *cobra.Command {
	var o options

	root := &cobra.Command{
		Use:   "canvasfit [flags] <input> [output]",
		Short: "Fit an image onto a transparent Instagram canvas",
		Long: "canvasfit scales an image to fit one of the Square (1080×1080), Portrait (1080×1350)\n" +
			"or Landscape (1080×606) canvases, centers it and saves it as a transparent PNG.\n" +
			"The output defaults to the input path with a .png extension.",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := o.config(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(conf.LogLevel, logOut)

			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return initialize(logger, conf, pr, args[0], out)
		},
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	root.Flags().StringVarP(&o.preset, "preset", "p", canvasfit.DefaultPresetName, "canvas format: Square, Portrait or Landscape")
	root.Flags().StringVar(&o.filter, "filter", "lanczos", "resampling filter: "+strings.Join(canvasfit.FilterNames(), ", "))
	root.PersistentFlags().StringVar(&o.resampler, "resampler", resamplerImaging, "resampler backend: imaging or imagemagick")
	root.Flags().BoolVar(&o.autoOrient, "auto-orient", false, "apply the EXIF orientation of the input")
	root.Flags().StringVar(&o.logLevel, "log-level", "WARN", "log level: TRACE, DEBUG, INFO, WARN, ERROR")

	root.AddCommand(newPresetsCmd(pr), newVersionCmd(pr, &o))
	return root
}

func newPresetsCmd(pr presenter) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List canvas formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			pr.presets(canvasfit.DefaultPresetName)
		},
	}
}

func newVersionCmd(pr presenter, o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version
			if v == "" {
				v = "dev"
			}
			fmt.Fprintf(pr.out, "canvasfit %s", v)
			if buildTime != "" {
				fmt.Fprintf(pr.out, " (built %s)", buildTime)
			}
			fmt.Fprintln(pr.out)

			conf, err := o.config(cmd)
			if err != nil {
				return err
			}
			if conf.Resampler == resamplerImageMagick {
				ver, err := imagemagick.Version(conf.ImageMagick.Binary)
				if err != nil {
					return fmt.Errorf("imagemagick: %w", err)
				}
				fmt.Fprintln(pr.out, firstLine(ver))
			}
			return nil
		},
	}
}

// config loads the config file and applies the flags the user set.
func (o *options) config(cmd *cobra.Command) (Config, error) {
	conf, err := LoadConfig(o.configPath)
	if err != nil {
		return conf, err
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		conf.Preset = o.preset
	}
	if flags.Changed("filter") {
		conf.Filter = o.filter
	}
	if flags.Changed("resampler") {
		conf.Resampler = o.resampler
	}
	if flags.Changed("auto-orient") {
		conf.AutoOrient = o.autoOrient
	}
	if flags.Changed("log-level") {
		conf.LogLevel = o.logLevel
	}

	return conf, conf.Validate()
}

func newLogger(level string, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            "canvasfit",
		Output:          w,
		Level:           hclog.LevelFromString(level),
		IncludeLocation: true,
	}).With("appVersion", version)
}

func initialize(logger hclog.Logger, conf Config, pr presenter, in, out string) error {
	logger.Debug("Build info", "time", buildTime)

	p, err := canvasfit.Lookup(conf.Preset)
	if err != nil {
		return err
	}

	if out == "" {
		out = canvasfit.SuggestOutputPath(in, p)
		logger.Debug("Output path not given", "suggested", out)
	}
	if fixed, changed := canvasfit.EnsurePNGExt(out); changed {
		pr.warn("%s cannot keep transparency, saving as %s", out, fixed)
		out = fixed
	}

	c, err := conf.newCompositor(logger)
	if err != nil {
		return err
	}

	logger.Info("Resize", "src", in, "dst", out, "preset", p.Name, "resampler", conf.Resampler)
	res, err := c.ResizeFile(out, in, p)
	if err != nil {
		logger.Debug("Failed to resize", "src", in, "dst", out, "error", err)
		return err
	}

	pr.success(res)
	return nil
}

func firstLine(s string) string {
	sc := bufio.NewScanner(strings.NewReader(s))
	if sc.Scan() {
		return sc.Text()
	}
	return ""
}
