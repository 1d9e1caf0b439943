package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/richinsley/goshaderview/cycler"
	"github.com/richinsley/goshaderview/frame"
	"github.com/richinsley/goshaderview/glbackend"
	"github.com/richinsley/goshaderview/glfwcontext"
	"github.com/richinsley/goshaderview/inputs"
	"github.com/richinsley/goshaderview/logging"
	"github.com/richinsley/goshaderview/options"
	"github.com/richinsley/goshaderview/program"
	"github.com/richinsley/goshaderview/renderer"
	"github.com/richinsley/goshaderview/shader"
	"github.com/richinsley/goshaderview/translator"
	"github.com/richinsley/goshaderview/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const reloadDebounce = 150 * time.Millisecond

var (
	configPath  string
	dir         string
	width       int
	height      int
	extensions  []string
	frameDelay  time.Duration
	noTranslate bool
	noWatch     bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "goshaderview [shader-file]",
	Short: "Live preview of Shadertoy-style fragment shaders",
	Long: `goshaderview renders a fragment shader on a full-window quad and feeds it
iResolution, iTime and iMouse (or resolution, time and mouse).

Keys:
  Esc, Q                 quit
  F                      toggle fullscreen
  Right, N, PageDown     next shader in the directory
  Left, P, PageUp        previous shader in the directory

Without a shader file the first file of --dir is opened.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVar(&dir, "dir", "", "directory to cycle through")
	flags.IntVar(&width, "width", 0, "initial window width")
	flags.IntVar(&height, "height", 0, "initial window height")
	flags.StringSliceVar(&extensions, "ext", nil, "shader file extensions")
	flags.DurationVar(&frameDelay, "delay", 0, "pause between frames (at most 50ms)")
	flags.BoolVar(&noTranslate, "no-translate", false, "pass sources to the driver untranslated")
	flags.BoolVar(&noWatch, "no-watch", false, "do not reload the current file when it is saved")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadOptions layers flags set on the command line over the config file
// over the defaults.
func loadOptions(cmd *cobra.Command, args []string) (options.ShaderOptions, error) {
	opts := options.Default()
	if configPath != "" {
		var err error
		if opts, err = options.Load(configPath); err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		opts.Dir = dir
	}
	if flags.Changed("width") {
		opts.Width = width
	}
	if flags.Changed("height") {
		opts.Height = height
	}
	if flags.Changed("ext") {
		opts.Extensions = extensions
	}
	if flags.Changed("delay") {
		opts.FrameDelay = frameDelay
	}
	if noTranslate {
		opts.Translate = false
	}
	if noWatch {
		opts.Watch = false
	}
	if verbose {
		opts.Verbose = true
	}
	if len(args) > 0 {
		opts.Shader = args[0]
	}
	return opts, opts.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args)
	if err != nil {
		return err
	}

	logger, err := logging.New(opts.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	window, err := glfwcontext.New(&opts, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Shutdown()
	window.MakeCurrent()

	backend, err := glbackend.New()
	if err != nil {
		return err
	}
	defer backend.Destroy()
	glVersion, glslVersion := backend.Version()
	logger.Info("opengl ready", zap.String("version", glVersion), zap.String("glsl", glslVersion))

	compilerOpts := []program.Option{program.WithLogger(logger)}
	if opts.Translate {
		t, err := translator.New(ctx, false)
		if err != nil {
			return err
		}
		compilerOpts = append(compilerOpts, program.WithTranslator(t))
	} else {
		compilerOpts = append(compilerOpts, program.WithAugmenter(shader.Augmenter{Preamble: shader.PreambleGL}))
	}

	r := renderer.NewRenderer(
		backend,
		program.NewCompiler(backend, compilerOpts...),
		cycler.New(opts.Dir, opts.Extensions...),
		frame.NewDriver(frame.NewClock(), opts.FrameDelay),
		logger,
	)
	r.SetContext(window)
	window.SetHandler(r)
	defer r.Shutdown()

	channel, err := inputs.NewPatternChannel(backend, opts.PatternSize, opts.PatternSize)
	if err != nil {
		return err
	}
	r.SetChannel(channel)

	if opts.Watch {
		w, err := watcher.New(reloadDebounce, logger)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			w.Start(ctx)
			defer w.Stop()
			r.SetWatcher(w)
		}
	}

	r.Start(opts.Shader)
	return r.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "goshaderview:", err)
		os.Exit(1)
	}
}
