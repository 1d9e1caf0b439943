// Package options holds the previewer configuration. Values come from
// Default, then an optional YAML file, then command-line flags.
package options

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/richinsley/goshaderview/frame"
	"gopkg.in/yaml.v3"
)

type ShaderOptions struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Dir         string        `yaml:"dir"`
	Extensions  []string      `yaml:"extensions"`
	FrameDelay  time.Duration `yaml:"frame_delay"`
	Translate   bool          `yaml:"translate"`
	Watch       bool          `yaml:"watch"`
	Verbose     bool          `yaml:"verbose"`
	PatternSize int           `yaml:"pattern_size"`
	// Shader is the file to open first; empty picks the first file of Dir.
	Shader string `yaml:"shader"`
}

// Default is a 512x512 window cycling *.glsl
// in the working directory.
func Default() ShaderOptions {
	return ShaderOptions{
		Width:       512,
		Height:      512,
		Dir:         ".",
		Extensions:  []string{".glsl"},
		FrameDelay:  10 * time.Millisecond,
		Translate:   true,
		Watch:       true,
		PatternSize: 256,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (ShaderOptions, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return opts, nil
}

// Validate rejects values the previewer cannot run with.
func (o *ShaderOptions) Validate() error {
	var errs []error
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", o.Width, o.Height))
	}
	if len(o.Extensions) == 0 {
		errs = append(errs, errors.New("at least one shader extension is required"))
	}
	if o.FrameDelay < 0 || o.FrameDelay > frame.MaxTickDelay {
		errs = append(errs, fmt.Errorf("frame delay must be within [0, %s], got %s", frame.MaxTickDelay, o.FrameDelay))
	}
	if o.PatternSize <= 0 {
		errs = append(errs, fmt.Errorf("pattern size must be positive, got %d", o.PatternSize))
	}
	return errors.Join(errs...)
}
