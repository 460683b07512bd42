// Package config loads the pipeline settings from defaults, an optional
// configuration file and CUBEBAKE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/ktx"
	"github.com/cubebake/cubebake/log"
	"github.com/spf13/viper"
)

// Environment variable prefix; CUBEBAKE_TOOLS_KTX overrides tools.ktx.
const EnvPrefix = "CUBEBAKE"

var ErrInvalid = errors.New("config: invalid setting")

type Tools struct {
	Renderer string `mapstructure:"renderer"`
	Image    string `mapstructure:"image"`
	Ktx      string `mapstructure:"ktx"`
}

type Bake struct {
	Scene  string `mapstructure:"scene"`
	Script string `mapstructure:"script"`
}

type Layout struct {
	RenderDir  string `mapstructure:"render_dir"`
	CroppedDir string `mapstructure:"cropped_dir"`
}

type Ktx struct {
	Format string `mapstructure:"format"`
	Zstd   int    `mapstructure:"zstd"`
	Levels int    `mapstructure:"levels"`
}

type Extract struct {
	Levels      int `mapstructure:"levels"`
	Concurrency int `mapstructure:"concurrency"`
}

type Output struct {
	Dir  string `mapstructure:"dir"`
	Name string `mapstructure:"name"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

// Config holds every tunable of a pipeline run.
type Config struct {
	Tools   Tools   `mapstructure:"tools"`
	Bake    Bake    `mapstructure:"bake"`
	Layout  Layout  `mapstructure:"layout"`
	Ktx     Ktx     `mapstructure:"ktx"`
	Extract Extract `mapstructure:"extract"`
	Output  Output  `mapstructure:"output"`
	Log     Log     `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	layout := cubemap.DefaultLayout()

	v.SetDefault("tools.renderer", "blender")
	v.SetDefault("tools.image", "oiiotool")
	v.SetDefault("tools.ktx", "ktx")
	v.SetDefault("bake.scene", "eq2cube.blend")
	v.SetDefault("bake.script", "bake_cubemap.py")
	v.SetDefault("layout.render_dir", layout.RenderDir)
	v.SetDefault("layout.cropped_dir", layout.CroppedDir)
	v.SetDefault("ktx.format", ktx.DefaultFormat)
	v.SetDefault("ktx.zstd", ktx.DefaultZstdLevel)
	v.SetDefault("ktx.levels", cubemap.PackedMipLevels)
	v.SetDefault("extract.levels", cubemap.MipLevels)
	v.SetDefault("extract.concurrency", 0)
	v.SetDefault("output.dir", "assets")
	v.SetDefault("output.name", "cubemap")
	v.SetDefault("log.level", "notice")
}

// Load builds the configuration. An empty path skips the file layer; the
// file format is picked from its extension.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise only fail deep inside
// an external tool.
func (c *Config) Validate() error {
	if err := ktx.ValidateFormat(c.Ktx.Format); err != nil {
		return fmt.Errorf("%w: ktx.format: %v", ErrInvalid, err)
	}
	if c.Ktx.Zstd < 1 || c.Ktx.Zstd > 22 {
		return fmt.Errorf("%w: ktx.zstd must be within 1..22; got %d", ErrInvalid, c.Ktx.Zstd)
	}
	if c.Extract.Levels < 1 {
		return fmt.Errorf("%w: extract.levels must be positive; got %d", ErrInvalid, c.Extract.Levels)
	}
	if c.Ktx.Levels < 1 || c.Ktx.Levels > c.Extract.Levels {
		return fmt.Errorf("%w: ktx.levels must be within 1..%d; got %d", ErrInvalid, c.Extract.Levels, c.Ktx.Levels)
	}
	if c.Extract.Concurrency < 0 {
		return fmt.Errorf("%w: extract.concurrency must not be negative; got %d", ErrInvalid, c.Extract.Concurrency)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	for key, val := range map[string]string{
		"tools.renderer": c.Tools.Renderer,
		"tools.image":    c.Tools.Image,
		"tools.ktx":      c.Tools.Ktx,
		"output.name":    c.Output.Name,
	} {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalid, key)
		}
	}
	return nil
}

// CubemapLayout returns the on-disk layout described by the configuration.
func (c *Config) CubemapLayout() cubemap.Layout {
	return cubemap.Layout{
		RenderDir:  c.Layout.RenderDir,
		CroppedDir: c.Layout.CroppedDir,
	}
}
