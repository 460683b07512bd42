package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/cubebake/cubebake/bake"
	"github.com/cubebake/cubebake/config"
	"github.com/cubebake/cubebake/extract"
	"github.com/cubebake/cubebake/ktx"
	"github.com/cubebake/cubebake/tool"
	"github.com/urfave/cli"
)

// The three pipeline stages wired from a configuration.
type pipeline struct {
	baker       *bake.Baker
	coordinator *extract.Coordinator
	assembler   *ktx.Assembler
}

func newPipeline(cfg *config.Config, runner tool.Runner) *pipeline {
	baker := bake.NewBaker(runner, cfg.Tools.Renderer, cfg.Bake.Script)
	baker.MipLevels = cfg.Extract.Levels

	processor := extract.NewProcessor(extract.NewExtractor(runner, cfg.Tools.Image), cfg.CubemapLayout())
	coordinator := extract.NewCoordinator(processor)
	coordinator.LevelCount = cfg.Extract.Levels
	coordinator.Concurrency = cfg.Extract.Concurrency

	assembler := ktx.NewAssembler(runner, cfg.Tools.Ktx)
	assembler.Format = cfg.Ktx.Format
	assembler.Zstd = cfg.Ktx.Zstd
	assembler.SpecularLevels = cfg.Ktx.Levels

	return &pipeline{
		baker:       baker,
		coordinator: coordinator,
		assembler:   assembler,
	}
}

// Load the configuration named by the global --config flag, apply the
// command flags that override it and set up logging.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return nil, exitError("%v", err)
	}

	overrides := map[string]*string{
		"output": &cfg.Output.Dir,
		"name":   &cfg.Output.Name,
		"scene":  &cfg.Bake.Scene,
		"script": &cfg.Bake.Script,
	}
	for flag, dst := range overrides {
		if ctx.IsSet(flag) {
			*dst = ctx.String(flag)
		}
	}
	if ctx.IsSet("concurrency") {
		cfg.Extract.Concurrency = ctx.Int("concurrency")
	}

	if err = cfg.Validate(); err != nil {
		return nil, exitError("%v", err)
	}

	setupLogging(ctx, cfg)
	return cfg, nil
}

// A context cancelled on interrupt so that running tools are torn down.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func exitError(format string, args ...interface{}) error {
	logger.Errorf(format, args...)
	return cli.NewExitError("", 1)
}
