package cmd

import (
	"os"

	"github.com/cubebake/cubebake/progress"
	"github.com/cubebake/cubebake/tool"
	"github.com/urfave/cli"
)

// Pack previously cropped faces into KTX2 containers.
func Pack(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	inputDir := cfg.Layout.CroppedDir
	if ctx.IsSet("input") {
		inputDir = ctx.String("input")
	}

	runCtx, cancel := interruptContext()
	defer cancel()

	p := newPipeline(cfg, tool.NewExecRunner())
	board := progress.NewBoard(os.Stdout).CaptureLogs()
	ok, files := p.assembler.Assemble(runCtx, inputDir, cfg.Output.Name, cfg.Output.Dir, board.AddSubtask("Creating KTX files...", 1))
	board.Close()

	if !ok {
		return exitError("error creating KTX files")
	}

	logger.Noticef("created KTX files\n%s", filesTable(files))
	return nil
}
