package cmd

import (
	"os"

	"github.com/cubebake/cubebake/tool"
	"github.com/urfave/cli"
)

// Crop the faces of previously baked composite images.
func Crop(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	runCtx, cancel := interruptContext()
	defer cancel()

	p := newPipeline(cfg, tool.NewExecRunner())
	report, err := p.coordinator.RunStandalone(runCtx, os.Stdout)
	if err != nil {
		return exitError("%v", err)
	}

	logger.Noticef("extraction results\n%s", levelTable(report))
	if !report.AllSucceeded() {
		return exitError("cubemap extraction failed for %v", report.Failed())
	}
	return nil
}
