package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cubebake/cubebake/asset"
	"github.com/cubebake/cubebake/bake"
	"github.com/cubebake/cubebake/progress"
	"github.com/cubebake/cubebake/tool"
	"github.com/urfave/cli"
)

// Bake an environment map into specular and diffuse KTX2 cubemaps: render
// the composite images, crop their faces and pack the containers.
func Bake(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return exitError("missing environment map argument")
	}
	envMap := ctx.Args().First()

	req := bake.Request{SceneFile: cfg.Bake.Scene, EnvironmentMap: envMap}
	settings := [][2]string{
		{"Environment Map", envMap},
		{"Output Directory", cfg.Output.Dir},
		{"Base Name", cfg.Output.Name},
		{"Scene File", cfg.Bake.Scene},
		{"Pixel Format", cfg.Ktx.Format},
	}
	if ctx.IsSet("white-point") {
		wp := ctx.Float64("white-point")
		req.WhitePoint = &wp
		settings = append(settings, [2]string{"White Point Value", fmt.Sprintf("%g", wp)})
	}
	logger.Noticef("settings\n%s", settingsTable(settings))

	res, err := asset.NewResource(envMap)
	if err != nil {
		return exitError("environment map not found: %s (%v)", envMap, err)
	}
	req.EnvironmentMap, err = asset.Localize(res, filepath.Join(cfg.Layout.RenderDir, "envmap"))
	res.Close()
	if err != nil {
		return exitError("could not fetch environment map: %v", err)
	}

	if _, err = tool.LookPath(cfg.Tools.Renderer); err != nil {
		return exitError("%v", err)
	}

	for _, dir := range []string{cfg.Output.Dir, cfg.Layout.RenderDir, cfg.Layout.CroppedDir} {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return exitError("could not create directory %s: %v", dir, err)
		}
	}

	runCtx, cancel := interruptContext()
	defer cancel()

	p := newPipeline(cfg, tool.NewExecRunner())
	board := progress.NewBoard(os.Stdout).CaptureLogs()
	defer board.Close()

	// Step 1: bake the composite images
	bakeRow := board.AddSubtask("Baking cubemap...", float64(cfg.Extract.Levels+1))
	if err = p.baker.Bake(runCtx, req, bakeRow); err != nil {
		board.Close()
		return exitError("%v", err)
	}

	// Step 2: crop the faces, reporting into a single row of this board
	cropRow := board.AddSubtask("Cropping cubemap faces...", 1)
	report, err := p.coordinator.Run(runCtx, cropRow)
	if err != nil {
		board.Close()
		return exitError("error cropping cubemap faces: %v", err)
	}
	if !report.AllSucceeded() {
		board.Close()
		logger.Noticef("extraction results\n%s", levelTable(report))
		return exitError("error in cubemap cropping process")
	}

	// Step 3: pack the containers
	packRow := board.AddSubtask("Creating KTX files...", 1)
	ok, files := p.assembler.Assemble(runCtx, cfg.Layout.CroppedDir, cfg.Output.Name, cfg.Output.Dir, packRow)
	board.Close()
	if !ok {
		return exitError("error creating KTX files")
	}

	logger.Noticef("successfully created environment map in %s directory\n%s", cfg.Output.Dir, filesTable(files))
	return nil
}
