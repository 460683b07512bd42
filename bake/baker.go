// Package bake runs the external renderer that produces the composite
// cubemap images and follows its progress.
package bake

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/log"
	"github.com/cubebake/cubebake/progress"
	"github.com/cubebake/cubebake/tool"
)

var logger = log.New("bake")

// Request describes a single bake.
type Request struct {
	// Scene file loaded by the renderer.
	SceneFile string

	// Equirectangular environment map to bake.
	EnvironmentMap string

	// Optional white point override.
	WhitePoint *float64
}

// Baker invokes the renderer.
type Baker struct {
	Runner tool.Runner

	// Renderer executable.
	Renderer string

	// Optional bake script. When set, the renderer is invoked Blender-style
	// as "-b <scene> --python <script> -- <args>".
	Script string

	// Number of specular mip levels the renderer bakes.
	MipLevels int
}

// NewBaker creates a baker for the given renderer and optional script.
func NewBaker(runner tool.Runner, renderer, script string) *Baker {
	return &Baker{
		Runner:    runner,
		Renderer:  renderer,
		Script:    script,
		MipLevels: cubemap.MipLevels,
	}
}

// Command builds the renderer invocation for req.
func (b *Baker) Command(req Request) tool.Command {
	args := []string{req.EnvironmentMap}
	if req.WhitePoint != nil {
		args = append(args, strconv.FormatFloat(*req.WhitePoint, 'f', -1, 64))
	}

	if b.Script == "" {
		return tool.New(b.Renderer, append([]string{req.SceneFile}, args...)...)
	}

	prefix := []string{"-b", req.SceneFile, "--python", b.Script, "--"}
	return tool.New(b.Renderer, append(prefix, args...)...)
}

// Bake runs the renderer to completion. Its output is streamed through a
// Parser that advances sink; error lines are logged. The bake fails only
// when the renderer cannot be started or exits with a non-zero status.
func (b *Baker) Bake(ctx context.Context, req Request, sink progress.Sink) error {
	switch {
	case req.SceneFile == "":
		return ErrMissingScene
	case req.EnvironmentMap == "":
		return ErrMissingEnvMap
	}

	cmd := b.Command(req)
	logger.Noticef("running: %s", cmd)

	parser := NewParser(sink, b.MipLevels)
	exitCode, err := b.Runner.Stream(ctx, cmd, func(line string) {
		switch parser.Feed(line) {
		case LineError:
			logger.Error(line)
		case LineIgnored:
			logger.Debug(line)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRendererFailed, err)
	}
	if exitCode != 0 {
		return fmt.Errorf("%w: exit code %d", ErrBakeFailed, exitCode)
	}

	logger.Infof("bake finished; %d/%d steps observed", parser.Completed(), parser.Steps())
	return nil
}
