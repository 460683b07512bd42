// Package extract cuts the six cubemap faces out of every composite render
// and coordinates that work across all mip levels and the diffuse cubemap.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/log"
	"github.com/cubebake/cubebake/tool"
)

var logger = log.New("extract")

// FaceExtractor is implemented by anything able to cut one face out of a
// composite image.
type FaceExtractor interface {
	ExtractFace(ctx context.Context, inputPath, outputPath string, rect cubemap.Rect) Outcome
}

// Extractor drives an oiiotool-compatible image tool. It holds no mutable
// state, so one instance can serve any number of concurrent extractions
// as long as their output paths differ.
type Extractor struct {
	Runner tool.Runner

	// Image tool executable.
	ImageTool string
}

// NewExtractor creates an extractor using the given image tool.
func NewExtractor(runner tool.Runner, imageTool string) *Extractor {
	return &Extractor{Runner: runner, ImageTool: imageTool}
}

// ExtractFace cuts rect out of inputPath into outputPath, overwriting any
// existing file. When the written face does not report rect.Size square
// dimensions a single re-encode pass is attempted; its failure is logged
// and reported as OutcomeCorrectiveReencodeFailed.
func (e *Extractor) ExtractFace(ctx context.Context, inputPath, outputPath string, rect cubemap.Rect) Outcome {
	x1, y1 := rect.Max()
	cut := tool.New(e.ImageTool,
		inputPath,
		"--cut", fmt.Sprintf("%d,%d,%d,%d", rect.X, rect.Y, x1, y1),
		"-o", outputPath,
	)

	res, err := e.Runner.Run(ctx, cut)
	if err != nil {
		logger.Errorf("exception processing %s: %v", inputPath, err)
		return OutcomeInvocationFailed
	}
	if !res.Success() {
		logger.Errorf("error processing %s (exit %d): %s", inputPath, res.ExitCode, trimmed(res.Stderr))
		return OutcomeCutFailed
	}

	if e.hasSize(ctx, outputPath, rect.Size) {
		return OutcomeExtracted
	}

	logger.Debugf("%s does not report %dx%d; re-encoding", outputPath, rect.Size, rect.Size)
	res, err = e.Runner.Run(ctx, tool.New(e.ImageTool, outputPath, "-o", outputPath))
	switch {
	case err != nil:
		logger.Warningf("%s: %s: %v", OutcomeCorrectiveReencodeFailed, outputPath, err)
		return OutcomeCorrectiveReencodeFailed
	case !res.Success():
		logger.Warningf("%s: %s: %s", OutcomeCorrectiveReencodeFailed, outputPath, trimmed(res.Stderr))
		return OutcomeCorrectiveReencodeFailed
	}
	return OutcomeCorrected
}

// Query the image tool for the dimensions of path. A failed query counts as
// a mismatch.
func (e *Extractor) hasSize(ctx context.Context, path string, size int) bool {
	res, err := e.Runner.Run(ctx, tool.New(e.ImageTool, "--info", "-v", path))
	if err != nil || res == nil {
		return false
	}
	return strings.Contains(string(res.Stdout), fmt.Sprintf("%d x %d", size, size))
}

func trimmed(b []byte) string {
	return string(bytes.TrimSpace(b))
}
