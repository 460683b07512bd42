package extract

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/progress"
	"golang.org/x/sync/errgroup"
)

// LevelResult is the outcome of extracting the six faces of one level.
type LevelResult struct {
	Level    Level
	FaceSize int

	// Per-face outcomes, indexed in cubemap.Faces order.
	Outcomes [6]Outcome

	// Set when the level failed before any face was attempted.
	Err error

	Duration time.Duration
}

// Ok reports whether all six faces were produced.
func (r LevelResult) Ok() bool {
	if r.Err != nil {
		return false
	}
	for _, o := range r.Outcomes {
		if !o.Ok() {
			return false
		}
	}
	return true
}

// Count returns the number of faces that ended with the given outcome.
func (r LevelResult) Count(outcome Outcome) int {
	n := 0
	for _, o := range r.Outcomes {
		if o == outcome {
			n++
		}
	}
	return n
}

// Processor extracts the faces of individual levels.
type Processor struct {
	Extractor FaceExtractor
	Layout    cubemap.Layout
}

// NewProcessor creates a processor reading and writing below layout.
func NewProcessor(extractor FaceExtractor, layout cubemap.Layout) *Processor {
	return &Processor{Extractor: extractor, Layout: layout}
}

// ProcessMipLevel extracts the six faces of a specular mip level.
func (p *Processor) ProcessMipLevel(ctx context.Context, mip int, sink progress.Sink) LevelResult {
	return p.ProcessLevel(ctx, Mip(mip), sink)
}

// ProcessDiffuse extracts the six faces of the diffuse cubemap.
func (p *Processor) ProcessDiffuse(ctx context.Context, sink progress.Sink) LevelResult {
	return p.ProcessLevel(ctx, Diffuse, sink)
}

// ProcessLevel fails without invoking the image tool when the composite
// image is missing. Otherwise all six faces are extracted concurrently and
// the call returns once every extraction has finished, whatever their
// individual outcome.
func (p *Processor) ProcessLevel(ctx context.Context, level Level, sink progress.Sink) (result LevelResult) {
	start := time.Now()
	result = LevelResult{Level: level, FaceSize: level.FaceSize()}
	defer func() {
		result.Duration = time.Since(start)
	}()

	inputPath := level.CompositePath(p.Layout)
	outputDir := level.OutputDir(p.Layout)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		result.Err = fmt.Errorf("%w: %s: %v", ErrOutputDir, outputDir, err)
		logger.Error(result.Err)
		return result
	}

	if _, err := os.Stat(inputPath); err != nil {
		result.Err = fmt.Errorf("%w: %s", ErrMissingComposite, inputPath)
		logger.Errorf("input file not found: %s", inputPath)
		return result
	}

	faces := sink.AddSubtask(level.Label(), float64(len(cubemap.Faces)))

	var g errgroup.Group
	for i, face := range cubemap.Faces {
		g.Go(func() error {
			rect := cubemap.FaceRect(face, result.FaceSize)
			result.Outcomes[i] = p.Extractor.ExtractFace(ctx, inputPath, cubemap.FacePath(outputDir, face), rect)
			faces.Advance(1)
			return nil
		})
	}
	g.Wait()

	return result
}
