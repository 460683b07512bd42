package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/progress"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Coordinator runs the extraction of every mip level and the diffuse
// cubemap. A failing level never stops its siblings.
type Coordinator struct {
	Processor *Processor

	// Number of specular mip levels to extract; defaults to
	// cubemap.MipLevels.
	LevelCount int

	// Maximum number of levels processed at once; 0 means no limit and 1
	// processes levels sequentially.
	Concurrency int
}

// NewCoordinator creates a coordinator extracting all mip levels
// concurrently.
func NewCoordinator(processor *Processor) *Coordinator {
	return &Coordinator{Processor: processor, LevelCount: cubemap.MipLevels}
}

// Run extracts all levels while advancing a single externally owned slot
// by an equal fraction per finished level. Per-face progress is not
// reported so that the slot can live inside a larger display.
func (c *Coordinator) Run(ctx context.Context, slot progress.Sink) (*Report, error) {
	return c.run(ctx, slot, progress.Nop)
}

// RunTracked extracts all levels reporting into tracker: a headline row
// tracking the fraction of finished levels plus one row per level.
func (c *Coordinator) RunTracked(ctx context.Context, tracker progress.Sink) (*Report, error) {
	headline := tracker.AddSubtask("Processing mip levels", 1)
	return c.run(ctx, headline, tracker)
}

// RunStandalone extracts all levels on a progress board of its own that is
// rendered to w and torn down before returning. Log lines are printed above
// the board while it is open.
func (c *Coordinator) RunStandalone(ctx context.Context, w io.Writer) (*Report, error) {
	board := progress.NewBoard(w).CaptureLogs()
	defer board.Close()

	return c.RunTracked(ctx, board)
}

func (c *Coordinator) levelCount() int {
	if c.LevelCount <= 0 {
		return cubemap.MipLevels
	}
	return c.LevelCount
}

func (c *Coordinator) run(ctx context.Context, stages, levels progress.Sink) (*Report, error) {
	root := c.Processor.Layout.CroppedDir
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOutputDir, root, err)
	}

	start := time.Now()
	count := c.levelCount()
	report := &Report{
		RunID:  uuid.NewString(),
		Levels: make([]LevelResult, count),
	}
	logger.Infof("[%s] extracting %d mip levels and the diffuse cubemap from %s", report.RunID, count, c.Processor.Layout.RenderDir)

	total := count + 1
	var finished atomic.Int32
	stageDone := func(result LevelResult) {
		n := finished.Add(1)
		if result.Ok() {
			logger.Infof("[%s] %s: extracted 6 faces (%dpx) in %s", report.RunID, result.Level, result.FaceSize, result.Duration)
		} else {
			logger.Errorf("[%s] %s: extraction failed", report.RunID, result.Level)
		}
		stages.SetDescription(fmt.Sprintf("Cropping cubemap faces (%d/%d)", n, total))
		stages.Advance(1 / float64(total))
	}

	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for mip := 0; mip < count; mip++ {
		g.Go(func() error {
			report.Levels[mip] = c.Processor.ProcessMipLevel(ctx, mip, levels)
			stageDone(report.Levels[mip])
			return nil
		})
	}
	g.Go(func() error {
		report.Diffuse = c.Processor.ProcessDiffuse(ctx, levels)
		stageDone(report.Diffuse)
		return nil
	})
	g.Wait()

	report.Duration = time.Since(start)
	if report.AllSucceeded() {
		logger.Noticef("[%s] cubemap extraction complete in %s", report.RunID, report.Duration)
	} else {
		logger.Errorf("[%s] cubemap extraction failed for: %v", report.RunID, report.Failed())
	}
	return report, nil
}
