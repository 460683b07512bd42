package extract

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatorIsolatesFailedLevel(t *testing.T) {
	layout := setupLayout(t, 3)
	fake := &fakeImageTool{}
	c := NewCoordinator(NewProcessor(NewExtractor(fake, "oiiotool"), layout))
	slot := progress.NewRecorder("Cropping cubemap faces...", 1)

	report, err := c.Run(context.Background(), slot)
	require.NoError(t, err)

	require.Len(t, report.Levels, 10)
	for mip, res := range report.Levels {
		assert.Equal(t, mip, res.Level.Mip)
		if mip == 3 {
			assert.False(t, res.Ok())
			continue
		}
		assert.True(t, res.Ok(), "expected mip %d to succeed", mip)
	}
	assert.True(t, report.Diffuse.Ok())
	assert.False(t, report.AllSucceeded())
	assert.Equal(t, []string{"mip3"}, report.Failed())
	assert.NotEmpty(t, report.RunID)

	// Nine levels plus diffuse, six faces each.
	assert.Len(t, fake.callsWith("--cut"), 60)

	// The external slot receives one equal share per level and no subtasks.
	assert.InDelta(t, 1.0, slot.Completed(), 1e-9)
	assert.Empty(t, slot.Subtasks())
	assert.Len(t, slot.Descriptions(), 11)
}

func TestCoordinatorAllSucceeded(t *testing.T) {
	layout := setupLayout(t)
	c := NewCoordinator(NewProcessor(NewExtractor(&fakeImageTool{}, "oiiotool"), layout))

	report, err := c.Run(context.Background(), progress.Nop)
	require.NoError(t, err)
	assert.True(t, report.AllSucceeded())
	assert.Empty(t, report.Failed())
	assert.Len(t, report.Stages(), 11)

	for mip := 0; mip < cubemap.MipLevels; mip++ {
		for _, face := range cubemap.Faces {
			assert.FileExists(t, cubemap.FacePath(layout.MipDir(mip), face))
		}
	}
}

func TestCoordinatorTrackedRows(t *testing.T) {
	layout := setupLayout(t)
	c := NewCoordinator(NewProcessor(NewExtractor(&fakeImageTool{}, "oiiotool"), layout))
	tracker := progress.NewRecorder("", 0)

	report, err := c.RunTracked(context.Background(), tracker)
	require.NoError(t, err)
	require.True(t, report.AllSucceeded())

	headline := tracker.Find("Processing mip levels")
	require.NotNil(t, headline)
	assert.InDelta(t, 1.0, headline.Completed(), 1e-9)

	for mip := 0; mip < cubemap.MipLevels; mip++ {
		row := tracker.Find(Mip(mip).Label())
		require.NotNil(t, row, "missing row for mip %d", mip)
		assert.Equal(t, 6.0, row.Completed())
	}
	require.NotNil(t, tracker.Find("Diffuse cubemap"))
	assert.Len(t, tracker.Subtasks(), 12)
}

func TestCoordinatorSequential(t *testing.T) {
	layout := setupLayout(t)
	fake := &fakeImageTool{delay: time.Millisecond}
	c := NewCoordinator(NewProcessor(NewExtractor(fake, "oiiotool"), layout))
	c.Concurrency = 1
	c.LevelCount = 4

	report, err := c.Run(context.Background(), progress.Nop)
	require.NoError(t, err)
	assert.True(t, report.AllSucceeded())
	assert.Len(t, report.Levels, 4)

	// Only the six faces of a single level may be in flight at once.
	assert.LessOrEqual(t, fake.maxInFlight, 6)
}

func TestCoordinatorStandalone(t *testing.T) {
	layout := setupLayout(t, 9)
	c := NewCoordinator(NewProcessor(NewExtractor(&fakeImageTool{}, "oiiotool"), layout))

	report, err := c.RunStandalone(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"mip9"}, report.Failed())
}

func TestCoordinatorStandaloneLogsAboveBoard(t *testing.T) {
	layout := setupLayout(t, 9)
	c := NewCoordinator(NewProcessor(NewExtractor(&fakeImageTool{}, "oiiotool"), layout))

	var buf bytes.Buffer
	_, err := c.RunStandalone(context.Background(), &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "mip9: extraction failed")
	assert.Contains(t, buf.String(), "cubemap extraction failed for: [mip9]")
}

func TestCoordinatorOutputRootNotCreatable(t *testing.T) {
	layout := setupLayout(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	layout.CroppedDir = filepath.Join(blocker, "cropped")

	c := NewCoordinator(NewProcessor(NewExtractor(&fakeImageTool{}, "oiiotool"), layout))
	_, err := c.Run(context.Background(), progress.Nop)
	assert.ErrorIs(t, err, ErrOutputDir)
}
