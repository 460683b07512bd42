package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/tool"
	"github.com/stretchr/testify/require"
)

// fakeImageTool emulates the subset of oiiotool used by the extractor.
// Face files are written with deterministic content derived from the input
// path and cut region. Path keys match as slash-separated suffixes.
type fakeImageTool struct {
	mu    sync.Mutex
	calls []tool.Command

	failCut      []string
	spawnFail    []string
	misreport    []string
	failReencode bool
	delay        time.Duration

	inFlight    int
	maxInFlight int
}

func (f *fakeImageTool) Run(_ context.Context, cmd tool.Command) (*tool.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	args := cmd.Args
	switch {
	case len(args) == 3 && args[0] == "--info":
		return f.info(args[2])
	case len(args) == 5 && args[1] == "--cut":
		return f.cut(args[0], args[2], args[4])
	case len(args) == 3 && args[1] == "-o" && args[0] == args[2]:
		if f.failReencode {
			return &tool.Result{ExitCode: 1, Stderr: []byte("oiiotool ERROR: could not write\n")}, nil
		}
		f.mu.Lock()
		f.misreport = without(f.misreport, args[0])
		f.mu.Unlock()
		return &tool.Result{}, nil
	}
	return &tool.Result{ExitCode: 2, Stderr: []byte("unexpected invocation: " + cmd.String())}, nil
}

func (f *fakeImageTool) Stream(context.Context, tool.Command, func(string)) (int, error) {
	return 0, nil
}

func (f *fakeImageTool) cut(in, region, out string) (*tool.Result, error) {
	if matches(f.spawnFail, out) {
		return nil, fmt.Errorf("%w: oiiotool: exec format error", tool.ErrSpawn)
	}
	if matches(f.failCut, out) {
		return &tool.Result{ExitCode: 1, Stderr: []byte("oiiotool ERROR: cut failed\n")}, nil
	}
	if err := os.WriteFile(out, []byte(in+"@"+region), 0644); err != nil {
		return &tool.Result{ExitCode: 1, Stderr: []byte(err.Error())}, nil
	}
	return &tool.Result{}, nil
}

func (f *fakeImageTool) info(path string) (*tool.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &tool.Result{ExitCode: 1, Stderr: []byte(err.Error())}, nil
	}

	var x0, y0, x1, y1 int
	region := string(data[strings.LastIndex(string(data), "@")+1:])
	fmt.Sscanf(region, "%d,%d,%d,%d", &x0, &y0, &x1, &y1)
	w, h := x1-x0+1, y1-y0+1

	f.mu.Lock()
	if matches(f.misreport, path) {
		w--
	}
	f.mu.Unlock()

	out := fmt.Sprintf("%s : %d x %d, 4 channel, half openexr\n", path, w, h)
	return &tool.Result{Stdout: []byte(out)}, nil
}

// Calls whose arguments contain the given flag.
func (f *fakeImageTool) callsWith(flag string) []tool.Command {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []tool.Command
	for _, c := range f.calls {
		for _, a := range c.Args {
			if a == flag {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (f *fakeImageTool) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func matches(keys []string, path string) bool {
	for _, k := range keys {
		if strings.HasSuffix(filepath.ToSlash(path), k) {
			return true
		}
	}
	return false
}

func without(keys []string, path string) []string {
	var out []string
	for _, k := range keys {
		if !strings.HasSuffix(filepath.ToSlash(path), k) {
			out = append(out, k)
		}
	}
	return out
}

// Create a render directory holding composite images for every mip level
// and the diffuse cubemap except the listed mips.
func setupLayout(t *testing.T, missingMips ...int) cubemap.Layout {
	t.Helper()

	root := t.TempDir()
	layout := cubemap.Layout{
		RenderDir:  filepath.Join(root, "output"),
		CroppedDir: filepath.Join(root, "output", "cropped"),
	}
	require.NoError(t, os.MkdirAll(layout.RenderDir, 0755))

	missing := make(map[int]bool)
	for _, m := range missingMips {
		missing[m] = true
	}
	for mip := 0; mip < cubemap.MipLevels; mip++ {
		if missing[mip] {
			continue
		}
		require.NoError(t, os.WriteFile(layout.CompositePath(mip), []byte("hdr"), 0644))
	}
	require.NoError(t, os.WriteFile(layout.DiffuseCompositePath(), []byte("hdr"), 0644))

	return layout
}
