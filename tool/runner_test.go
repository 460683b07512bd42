//go:build unix

package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutputAndExitCode(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), New("sh", "-c", "echo out; echo err 1>&2; exit 3"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Success())
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
}

func TestRunSpawnFailure(t *testing.T) {
	r := NewExecRunner()

	_, err := r.Run(context.Background(), New("/nonexistent/cubebake-tool"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpawn))
}

func TestStreamMergesLines(t *testing.T) {
	r := NewExecRunner()

	var lines []string
	code, err := r.Stream(context.Background(), New("sh", "-c", "echo '  one  '; echo two 1>&2; echo three"), func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.ElementsMatch(t, []string{"one", "two", "three"}, lines)
}

func TestStreamCancellation(t *testing.T) {
	r := NewExecRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Stream(ctx, New("sh", "-c", "sleep 10"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "ktx create --levels 1", New("ktx", "create", "--levels", "1").String())
	assert.Equal(t, "ktx", New("ktx").String())
	assert.True(t, strings.HasPrefix(New("oiiotool", "--info").String(), "oiiotool"))
}

func TestLookPath(t *testing.T) {
	_, err := LookPath("sh")
	require.NoError(t, err)

	_, err = LookPath("cubebake-no-such-binary")
	assert.True(t, errors.Is(err, ErrNotFound))
}
