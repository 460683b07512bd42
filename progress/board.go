package progress

import (
	"io"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cubebake/cubebake/log"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar units per progress unit; lets rows advance by fractions.
const unitScale = 1000

// Board is a terminal progress display with one row per registered task.
// All row updates are serialized through the board lock. The board itself
// has no bar: Advance and SetDescription on it are ignored.
type Board struct {
	mu     sync.Mutex
	p      *mpb.Progress
	rows   []*row
	closed bool

	// Set while log output is routed through the board.
	capturing bool
}

// NewBoard creates a board rendering to w.
func NewBoard(w io.Writer) *Board {
	return &Board{
		p: mpb.New(
			mpb.WithOutput(w),
			mpb.WithWidth(40),
			mpb.WithRefreshRate(100*time.Millisecond),
		),
	}
}

// CaptureLogs routes log output through the board so that log lines are
// printed above the rows instead of tearing them. Logging returns to stderr
// when the board is closed.
func (b *Board) CaptureLogs() *Board {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.capturing = true
		log.SetSink(b)
	}
	return b
}

// Write prints p above the rows. Once the board is closed p goes to stderr.
func (b *Board) Write(p []byte) (int, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()

	if !closed {
		if n, err := b.p.Write(p); err == nil {
			return n, nil
		}
	}
	return os.Stderr.Write(p)
}

func (b *Board) Advance(float64)       {}
func (b *Board) SetDescription(string) {}

// AddSubtask appends a new row to the board.
func (b *Board) AddSubtask(label string, total float64) Sink {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return Nop
	}

	r := &row{board: b, total: total}
	r.desc.Store(&label)
	r.bar = b.p.AddBar(
		scaled(total),
		mpb.PrependDecorators(
			decor.Any(func(decor.Statistics) string { return *r.desc.Load() }, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncSpace),
			decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace),
		),
	)
	b.rows = append(b.rows, r)
	return r
}

// Close stops the display. Unfinished rows are aborted but left visible.
// It blocks until the final frame has been rendered.
func (b *Board) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, r := range b.rows {
		if !r.bar.Completed() {
			r.bar.Abort(false)
		}
	}
	capturing := b.capturing
	b.mu.Unlock()

	b.p.Wait()
	if capturing {
		log.SetSink(os.Stderr)
	}
}

type row struct {
	board *Board
	bar   *mpb.Bar

	// Read by the render goroutine without taking the board lock.
	desc atomic.Pointer[string]

	total     float64
	completed float64
}

func (r *row) Advance(amount float64) {
	r.board.mu.Lock()
	defer r.board.mu.Unlock()

	if r.board.closed {
		return
	}
	r.completed = math.Min(r.completed+amount, r.total)
	r.bar.SetCurrent(scaled(r.completed))
	if r.completed >= r.total {
		r.bar.SetTotal(-1, true)
	}
}

func (r *row) SetDescription(stage string) {
	r.desc.Store(&stage)
}

// Subtasks of a row are rendered as additional rows on the same board.
func (r *row) AddSubtask(label string, total float64) Sink {
	return r.board.AddSubtask(label, total)
}

func scaled(v float64) int64 {
	return int64(math.Round(v * unitScale))
}
