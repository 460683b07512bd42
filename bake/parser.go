package bake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cubebake/cubebake/progress"
)

var (
	mipMarker     = regexp.MustCompile(`Loading cubemap_mip(\d+)`)
	diffuseMarker = regexp.MustCompile(`Loading cubemap_diffuse`)
)

// LineKind classifies a line of renderer output.
type LineKind uint8

const (
	LineIgnored LineKind = iota
	LineMip
	LineDiffuse
	LineError
)

// Parser follows the renderer output and turns its "Loading ..." markers
// into progress. It has no say in whether the bake succeeds.
type Parser struct {
	sink progress.Sink

	// Total number of steps: every mip level plus the diffuse cubemap.
	steps int

	currentMip int
	completed  int
}

// NewParser creates a parser advancing sink over mipLevels+1 steps.
func NewParser(sink progress.Sink, mipLevels int) *Parser {
	return &Parser{
		sink:       sink,
		steps:      mipLevels + 1,
		currentMip: -1,
	}
}

// Steps returns the number of progress steps the parser reports.
func (p *Parser) Steps() int {
	return p.steps
}

// Completed returns the number of steps reported so far.
func (p *Parser) Completed() int {
	return p.completed
}

// Feed processes one output line and reports how it was classified.
func (p *Parser) Feed(line string) LineKind {
	if m := mipMarker.FindStringSubmatch(line); m != nil {
		mip, err := strconv.Atoi(m[1])
		if err == nil && mip > p.currentMip {
			p.currentMip = mip
			p.advanceTo(mip+1, fmt.Sprintf("Baking cubemap... (mip %d)", mip))
		}
		return LineMip
	}

	if diffuseMarker.MatchString(line) {
		p.advanceTo(p.steps, "Baking cubemap... (diffuse)")
		return LineDiffuse
	}

	if strings.Contains(line, "Error") || strings.Contains(line, "Exception") {
		return LineError
	}
	return LineIgnored
}

func (p *Parser) advanceTo(target int, stage string) {
	if target > p.steps {
		target = p.steps
	}
	p.sink.SetDescription(stage)
	if target > p.completed {
		p.sink.Advance(float64(target - p.completed))
		p.completed = target
	}
}
