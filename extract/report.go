package extract

import "time"

// Report aggregates the results of one extraction run.
type Report struct {
	// Unique id of the run; prefixes the run's log lines.
	RunID string

	// Specular level results indexed by mip.
	Levels []LevelResult

	Diffuse LevelResult

	Duration time.Duration
}

// Stages returns all level results, mips first and diffuse last.
func (r *Report) Stages() []LevelResult {
	stages := make([]LevelResult, 0, len(r.Levels)+1)
	stages = append(stages, r.Levels...)
	return append(stages, r.Diffuse)
}

// AllSucceeded reports whether every level produced all of its faces.
func (r *Report) AllSucceeded() bool {
	for _, s := range r.Stages() {
		if !s.Ok() {
			return false
		}
	}
	return true
}

// Failed returns the names of the levels that did not succeed.
func (r *Report) Failed() []string {
	var failed []string
	for _, s := range r.Stages() {
		if !s.Ok() {
			failed = append(failed, s.Level.String())
		}
	}
	return failed
}
