package progress

import "sync"

// Recorder is an in-memory sink that keeps every update it receives. A
// recorder and all of its subtasks share one lock.
type Recorder struct {
	mu *sync.Mutex

	label        string
	total        float64
	completed    float64
	descriptions []string
	subtasks     []*Recorder
}

// NewRecorder creates a root recorder with the given total.
func NewRecorder(label string, total float64) *Recorder {
	return &Recorder{mu: &sync.Mutex{}, label: label, total: total}
}

func (r *Recorder) Advance(amount float64) {
	r.mu.Lock()
	r.completed += amount
	r.mu.Unlock()
}

func (r *Recorder) SetDescription(stage string) {
	r.mu.Lock()
	r.descriptions = append(r.descriptions, stage)
	r.mu.Unlock()
}

func (r *Recorder) AddSubtask(label string, total float64) Sink {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := &Recorder{mu: r.mu, label: label, total: total}
	r.subtasks = append(r.subtasks, sub)
	return sub
}

func (r *Recorder) Label() string {
	return r.label
}

func (r *Recorder) Total() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Completed returns the sum of all advances.
func (r *Recorder) Completed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// Descriptions returns every description set on this recorder, in order.
func (r *Recorder) Descriptions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.descriptions...)
}

// Subtasks returns the direct subtasks in registration order.
func (r *Recorder) Subtasks() []*Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Recorder(nil), r.subtasks...)
}

// Find returns the first direct subtask with the given label or nil.
func (r *Recorder) Find(label string) *Recorder {
	for _, sub := range r.Subtasks() {
		if sub.label == label {
			return sub
		}
	}
	return nil
}
