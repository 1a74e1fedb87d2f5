// Package measure provides an observer that accumulates per-stage durations
// of a processing run.
package measure

import (
	"sync"
	"time"

	"github.com/bowline-go/bowline/pkg/preprocess/model"
)

// Metric is the accumulated timing of one stage.
type Metric struct {
	Count int64
	Total time.Duration
}

// Avg returns the average duration of the stage.
func (m Metric) Avg() time.Duration {
	if m.Count == 0 {
		return 0
	}

	return time.Duration(int64(m.Total) / m.Count)
}

// Observer accumulates stage durations. It is safe for concurrent use.
type Observer struct {
	mu      sync.Mutex
	metrics map[string]*Metric
	order   []string
}

// New creates a measuring observer.
func New() *Observer {
	return &Observer{metrics: make(map[string]*Metric)}
}

// New implements model.Observer.
func (o *Observer) New() error {
	return nil
}

// PrepareStage registers the stage so Metrics reports it even when it never
// runs.
func (o *Observer) PrepareStage(_, stage *model.StageInfo) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.metrics[stage.Name]; !ok {
		o.metrics[stage.Name] = &Metric{}
		o.order = append(o.order, stage.Name)
	}

	return nil
}

// OnStageDone records the stage duration.
func (o *Observer) OnStageDone(stage *model.StageInfo, elapsed time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	metric, ok := o.metrics[stage.Name]
	if !ok {
		metric = &Metric{}
		o.metrics[stage.Name] = metric
		o.order = append(o.order, stage.Name)
	}
	metric.Count++
	metric.Total += elapsed

	return nil
}

// Finish implements model.Observer.
func (o *Observer) Finish() error {
	return nil
}

// Metrics returns a snapshot of the accumulated timings.
func (o *Observer) Metrics() map[string]Metric {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[string]Metric, len(o.metrics))
	for name, metric := range o.metrics {
		out[name] = *metric
	}

	return out
}

// StageNames returns the stages in the order they were registered.
func (o *Observer) StageNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]string, len(o.order))
	copy(out, o.order)

	return out
}

var _ model.Observer = (*Observer)(nil)
