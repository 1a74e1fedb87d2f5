// Package drawer provides an observer that renders the stage graph of a
// processing run as a GraphViz DOT file, with stage timings as labels and
// edges heat-coloured by relative stage cost.
package drawer

import (
	"sync"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	colors "gopkg.in/go-playground/colors.v1"

	"github.com/bowline-go/bowline/pkg/preprocess/model"
)

// Observer records the stage chain of a run and renders it on Finish.
type Observer struct {
	mu       sync.Mutex
	fsys     afero.Fs
	path     string
	graph    graph.Graph[string, string]
	elapsed  map[string]time.Duration
	incoming map[string]string
	last     string
}

// New creates a drawing observer that writes DOT to the given path.
func New(fsys afero.Fs, path string) *Observer {
	return &Observer{
		fsys:     fsys,
		path:     path,
		graph:    graph.New(graph.StringHash, graph.Directed()),
		elapsed:  make(map[string]time.Duration),
		incoming: make(map[string]string),
	}
}

// New initialises the graph with the start vertex.
func (o *Observer) New() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.graph.AddVertex(model.StartStage.Name, graph.VertexAttribute("shape", "circle")); err != nil {
		return errors.Wrap(err, "unable to add start stage")
	}
	o.last = model.StartStage.Name

	return nil
}

// PrepareStage adds the stage and its link from the parent stage.
func (o *Observer) PrepareStage(parent, stage *model.StageInfo) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	attrs := []func(*graph.VertexProperties){graph.VertexAttribute("shape", "box")}
	if stage.Skipped {
		attrs = append(attrs, graph.VertexAttribute("style", "dashed"))
	}
	if err := o.graph.AddVertex(stage.Name, attrs...); err != nil {
		return errors.Wrapf(err, "unable to add stage %s", stage.Name)
	}
	if err := o.graph.AddEdge(parent.Name, stage.Name); err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parent.Name, stage.Name)
	}
	o.incoming[stage.Name] = parent.Name
	o.last = stage.Name

	return nil
}

// OnStageDone records the stage duration.
func (o *Observer) OnStageDone(stage *model.StageInfo, elapsed time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if stage.Skipped {
		return nil
	}
	o.elapsed[stage.Name] = elapsed

	return nil
}

// Finish closes the chain with the end vertex, annotates the graph with the
// recorded timings, and renders the DOT file.
func (o *Observer) Finish() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.graph.AddVertex(model.EndStage.Name, graph.VertexAttribute("shape", "circle")); err != nil {
		return errors.Wrap(err, "unable to add end stage")
	}
	if err := o.graph.AddEdge(o.last, model.EndStage.Name); err != nil {
		return errors.Wrap(err, "unable to add end edge")
	}

	if err := o.annotate(); err != nil {
		return err
	}

	file, err := o.fsys.Create(o.path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", o.path)
	}
	defer file.Close()

	if err := dot(o.graph, file); err != nil {
		return errors.Wrapf(err, "unable to render %s", o.path)
	}

	return nil
}

const maxRGB = 240

// annotate labels each timed vertex with its duration and colours its
// incoming edge from blue (cheapest stage) to red (costliest).
func (o *Observer) annotate() error {
	var minElapsed, maxElapsed time.Duration
	first := true
	for _, elapsed := range o.elapsed {
		if first || elapsed < minElapsed {
			minElapsed = elapsed
		}
		if first || elapsed > maxElapsed {
			maxElapsed = elapsed
		}
		first = false
	}

	for name, elapsed := range o.elapsed {
		_, properties, err := o.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrapf(err, "unable to get vertex %s", name)
		}
		properties.Attributes["xlabel"] = elapsed.String()

		parent, ok := o.incoming[name]
		if !ok {
			continue
		}

		fraction := 1.0
		if maxElapsed > minElapsed {
			fraction = float64(elapsed-minElapsed) / float64(maxElapsed-minElapsed)
		}
		heat, err := colors.RGB(uint8(maxRGB*fraction), 0, uint8(maxRGB*(1-fraction)))
		if err != nil {
			return errors.Wrap(err, "unable to build colour")
		}

		err = o.graph.UpdateEdge(parent, name,
			graph.EdgeAttribute("label", elapsed.String()),
			graph.EdgeAttribute("fontcolor", "blue"),
			graph.EdgeAttribute("color", heat.ToHEX().String()),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to update edge into %s", name)
		}
	}

	return nil
}

var _ model.Observer = (*Observer)(nil)
