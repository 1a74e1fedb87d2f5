package drawer

import (
	"fmt"
	"io"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

//nolint:lll //this is a template
const dotTemplate = `strict digraph {
	{{range $s := .}}
		"{{.Source}}" {{if .Target}}-> "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight=0 ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight=0 ]{{end}};
	{{end}}
	}
	`

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
}

// dot renders the stage graph as GraphViz DOT. A vertex carrying an "xlabel"
// attribute is rendered with an HTML label holding the stage name and the
// label underneath.
func dot(gra graph.Graph[string, string], wrt io.Writer) error {
	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return errors.Wrap(err, "unable to get adjacency map")
	}

	statements := make([]statement, 0, len(adjacencyMap))
	for vertex, adjacencies := range adjacencyMap {
		_, properties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		if xlabel, ok := properties.Attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)
			delete(properties.Attributes, "xlabel")
		}

		statements = append(statements, statement{
			Source:           vertex,
			SourceAttributes: properties.Attributes,
			HTMLAttributes:   htmlAttributes,
		})

		for adjacency, edge := range adjacencies {
			statements = append(statements, statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	return errors.Wrap(tpl.Execute(wrt, statements), "unable to execute template")
}
