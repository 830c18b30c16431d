package report

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// /////////////////////////////////////////////////////////////////////////////
//
// TYPES
//
// /////////////////////////////////////////////////////////////////////////////

type d2TableParams struct {
	Key   string
	Value interface{}
}

// summaryNode is a node of the summary diagram.
type summaryNode interface {
	graph.Node
	D2Key() string
	D2Encode(output io.StringWriter, log *slog.Logger) error
}

// /////////////////////////////////////////////////////////////////////////////
// tableNode
//
// A sql_table shaped node whose rows are key/value pairs.
//
// /////////////////////////////////////////////////////////////////////////////

type tableNode struct {
	id     int64
	key    string
	title  string
	params []*d2TableParams
}

func (tn *tableNode) ID() int64 {
	return tn.id
}

func (tn *tableNode) D2Key() string {
	return tn.key
}

func (tn *tableNode) DOTID() string {
	return tn.key
}

func (tn *tableNode) D2Encode(output io.StringWriter, log *slog.Logger) error {
	log.Debug("Encoding table node", "key", tn.key, "rows", len(tn.params))
	_, writeErr := output.WriteString(fmt.Sprintf("%s: %s {\n\tshape: sql_table\n",
		tn.key,
		strconv.Quote(tn.title)))
	if writeErr != nil {
		return writeErr
	}
	for _, eachParam := range tn.params {
		_, writeErr = output.WriteString(fmt.Sprintf("\t%s: %s\n",
			strconv.Quote(eachParam.Key),
			strconv.Quote(fmt.Sprintf("%v", eachParam.Value))))
		if writeErr != nil {
			return writeErr
		}
	}
	_, writeErr = output.WriteString("}\n\n")
	return writeErr
}

// /////////////////////////////////////////////////////////////////////////////
// markdownNode
// /////////////////////////////////////////////////////////////////////////////

type markdownNode struct {
	id      int64
	key     string
	heading string
	params  []*d2TableParams
}

func (mn *markdownNode) ID() int64 {
	return mn.id
}

func (mn *markdownNode) D2Key() string {
	return mn.key
}

func (mn *markdownNode) DOTID() string {
	return mn.key
}

func (mn *markdownNode) D2Encode(output io.StringWriter, log *slog.Logger) error {
	log.Debug("Markdown encoding node", "title", mn.heading)
	_, writeErr := output.WriteString(fmt.Sprintf("%s: |md\n# %s\n", mn.key, mn.heading))
	if writeErr != nil {
		return writeErr
	}
	for _, eachParam := range mn.params {
		_, writeErr = output.WriteString(fmt.Sprintf("- **%s**: %v\n", eachParam.Key, eachParam.Value))
		if writeErr != nil {
			return writeErr
		}
	}
	_, writeErr = output.WriteString("|\n\n")
	return writeErr
}

// /////////////////////////////////////////////////////////////////////////////
// imageNode
// /////////////////////////////////////////////////////////////////////////////

type imageNode struct {
	id    int64
	key   string
	label string
	path  string
}

func (in *imageNode) ID() int64 {
	return in.id
}

func (in *imageNode) D2Key() string {
	return in.key
}

func (in *imageNode) DOTID() string {
	return in.key
}

func (in *imageNode) D2Encode(output io.StringWriter, _ *slog.Logger) error {
	_, writeErr := output.WriteString(fmt.Sprintf(`%s: %s {
	shape: image
	icon: %s
	width: 512
	height: 512
}

`,
		in.key,
		strconv.Quote(in.label),
		in.path))
	return writeErr
}

// /////////////////////////////////////////////////////////////////////////////
// summaryGraph
//
// The summary diagram as a directed graph: run header -> parameter space ->
// strategy -> design -> plot. Nodes are written in topological order.
//
// /////////////////////////////////////////////////////////////////////////////

type summaryGraph struct {
	*simple.DirectedGraph
}

func (sg *summaryGraph) chain(nodes ...summaryNode) {
	for i, eachNode := range nodes {
		sg.AddNode(eachNode)
		if i > 0 {
			sg.SetEdge(sg.NewEdge(nodes[i-1], eachNode))
		}
	}
}

func newSummaryGraph(summary *Summary) *summaryGraph {
	design := summary.Design
	designStats := summary.Statistics

	header := &markdownNode{
		id:      1,
		key:     "run",
		heading: summary.Name,
		params: []*d2TableParams{
			{Key: "Samples", Value: designStats.Samples},
			{Key: "Parameters", Value: design.Space.Dim()},
			{Key: "Created", Value: summary.Created.Format(time.ANSIC)},
		},
	}
	parameters := &tableNode{
		id:    2,
		key:   "parameters",
		title: "Parameter Space",
	}
	for i, eachName := range summary.Parameters {
		interval := design.Space.Interval(i)
		parameters.params = append(parameters.params, &d2TableParams{
			Key:   eachName,
			Value: fmt.Sprintf("[%g, %g]", interval.Min, interval.Max),
		})
	}
	method := &tableNode{
		id:    3,
		key:   "strategy",
		title: design.Method,
	}
	for _, eachKey := range sortedOptions(design.Options) {
		method.params = append(method.params, &d2TableParams{
			Key:   eachKey,
			Value: design.Options[eachKey],
		})
	}
	if design.Seeded {
		method.params = append(method.params, &d2TableParams{
			Key:   "seed",
			Value: design.Seed,
		})
	}
	samples := &tableNode{
		id:    4,
		key:   "design",
		title: "Design",
		params: []*d2TableParams{
			{Key: "rows", Value: designStats.Samples},
			{Key: "min distance", Value: fmt.Sprintf("%.4g", designStats.MinDistance)},
			{Key: "max |correlation|", Value: fmt.Sprintf("%.4g", designStats.MaxCorrelation)},
		},
	}
	for i, eachColumn := range designStats.Columns {
		samples.params = append(samples.params, &d2TableParams{
			Key:   summary.Parameters[i],
			Value: aggregatedStatsFormatter(eachColumn),
		})
	}

	sg := &summaryGraph{simple.NewDirectedGraph()}
	nodes := []summaryNode{header, parameters, method, samples}
	if len(summary.PlotPath) != 0 {
		nodes = append(nodes, &imageNode{
			id:    5,
			key:   "plot",
			label: "Samples",
			path:  summary.PlotPath,
		})
	}
	sg.chain(nodes...)
	return sg
}

// WriteD2 writes the D2 source of the summary diagram.
func WriteD2(output io.StringWriter, summary *Summary, log *slog.Logger) error {
	sg := newSummaryGraph(summary)
	sortedNodes, sortedNodesErr := topo.Sort(sg)
	if sortedNodesErr != nil {
		return sortedNodesErr
	}
	_, writeErr := output.WriteString(`
# Nodes
# ------------------------------------------------------------------------------

`)
	if writeErr != nil {
		return writeErr
	}
	for _, eachNode := range sortedNodes {
		encodeErr := eachNode.(summaryNode).D2Encode(output, log)
		if encodeErr != nil {
			return encodeErr
		}
	}
	_, writeErr = output.WriteString(`
# Connections
# ------------------------------------------------------------------------------
`)
	if writeErr != nil {
		return writeErr
	}
	for _, eachNode := range sortedNodes {
		successors := sg.From(eachNode.ID())
		for successors.Next() {
			_, writeErr = output.WriteString(fmt.Sprintf("%s -> %s\n",
				eachNode.(summaryNode).D2Key(),
				successors.Node().(summaryNode).D2Key()))
			if writeErr != nil {
				return writeErr
			}
		}
	}
	return nil
}

// WriteDOT writes the summary graph in Graphviz DOT format.
func WriteDOT(output io.Writer, summary *Summary, log *slog.Logger) error {
	dotBytes, dotBytesErr := dot.Marshal(newSummaryGraph(summary), summary.Name, "", " ")
	if dotBytesErr != nil {
		return dotBytesErr
	}
	log.Debug("Marshalled DOT graph", "bytes", len(dotBytes))
	_, writeErr := output.Write(dotBytes)
	return writeErr
}
