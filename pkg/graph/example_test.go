package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/gridlayout/pkg/graph"
)

func ExampleWriteGraph() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: 0, Label: "api"}, {ID: 1}},
		Edges: []graph.Edge{{From: 0, To: 1}},
	}

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": 0,
	//       "label": "api"
	//     },
	//     {
	//       "id": 1
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": 0,
	//       "to": 1
	//     }
	//   ]
	// }
}

func ExampleReadGraph() {
	input := `{"nodes": [{"id": 0}, {"id": 1}, {"id": 2}], "edges": [{"from": 0, "to": 2}]}`

	g, err := graph.ReadGraph(strings.NewReader(input))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("nodes:", len(g.Nodes))
	fmt.Println("edges:", g.TopologyEdges())
	// Output:
	// nodes: 3
	// edges: [{0 2}]
}
