package topology_test

import (
	"fmt"

	"github.com/matzehuels/gridlayout/pkg/topology"
)

func ExampleDerive() {
	// A path 0-1-2-3-4: weights fall off with hop distance from node 0.
	edges := []topology.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 4}}
	topo, err := topology.Derive(5, edges)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(topo.Weights().Rows()[0])
	// Output: [3 3 1 0 -1]
}
