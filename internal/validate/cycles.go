package validate

import (
	"sort"

	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/diag"
)

// frame is one level of the explicit DFS work stack: the node being
// visited and the index of the next outgoing edge to follow. Recording
// the iterator alongside the node lets re-entering a node resume from
// where it left off, so cycle detection needs no recursion and is
// immune to stack-depth differences across platforms (see DESIGN NOTES,
// "Cycle detection").
type frame struct {
	node    string
	edgeIdx int
}

// checkCycles implements §4.3 rule 4. It reports one CycleError per
// weakly-connected cluster of services that participate in a dependency
// cycle, naming one representative service from each.
func checkCycles(dep *ast.Deployment, bag *diag.Bag) {
	g := ast.BuildServiceGraph(dep)
	onCycle := findCyclicNodes(g)
	if len(onCycle) == 0 {
		return
	}

	for _, cluster := range weaklyConnectedClusters(g, onCycle) {
		representative := cluster[0]
		var span diag.Span
		if svc, ok := dep.Service(representative); ok {
			span = svc.Span
		}
		bag.Add(diag.New(diag.CycleError, span,
			"dependency cycle detected involving service '"+representative+"'").
			WithAffected(cluster...))
	}
}

// findCyclicNodes runs an iterative DFS with an explicit stack over the
// deployment's DependsOn graph and returns every node that lies on at
// least one directed cycle.
func findCyclicNodes(g *ast.ServiceGraph) map[string]bool {
	const (
		white = iota
		gray
		black
	)
	state := map[string]int{}
	onCycle := map[string]bool{}

	for _, n := range g.Nodes {
		state[n] = white
	}

	for _, start := range g.Nodes {
		if state[start] != white {
			continue
		}

		stack := []frame{{node: start, edgeIdx: 0}}
		state[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := g.Edges[top.node]

			if top.edgeIdx >= len(edges) {
				state[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			next := edges[top.edgeIdx]
			top.edgeIdx++

			switch state[next] {
			case white:
				state[next] = gray
				stack = append(stack, frame{node: next, edgeIdx: 0})
			case gray:
				// Back-edge: every frame from next to the top of the
				// stack lies on this cycle.
				for i := len(stack) - 1; i >= 0; i-- {
					onCycle[stack[i].node] = true
					if stack[i].node == next {
						break
					}
				}
			case black:
				// Already fully explored without closing a cycle back
				// to an ancestor: a cross/forward edge, not a cycle.
			}
		}
	}

	return onCycle
}

// weaklyConnectedClusters groups the cyclic nodes into weakly-connected
// components (treating DependsOn edges as undirected for this purpose),
// each returned in declaration order with its first member first.
func weaklyConnectedClusters(g *ast.ServiceGraph, onCycle map[string]bool) [][]string {
	undirected := map[string][]string{}
	addEdge := func(a, b string) {
		undirected[a] = append(undirected[a], b)
		undirected[b] = append(undirected[b], a)
	}
	for node, targets := range g.Edges {
		if !onCycle[node] {
			continue
		}
		for _, t := range targets {
			if onCycle[t] {
				addEdge(node, t)
			}
		}
	}

	pos := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		pos[n] = i
	}

	visited := map[string]bool{}
	var clusters [][]string
	for _, n := range g.Nodes {
		if !onCycle[n] || visited[n] {
			continue
		}
		var cluster []string
		queue := []string{n}
		visited[n] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			cluster = append(cluster, cur)
			for _, nb := range undirected[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Slice(cluster, func(i, j int) bool { return pos[cluster[i]] < pos[cluster[j]] })
		clusters = append(clusters, cluster)
	}
	return clusters
}
