// Package depsort implements Athena's dependency sorter (C7): a
// deterministic linear ordering of services for emission.
package depsort

import (
	"container/heap"

	"github.com/athena-lang/athena/internal/ast"
)

// Sort returns dep's services in dependency order: Kahn's algorithm,
// breaking ties among simultaneously-ready services by ascending
// original source line. Validation guarantees the graph is acyclic by
// the time this runs, so Sort never needs to report a remaining cycle.
func Sort(dep *ast.Deployment) []*ast.Service {
	byName := make(map[string]*ast.Service, len(dep.Services))
	inDegree := make(map[string]int, len(dep.Services))
	dependents := make(map[string][]string, len(dep.Services))

	for _, svc := range dep.Services {
		byName[svc.Name] = svc
		if _, ok := inDegree[svc.Name]; !ok {
			inDegree[svc.Name] = 0
		}
	}

	for _, svc := range dep.Services {
		for _, d := range svc.DependsOn() {
			if _, ok := byName[d.ServiceName]; !ok {
				continue
			}
			inDegree[svc.Name]++
			dependents[d.ServiceName] = append(dependents[d.ServiceName], svc.Name)
		}
	}

	ready := &readyQueue{}
	for _, svc := range dep.Services {
		if inDegree[svc.Name] == 0 {
			heap.Push(ready, svc)
		}
	}

	out := make([]*ast.Service, 0, len(dep.Services))
	for ready.Len() > 0 {
		svc := heap.Pop(ready).(*ast.Service)
		out = append(out, svc)

		for _, name := range dependents[svc.Name] {
			inDegree[name]--
			if inDegree[name] == 0 {
				heap.Push(ready, byName[name])
			}
		}
	}

	return out
}

// readyQueue is a min-heap of zero-in-degree services ordered by source
// line, so Kahn's algorithm always dequeues the earliest-declared
// service among those currently ready.
type readyQueue []*ast.Service

func (q readyQueue) Len() int            { return len(q) }
func (q readyQueue) Less(i, j int) bool  { return q[i].SourceLine < q[j].SourceLine }
func (q readyQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *readyQueue) Push(x interface{}) { *q = append(*q, x.(*ast.Service)) }
func (q *readyQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
