package ast

// ServiceGraph is the directed graph induced by DEPENDS-ON directives:
// an edge B->A means "B depends on A", i.e. A must start first. It is
// acyclic once semantic validation has accepted the deployment.
type ServiceGraph struct {
	// Nodes holds every service name, in declaration order.
	Nodes []string

	// Edges maps a service name to the names of the services it depends
	// on (must start before it).
	Edges map[string][]string
}

// BuildServiceGraph derives the dependency graph from a Deployment's
// DEPENDS-ON directives. It does not validate that targets resolve; that
// is the validator's job (§4.3 rule 2) run beforehand.
func BuildServiceGraph(d *Deployment) *ServiceGraph {
	g := &ServiceGraph{
		Edges: make(map[string][]string, len(d.Services)),
	}
	for _, svc := range d.Services {
		g.Nodes = append(g.Nodes, svc.Name)
		for _, dep := range svc.DependsOn() {
			g.Edges[svc.Name] = append(g.Edges[svc.Name], dep.ServiceName)
		}
	}
	return g
}
