package validate

import (
	"fmt"
	"strconv"

	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/diag"
)

// checkPortConflicts implements §4.3 rule 3: every PortMapping is grouped
// by host port across the whole deployment; any host port claimed by two
// or more services is reported once, naming every service involved and
// proposing three consecutive replacement host ports.
func checkPortConflicts(dep *ast.Deployment, bag *diag.Bag) {
	type claim struct {
		service string
		mapping *ast.PortMappingDirective
	}
	byPort := map[int][]claim{}
	var order []int
	seenPort := map[int]bool{}

	for _, svc := range dep.Services {
		for _, pm := range svc.PortMappings() {
			if pm.HostPort < 1 || pm.HostPort > 65535 {
				bag.Add(diag.New(diag.ShapeError, pm.Span(),
					fmt.Sprintf("host port %d is out of range 1..65535", pm.HostPort)).
					WithAffected(svc.Name))
			}
			if pm.ContainerPort < 1 || pm.ContainerPort > 65535 {
				bag.Add(diag.New(diag.ShapeError, pm.Span(),
					fmt.Sprintf("container port %d is out of range 1..65535", pm.ContainerPort)).
					WithAffected(svc.Name))
			}
			if !seenPort[pm.HostPort] {
				seenPort[pm.HostPort] = true
				order = append(order, pm.HostPort)
			}
			byPort[pm.HostPort] = append(byPort[pm.HostPort], claim{svc.Name, pm})
		}
	}

	for _, port := range order {
		claims := byPort[port]
		if len(claims) < 2 {
			continue
		}
		services := make([]string, 0, len(claims))
		for _, c := range claims {
			services = append(services, c.service)
		}
		bag.Add(diag.New(diag.PortConflict, claims[0].mapping.Span(),
			fmt.Sprintf("host port %d is claimed by multiple services", port)).
			WithAffected(services...).
			WithSuggestion(strconv.Itoa(port) + ", " + strconv.Itoa(port+1) + ", " + strconv.Itoa(port+2)))
	}
}
