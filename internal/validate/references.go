package validate

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/diag"
)

// maxSuggestDistance is the Levenshtein distance ceiling for proposing a
// "did you mean" correction on an unresolved DEPENDS-ON target (§4.3
// rule 2).
const maxSuggestDistance = 2

// checkDependsOnResolution implements §4.3 rule 2: every DEPENDS-ON
// target must name a declared service.
func checkDependsOnResolution(dep *ast.Deployment, bag *diag.Bag) {
	names := make([]string, 0, len(dep.Services))
	for _, svc := range dep.Services {
		names = append(names, svc.Name)
	}

	for _, svc := range dep.Services {
		for _, d := range svc.DependsOn() {
			if _, ok := dep.Service(d.ServiceName); ok {
				continue
			}

			msg := "service '" + svc.Name + "' depends on undeclared service '" + d.ServiceName +
				"'; declared services: " + strings.Join(names, ", ")
			diagnostic := diag.New(diag.ReferenceError, d.Span(), msg).WithAffected(svc.Name)

			if match, ok := closestMatch(d.ServiceName, names); ok {
				diagnostic.WithSuggestion("Did you mean '" + match + "'?")
			}
			bag.Add(diagnostic)
		}
	}
}

// closestMatch returns the declared name with the smallest Levenshtein
// distance to target, provided that distance is within maxSuggestDistance.
// Ties are broken by declaration order (the first minimal match wins).
func closestMatch(target string, declared []string) (string, bool) {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, name := range declared {
		d := levenshtein.ComputeDistance(target, name)
		if d < bestDist {
			bestDist = d
			best = name
		}
	}
	if bestDist > maxSuggestDistance {
		return "", false
	}
	return best, true
}
