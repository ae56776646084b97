// Package validate implements Athena's semantic validator (C4). It runs
// after parsing and before enrichment, accumulating diagnostics into a
// single diag.Bag so reference and port problems are reported together
// rather than one at a time (see DESIGN NOTES, "Diagnostic accumulation").
package validate

import (
	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/diag"
)

// Validate runs the deployment-id check and then checks 1..5 in spec
// order against dep (check 6 is left to the defaults engine, see the note
// below), and returns
// every diagnostic collected. The pipeline driver decides whether to
// abort based on bag.HasErrors(); Validate itself never stops early, so
// that a single invocation surfaces as much of the problem as possible.
func Validate(dep *ast.Deployment) *diag.Bag {
	bag := &diag.Bag{}

	checkDeploymentID(dep, bag)
	checkDuplicateServiceNames(dep, bag)
	checkDependsOnResolution(dep, bag)
	checkPortConflicts(dep, bag)
	checkCycles(dep, bag)
	checkOptionValues(dep, bag)

	return bag
}

func checkDeploymentID(dep *ast.Deployment, bag *diag.Bag) {
	if dep.ID == "" {
		bag.Add(diag.New(diag.ShapeError, dep.Span, "deployment id must not be empty"))
		return
	}
	if !isIdentifier(dep.ID) {
		bag.Add(diag.New(diag.ShapeError, dep.Span, "deployment id '"+dep.ID+"' is not a valid identifier"))
	}
}

// checkDuplicateServiceNames implements §4.3 rule 1. It returns the set
// of names it flagged as duplicated, for downstream checks that want to
// skip services with ambiguous identity.
func checkDuplicateServiceNames(dep *ast.Deployment, bag *diag.Bag) map[string]bool {
	firstSeen := map[string]*ast.Service{}
	duplicated := map[string]bool{}

	for _, svc := range dep.Services {
		if prior, ok := firstSeen[svc.Name]; ok {
			duplicated[svc.Name] = true
			bag.Add(diag.New(diag.DuplicateError, svc.Span,
				"duplicate service name '"+svc.Name+"'").
				WithSecondary(prior.Span).
				WithAffected(svc.Name))
			continue
		}
		firstSeen[svc.Name] = svc
	}
	return duplicated
}

// Note: §4.3 rule 6 (BuildArgs present without an Image directive) is not
// an error, so Validate does not check it. It is a defaults-engine (C6)
// concern: the engine is the only pass allowed to attach Enrichment, and
// it derives the note itself from the same Image()/BuildArgs() accessors.

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
