// Package pipeline implements Athena's pipeline driver (C9): it sequences
// the parser, validator, archetype classifier, defaults engine,
// dependency sorter, and emitter, and fails fast on the first error
// diagnostic. Compile is a pure function of (source text, file name,
// clock) per the concurrency model: no shared state, no coordination
// needed to run many compiles in parallel.
package pipeline

import (
	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/clock"
	"github.com/athena-lang/athena/internal/compose"
	"github.com/athena-lang/athena/internal/defaults"
	"github.com/athena-lang/athena/internal/depsort"
	"github.com/athena-lang/athena/internal/diag"
	"github.com/athena-lang/athena/internal/parser"
	"github.com/athena-lang/athena/internal/validate"
)

// Result carries everything a caller needs from a compile: the rendered
// YAML on success, and every diagnostic collected along the way
// (warnings are always present even on success; errors are present only
// on failure, in which case YAML is empty).
type Result struct {
	YAML        string
	Diagnostics []*diag.Diagnostic
	Deployment  *ast.Deployment
}

// Compile runs the full C2->C8 pipeline against source. It stops and
// returns no YAML as soon as parsing or validation reports an error;
// warnings never abort the compile.
func Compile(file, source string, clk clock.Clock) Result {
	dep, err := parser.Parse(file, source)
	if err != nil {
		if d, ok := err.(*diag.Diagnostic); ok {
			return Result{Diagnostics: []*diag.Diagnostic{d}}
		}
		return Result{Diagnostics: []*diag.Diagnostic{diag.InternalError("parse", err)}}
	}

	bag := validate.Validate(dep)
	if bag.HasErrors() {
		return Result{Diagnostics: bag.All(), Deployment: dep}
	}

	defaults.Enrich(dep, clk)

	order := depsort.Sort(dep)

	out, emitErr := compose.Emit(dep, order)
	if emitErr != nil {
		diags := append(bag.All(), diag.InternalError("emit", emitErr))
		return Result{Diagnostics: diags, Deployment: dep}
	}

	return Result{YAML: out, Diagnostics: bag.All(), Deployment: dep}
}
