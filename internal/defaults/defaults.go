// Package defaults implements Athena's defaults/enrichment engine (C6).
// It consumes the validated model plus the archetype classifier and
// attaches a derived Enrichment record to every service, following the
// rule tables in tables.go exactly — no scattered conditionals, so the
// engine stays auditable and its output stays deterministic (see DESIGN
// NOTES, "Defaults engine as a rule table").
package defaults

import (
	"strings"

	"github.com/athena-lang/athena/internal/archetype"
	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/clock"
)

const dateLayout = "2006-01-02"

// Enrich attaches an Enrichment to every service in dep. It assumes dep
// has already passed validation: it never rejects or reports, it only
// derives.
func Enrich(dep *ast.Deployment, clk clock.Clock) {
	networkName := networkName(dep)
	generated := clk.Now().Format(dateLayout)

	for _, svc := range dep.Services {
		svc.Enrichment = enrichService(dep, svc, networkName, generated)
	}
}

func enrichService(dep *ast.Deployment, svc *ast.Service, networkName, generated string) *ast.Enrichment {
	arch := archetype.Classify(svc)

	e := &ast.Enrichment{
		Archetype:          arch,
		NetworkMemberships: []string{networkName},
		ContainerName:      kebab(dep.ID) + "-" + kebab(svc.Name),
		PullPolicy:         "missing",
	}

	e.EffectiveRestart = effectiveRestart(svc, arch)
	e.EffectiveHealthCheck = effectiveHealthCheck(svc, arch)

	if svc.ResourceLimits() == nil && svc.Replicas() == nil {
		e.ResourceDefaults = resourceDefaultsTable[arch]
	}

	if svc.Image() == nil {
		e.UsesBuildContext = true
		e.Build = ast.BuildConfig{
			Context:    ".",
			Dockerfile: "Dockerfile",
			Args:       svc.BuildArgs(),
		}
		if len(svc.BuildArgs()) > 0 {
			e.BuildArgsWithoutImageNote = true
		}
	}

	e.SynthesizedLabels = []ast.KV{
		{Key: "athena.project", Value: dep.ID},
		{Key: "athena.service", Value: svc.Name},
		{Key: "athena.type", Value: string(arch)},
		{Key: "athena.generated", Value: generated},
	}

	return e
}

// effectiveRestart honors an explicit directive outright (enrichment
// never overwrites an explicit value) and otherwise falls back to the
// archetype default.
func effectiveRestart(svc *ast.Service, arch ast.Archetype) string {
	if rp := svc.RestartPolicy(); rp != nil {
		return rp.Policy
	}
	return restartDefaults[arch]
}

// effectiveHealthCheck wraps an explicit HealthCheck command with the
// archetype's timing when present, and synthesizes both command and
// timing from the table otherwise.
func effectiveHealthCheck(svc *ast.Service, arch ast.Archetype) ast.HealthCheckSpec {
	d := healthcheckDefaults[arch]
	test := d.test
	if hc := svc.HealthCheck(); hc != nil {
		test = hc.Command
	}
	return ast.HealthCheckSpec{
		Test:        "CMD-SHELL " + test,
		Interval:    d.interval,
		Timeout:     d.timeout,
		Retries:     d.retries,
		StartPeriod: d.startPeriod,
	}
}

func networkName(dep *ast.Deployment) string {
	if dep.Environment != nil && dep.Environment.NetworkName != "" {
		return dep.Environment.NetworkName
	}
	return strings.ToLower(dep.ID) + "_network"
}

// kebab lowercases s and replaces underscores with hyphens, per §4.5
// "Container name".
func kebab(s string) string {
	lower := strings.ToLower(s)
	return strings.ReplaceAll(lower, "_", "-")
}
