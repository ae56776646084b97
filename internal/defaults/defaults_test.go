package defaults

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/clock"
	"github.com/athena-lang/athena/internal/parser"
)

var fixedClock = clock.Fixed{At: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)}

func TestEnrichDatabaseArchetypeDefaults(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID postgres:15
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	Enrich(dep, fixedClock)

	svc, _ := dep.Service("db")
	require.NotNil(t, svc.Enrichment)
	e := svc.Enrichment

	assert.Equal(t, "always", e.EffectiveRestart)
	assert.Contains(t, e.EffectiveHealthCheck.Test, "pg_isready")
	assert.Equal(t, "10s", e.EffectiveHealthCheck.Interval)
	assert.Equal(t, "60s", e.EffectiveHealthCheck.StartPeriod)
	assert.True(t, e.ResourceDefaults.Set)
	assert.Equal(t, "1.0", e.ResourceDefaults.CPUs)
	assert.Equal(t, "1024M", e.ResourceDefaults.Memory)
	assert.Equal(t, "2026-07-31", labelValue(e.SynthesizedLabels, "athena.generated"))
	assert.Equal(t, "database", labelValue(e.SynthesizedLabels, "athena.type"))
	assert.Equal(t, "DEMO", labelValue(e.SynthesizedLabels, "athena.project"))
}

func TestEnrichDoesNotOverwriteExplicitDirectives(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID postgres:15
RESTART-POLICY no
HEALTH-CHECK "custom check"
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	Enrich(dep, fixedClock)

	svc, _ := dep.Service("db")
	e := svc.Enrichment
	assert.Equal(t, "no", e.EffectiveRestart)
	assert.Contains(t, e.EffectiveHealthCheck.Test, "custom check")
	// Timing still comes from the archetype table even though the command
	// is explicit.
	assert.Equal(t, "10s", e.EffectiveHealthCheck.Interval)
}

func TestEnrichResourceDefaultsSkippedWhenExplicitOrReplicated(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID postgres:15
RESOURCE-LIMITS 2 2048M
END SERVICE
SERVICE api
IMAGE-ID node:20
REPLICAS 3
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	Enrich(dep, fixedClock)

	db, _ := dep.Service("db")
	assert.False(t, db.Enrichment.ResourceDefaults.Set)

	api, _ := dep.Service("api")
	assert.False(t, api.Enrichment.ResourceDefaults.Set)
}

func TestEnrichBuildContextWithoutImage(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE worker
BUILD-ARGS VERSION 1.0
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	Enrich(dep, fixedClock)

	svc, _ := dep.Service("worker")
	e := svc.Enrichment
	assert.True(t, e.UsesBuildContext)
	assert.Equal(t, ".", e.Build.Context)
	assert.Equal(t, "Dockerfile", e.Build.Dockerfile)
	assert.True(t, e.BuildArgsWithoutImageNote)
}

func TestEnrichNetworkMembershipDefaultsToDeploymentName(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID nginx
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	Enrich(dep, fixedClock)

	svc, _ := dep.Service("web")
	assert.Equal(t, []string{"demo_network"}, svc.Enrichment.NetworkMemberships)
}

func TestEnrichContainerNameIsKebabCase(t *testing.T) {
	src := `DEPLOYMENT-ID my_deploy
SERVICES SECTION
SERVICE web_server
IMAGE-ID nginx
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	Enrich(dep, fixedClock)

	svc, _ := dep.Service("web_server")
	assert.Equal(t, "my-deploy-web-server", svc.Enrichment.ContainerName)
}

func labelValue(labels []ast.KV, key string) string {
	for _, l := range labels {
		if l.Key == key {
			return l.Value
		}
	}
	return ""
}
