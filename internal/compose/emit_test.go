package compose

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/athena-lang/athena/internal/clock"
	"github.com/athena-lang/athena/internal/defaults"
	"github.com/athena-lang/athena/internal/depsort"
	"github.com/athena-lang/athena/internal/parser"
	"github.com/athena-lang/athena/internal/validate"
)

var fixedClock = clock.Fixed{At: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)}

func compileToDoc(t *testing.T, src string) map[string]interface{} {
	t.Helper()
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)
	require.False(t, validate.Validate(dep).HasErrors())

	defaults.Enrich(dep, fixedClock)
	order := depsort.Sort(dep)

	out, err := Emit(dep, order)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	return doc
}

const scenarioA = `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID nginx:alpine
PORT-MAPPING 80 TO 80
END SERVICE
`

func TestEmitScenarioAMinimalValidFile(t *testing.T) {
	doc := compileToDoc(t, scenarioA)

	assert.Equal(t, "DEMO", doc["name"])

	services, ok := doc["services"].(map[string]interface{})
	require.True(t, ok)
	web, ok := services["web"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "nginx:alpine", web["image"])
	assert.Equal(t, "always", web["restart"])
	assert.Equal(t, []interface{}{"80:80"}, web["ports"])

	networks, ok := doc["networks"].(map[string]interface{})
	require.True(t, ok)
	_, hasNetwork := networks["demo_network"]
	assert.True(t, hasNetwork)
}

func TestEmitRoundTripsThroughStandardYAMLParser(t *testing.T) {
	doc := compileToDoc(t, scenarioA)
	services := doc["services"].(map[string]interface{})
	_, ok := services["web"]
	assert.True(t, ok)
}

func TestEmitIsDeterministic(t *testing.T) {
	dep1, err := parser.Parse("t.ath", scenarioA)
	require.NoError(t, err)
	require.False(t, validate.Validate(dep1).HasErrors())
	defaults.Enrich(dep1, fixedClock)
	out1, err := Emit(dep1, depsort.Sort(dep1))
	require.NoError(t, err)

	dep2, err := parser.Parse("t.ath", scenarioA)
	require.NoError(t, err)
	require.False(t, validate.Validate(dep2).HasErrors())
	defaults.Enrich(dep2, fixedClock)
	out2, err := Emit(dep2, depsort.Sort(dep2))
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
}

func TestEmitTopologicalOrderInServicesMapping(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE api
IMAGE-ID node:20
DEPENDS-ON db
END SERVICE
SERVICE db
IMAGE-ID postgres:15
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)
	require.False(t, validate.Validate(dep).HasErrors())
	defaults.Enrich(dep, fixedClock)
	order := depsort.Sort(dep)

	require.Len(t, order, 2)
	assert.Equal(t, "db", order[0].Name)
	assert.Equal(t, "api", order[1].Name)

	out, err := Emit(dep, order)
	require.NoError(t, err)
	dbAt := strings.Index(out, "\n  db:\n")
	apiAt := strings.Index(out, "\n  api:\n")
	require.GreaterOrEqual(t, dbAt, 0)
	require.GreaterOrEqual(t, apiAt, 0)
	assert.Less(t, dbAt, apiAt)
}

func TestEmitEnvironmentVariables(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE app
IMAGE-ID node:20
ENV-VARIABLE {{DB_HOST}}
ENV-VARIABLE "NODE_ENV=production"
END SERVICE
`
	doc := compileToDoc(t, src)
	services := doc["services"].(map[string]interface{})
	app := services["app"].(map[string]interface{})
	env := app["environment"].([]interface{})
	assert.Equal(t, []interface{}{"DB_HOST=${DB_HOST}", "NODE_ENV=production"}, env)
}

func TestEmitScenarioFArchetypeDefaults(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID postgres:15
END SERVICE
`
	doc := compileToDoc(t, src)
	services := doc["services"].(map[string]interface{})
	db := services["db"].(map[string]interface{})

	assert.Equal(t, "always", db["restart"])

	hc := db["healthcheck"].(map[string]interface{})
	assert.Contains(t, hc["test"], "pg_isready")
	assert.Equal(t, "10s", hc["interval"])
	assert.Equal(t, "60s", hc["start_period"])

	labels := db["labels"].(map[string]interface{})
	assert.Equal(t, "database", labels["athena.type"])
	assert.Equal(t, "DEMO", labels["athena.project"])
}
