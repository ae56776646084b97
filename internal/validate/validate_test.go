package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athena-lang/athena/internal/diag"
	"github.com/athena-lang/athena/internal/parser"
)

func TestDuplicateServiceNames(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID nginx
END SERVICE
SERVICE web
IMAGE-ID nginx
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	require.True(t, bag.HasErrors())

	found := false
	for _, d := range bag.Errors() {
		if d.Kind == diag.DuplicateError {
			found = true
			assert.Contains(t, d.AffectedServices, "web")
		}
	}
	assert.True(t, found)
}

func TestPortConflictNamesBothServices(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE svc1
IMAGE-ID nginx
PORT-MAPPING 8080 TO 80
END SERVICE
SERVICE svc2
IMAGE-ID nginx
PORT-MAPPING 8080 TO 81
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	require.True(t, bag.HasErrors())

	var conflict *diag.Diagnostic
	for _, d := range bag.Errors() {
		if d.Kind == diag.PortConflict {
			conflict = d
		}
	}
	require.NotNil(t, conflict)
	assert.ElementsMatch(t, []string{"svc1", "svc2"}, conflict.AffectedServices)
	assert.Contains(t, conflict.Suggestion, "8081")
}

func TestNoPortConflictWhenPortsDistinct(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE svc1
IMAGE-ID nginx
PORT-MAPPING 8080 TO 80
END SERVICE
SERVICE svc2
IMAGE-ID nginx
PORT-MAPPING 8081 TO 80
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	for _, d := range bag.All() {
		assert.NotEqual(t, diag.PortConflict, d.Kind)
	}
}

func TestDependsOnUnknownServiceSuggestsClosestMatch(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE backend
IMAGE-ID node
END SERVICE
SERVICE frontend
IMAGE-ID node
DEPENDS-ON backend2
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	require.True(t, bag.HasErrors())

	var ref *diag.Diagnostic
	for _, d := range bag.Errors() {
		if d.Kind == diag.ReferenceError {
			ref = d
		}
	}
	require.NotNil(t, ref)
	assert.Contains(t, ref.Suggestion, "backend")
}

func TestThreeServiceCycleReportsOneCycleError(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE a
IMAGE-ID nginx
DEPENDS-ON b
END SERVICE
SERVICE b
IMAGE-ID nginx
DEPENDS-ON c
END SERVICE
SERVICE c
IMAGE-ID nginx
DEPENDS-ON a
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	cycles := 0
	for _, d := range bag.Errors() {
		if d.Kind == diag.CycleError {
			cycles++
			assert.ElementsMatch(t, []string{"a", "b", "c"}, d.AffectedServices)
		}
	}
	assert.Equal(t, 1, cycles)
}

func TestAcyclicGraphReportsNoCycleError(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID postgres
END SERVICE
SERVICE api
IMAGE-ID node
DEPENDS-ON db
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	for _, d := range bag.All() {
		assert.NotEqual(t, diag.CycleError, d.Kind)
	}
}

func TestInvalidRestartPolicyIsOptionError(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID nginx
RESTART-POLICY sometimes
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diag.OptionError, bag.Errors()[0].Kind)
}

func TestResourceLimitsFormat(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID nginx
RESOURCE-LIMITS 0 512X
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	require.True(t, bag.HasErrors())
	for _, d := range bag.Errors() {
		assert.Equal(t, diag.OptionError, d.Kind)
	}
}

func TestEncryptedNetworkRequiresOverlay(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
ENVIRONMENT SECTION
NETWORK-OPTIONS bridge false true
SERVICES SECTION
SERVICE web
IMAGE-ID nginx
END SERVICE
`
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)

	bag := Validate(dep)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diag.OptionError, bag.Errors()[0].Kind)
}
