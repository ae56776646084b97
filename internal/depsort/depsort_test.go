package depsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athena-lang/athena/internal/parser"
)

func serviceNames(t *testing.T, src string) []string {
	t.Helper()
	dep, err := parser.Parse("t.ath", src)
	require.NoError(t, err)
	var names []string
	for _, svc := range Sort(dep) {
		names = append(names, svc.Name)
	}
	return names
}

func TestSortRespectsDependencyOrder(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE api
IMAGE-ID node
DEPENDS-ON db
END SERVICE
SERVICE db
IMAGE-ID postgres
END SERVICE
`
	names := serviceNames(t, src)
	require.Len(t, names, 2)

	pos := map[string]int{}
	for i, n := range names {
		pos[n] = i
	}
	assert.Less(t, pos["db"], pos["api"])
}

func TestSortBreaksTiesBySourceLine(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE b
IMAGE-ID nginx
END SERVICE
SERVICE a
IMAGE-ID nginx
END SERVICE
`
	names := serviceNames(t, src)
	assert.Equal(t, []string{"b", "a"}, names)
}

func TestSortIsStableAcrossRuns(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE c
IMAGE-ID nginx
DEPENDS-ON a
END SERVICE
SERVICE a
IMAGE-ID nginx
END SERVICE
SERVICE b
IMAGE-ID nginx
DEPENDS-ON a
END SERVICE
`
	first := serviceNames(t, src)
	second := serviceNames(t, src)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "c", "b"}, first)
}
