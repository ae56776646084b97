package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/diag"
)

func serviceWithImage(image string) *ast.Service {
	svc := &ast.Service{Name: "svc"}
	if image != "" {
		svc.Directives = append(svc.Directives, ast.NewImage(diag.Span{}, image))
	}
	return svc
}

func TestClassifyKnownArchetypes(t *testing.T) {
	cases := map[string]ast.Archetype{
		"postgres:15":    ast.ArchetypeDatabase,
		"mysql:8":        ast.ArchetypeDatabase,
		"mongo:6":        ast.ArchetypeDatabase,
		"redis:7-alpine": ast.ArchetypeCache,
		"memcached:1.6":  ast.ArchetypeCache,
		"nginx:alpine":   ast.ArchetypeProxy,
		"traefik:v3":     ast.ArchetypeProxy,
		"node:20":        ast.ArchetypeWebapp,
		"golang:1.22":    ast.ArchetypeWebapp,
		"alpine:3.19":    ast.ArchetypeGeneric,
	}
	for image, want := range cases {
		got := Classify(serviceWithImage(image))
		assert.Equalf(t, want, got, "image %q", image)
	}
}

func TestClassifyNoImageIsGeneric(t *testing.T) {
	assert.Equal(t, ast.ArchetypeGeneric, Classify(serviceWithImage("")))
}

func TestClassifyIsIdempotent(t *testing.T) {
	svc := serviceWithImage("postgres:15")
	assert.Equal(t, Classify(svc), Classify(svc))
}

func TestClassifyTieBreaksByTableOrder(t *testing.T) {
	// "custom-postgres-java" matches both a database substring and a
	// webapp substring; this pins that the declared ordering is respected:
	// database is checked before webapp.
	assert.Equal(t, ast.ArchetypeDatabase, Classify(serviceWithImage("custom-postgres-java")))
}
