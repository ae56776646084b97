// Package archetype implements Athena's archetype classifier (C5): a
// pure function from a service's image name to its inferred functional
// category, consumed by the defaults engine (C6).
package archetype

import (
	"strings"

	"github.com/athena-lang/athena/internal/ast"
)

// rule pairs an archetype with the ordered substrings that select it.
// Implemented as an explicit table, not scattered conditionals, mirroring
// the defaults engine's rule-table discipline (see DESIGN NOTES).
type rule struct {
	archetype ast.Archetype
	matches   []string
}

var rules = []rule{
	{ast.ArchetypeDatabase, []string{"postgres", "mysql", "mongodb", "mongo", "mariadb"}},
	{ast.ArchetypeCache, []string{"redis", "memcached"}},
	{ast.ArchetypeProxy, []string{"nginx", "apache", "traefik", "haproxy"}},
	{ast.ArchetypeWebapp, []string{"node", "python", "php", "ruby", "java", "golang", "go", "openjdk"}},
}

// Classify infers a service's archetype from its Image directive. A
// service with no Image directive (a Dockerfile build) is always
// "generic". Ties are broken by first match in the rule table, per the
// match table's declared ordering.
func Classify(svc *ast.Service) ast.Archetype {
	img := svc.Image()
	if img == nil || img.Image == "" {
		return ast.ArchetypeGeneric
	}
	name := imageName(img.Image)

	for _, r := range rules {
		for _, m := range r.matches {
			if strings.Contains(name, m) {
				return r.archetype
			}
		}
	}
	return ast.ArchetypeGeneric
}

// imageName extracts the part of an image reference before the tag
// separator and lowercases it for case-insensitive matching. Registry
// hosts and paths are left intact, which is fine here because the
// rule-table substrings match anywhere within the name.
func imageName(image string) string {
	name := image
	if idx := strings.LastIndex(name, ":"); idx != -1 && idx > strings.LastIndex(name, "/") {
		name = name[:idx]
	}
	return strings.ToLower(name)
}
