package ast

// Archetype is the inferred functional category of a service, used by the
// defaults engine to select restart policy, healthcheck, and resource
// defaults.
type Archetype string

const (
	ArchetypeDatabase Archetype = "database"
	ArchetypeCache    Archetype = "cache"
	ArchetypeProxy    Archetype = "proxy"
	ArchetypeWebapp   Archetype = "webapp"
	ArchetypeGeneric  Archetype = "generic"
)

// HealthCheckSpec is the effective, fully-resolved healthcheck for a
// service: either synthesized from the archetype table or wrapping an
// explicit HealthCheckDirective with archetype-specific timing.
type HealthCheckSpec struct {
	Test        string
	Interval    string
	Timeout     string
	Retries     int
	StartPeriod string
}

// ResourceDefaults is the effective CPU/memory limit for a service.
// Zero value means "unset" (no deploy.resources block emitted).
type ResourceDefaults struct {
	Set     bool
	CPUs    string
	Memory  string
}

// BuildConfig is the effective build context when a service has no Image
// directive.
type BuildConfig struct {
	Context    string
	Dockerfile string
	Args       []KV
}

// Enrichment is the derived per-service data the defaults engine (C6)
// attaches after semantic validation succeeds. It is never mutated again;
// the dependency sorter only reorders Services, it does not touch
// Enrichment.
type Enrichment struct {
	Archetype            Archetype
	EffectiveRestart      string
	EffectiveHealthCheck  HealthCheckSpec
	ResourceDefaults      ResourceDefaults
	SynthesizedLabels     []KV
	UsesBuildContext      bool
	Build                 BuildConfig
	NetworkMemberships    []string
	ContainerName         string
	PullPolicy            string

	// BuildArgsWithoutImageNote records the non-error note from §4.3 rule
	// 6: BuildArgs present but no Image directive, which is expected (the
	// service builds from a Dockerfile) and not itself a problem. It is
	// recorded here only; no diagnostic is produced for it.
	BuildArgsWithoutImageNote bool
}
