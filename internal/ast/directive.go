package ast

import "github.com/athena-lang/athena/internal/diag"

// DirectiveKind tags the variant of a Directive. The validator and the
// emitter both dispatch on this tag; directives are never represented as
// opaque key/value strings (see DESIGN NOTES, "Polymorphic directives").
type DirectiveKind string

const (
	KindImage          DirectiveKind = "Image"
	KindPortMapping    DirectiveKind = "PortMapping"
	KindEnvVariable    DirectiveKind = "EnvVariable"
	KindCommand        DirectiveKind = "Command"
	KindVolumeMapping  DirectiveKind = "VolumeMapping"
	KindDependsOn      DirectiveKind = "DependsOn"
	KindHealthCheck    DirectiveKind = "HealthCheck"
	KindRestartPolicy  DirectiveKind = "RestartPolicy"
	KindResourceLimits DirectiveKind = "ResourceLimits"
	KindBuildArgs      DirectiveKind = "BuildArgs"
	KindReplicas       DirectiveKind = "Replicas"
	KindUpdateConfig   DirectiveKind = "UpdateConfig"
	KindSwarmLabels    DirectiveKind = "SwarmLabels"
)

// Directive is the tagged-union interface every SERVICE-block statement
// implements.
type Directive interface {
	Kind() DirectiveKind
	Span() diag.Span
}

type base struct {
	span diag.Span
}

func (b base) Span() diag.Span { return b.span }

// SetSpan widens a directive's span after more tokens have been consumed
// than were known when the directive value was first constructed (used by
// UPDATE-CONFIG, whose span grows with each optional field parsed).
func (b *base) SetSpan(s diag.Span) { b.span = s }

// ImageDirective is IMAGE-ID <image[:tag]>.
type ImageDirective struct {
	base
	Image string
}

func NewImage(span diag.Span, image string) *ImageDirective {
	return &ImageDirective{base{span}, image}
}
func (d *ImageDirective) Kind() DirectiveKind { return KindImage }

// PortMappingDirective is PORT-MAPPING <hostPort> TO <containerPort>.
type PortMappingDirective struct {
	base
	HostPort      int
	ContainerPort int
}

func NewPortMapping(span diag.Span, host, container int) *PortMappingDirective {
	return &PortMappingDirective{base{span}, host, container}
}
func (d *PortMappingDirective) Kind() DirectiveKind { return KindPortMapping }

// EnvVariableDirective is ENV-VARIABLE {{TEMPLATE_NAME}} or
// ENV-VARIABLE "NAME=value". In the template form the environment variable
// name is the identifier inside the braces; in the literal form the quoted
// "NAME=value" string is kept whole, without splitting name from value.
type EnvVariableDirective struct {
	base
	IsTemplate bool

	// TemplateName is set when IsTemplate is true.
	TemplateName string

	// Literal is the raw quoted-string payload when IsTemplate is false,
	// e.g. `NODE_ENV=production`.
	Literal string
}

func NewEnvTemplate(span diag.Span, name string) *EnvVariableDirective {
	return &EnvVariableDirective{base: base{span}, IsTemplate: true, TemplateName: name}
}
func NewEnvLiteral(span diag.Span, literal string) *EnvVariableDirective {
	return &EnvVariableDirective{base: base{span}, IsTemplate: false, Literal: literal}
}
func (d *EnvVariableDirective) Kind() DirectiveKind { return KindEnvVariable }

// CommandDirective is COMMAND "<quoted string>".
type CommandDirective struct {
	base
	Command string
}

func NewCommand(span diag.Span, command string) *CommandDirective {
	return &CommandDirective{base{span}, command}
}
func (d *CommandDirective) Kind() DirectiveKind { return KindCommand }

// VolumeMappingDirective is VOLUME-MAPPING <hostPath> TO <containerPath>.
type VolumeMappingDirective struct {
	base
	HostPath      string
	ContainerPath string
}

func NewVolumeMapping(span diag.Span, host, container string) *VolumeMappingDirective {
	return &VolumeMappingDirective{base{span}, host, container}
}
func (d *VolumeMappingDirective) Kind() DirectiveKind { return KindVolumeMapping }

// DependsOnDirective is DEPENDS-ON <service name>.
type DependsOnDirective struct {
	base
	ServiceName string
}

func NewDependsOn(span diag.Span, name string) *DependsOnDirective {
	return &DependsOnDirective{base{span}, name}
}
func (d *DependsOnDirective) Kind() DirectiveKind { return KindDependsOn }

// HealthCheckDirective is HEALTH-CHECK "<quoted command>".
type HealthCheckDirective struct {
	base
	Command string
}

func NewHealthCheck(span diag.Span, command string) *HealthCheckDirective {
	return &HealthCheckDirective{base{span}, command}
}
func (d *HealthCheckDirective) Kind() DirectiveKind { return KindHealthCheck }

// RestartPolicyDirective is RESTART-POLICY <no|always|on-failure|unless-stopped>.
type RestartPolicyDirective struct {
	base
	Policy string
}

func NewRestartPolicy(span diag.Span, policy string) *RestartPolicyDirective {
	return &RestartPolicyDirective{base{span}, policy}
}
func (d *RestartPolicyDirective) Kind() DirectiveKind { return KindRestartPolicy }

// ResourceLimitsDirective is RESOURCE-LIMITS <cpus> <memory>.
type ResourceLimitsDirective struct {
	base
	CPUs   string
	Memory string
}

func NewResourceLimits(span diag.Span, cpus, memory string) *ResourceLimitsDirective {
	return &ResourceLimitsDirective{base{span}, cpus, memory}
}
func (d *ResourceLimitsDirective) Kind() DirectiveKind { return KindResourceLimits }

// KV is one key/value pair of an ordered map directive payload.
type KV struct {
	Key   string
	Value string
}

// BuildArgsDirective is BUILD-ARGS <key> <value> (one pair per directive
// occurrence; all occurrences within a SERVICE block accumulate into one
// ordered map).
type BuildArgsDirective struct {
	base
	Args []KV
}

func NewBuildArgs(span diag.Span, args []KV) *BuildArgsDirective {
	return &BuildArgsDirective{base{span}, args}
}
func (d *BuildArgsDirective) Kind() DirectiveKind { return KindBuildArgs }

// ReplicasDirective is REPLICAS <non-negative integer>.
type ReplicasDirective struct {
	base
	Count int
}

func NewReplicas(span diag.Span, count int) *ReplicasDirective {
	return &ReplicasDirective{base{span}, count}
}
func (d *ReplicasDirective) Kind() DirectiveKind { return KindReplicas }

// UpdateConfigDirective is UPDATE-CONFIG with optional fields. Presence is
// tracked independently of zero values so the validator can tell "absent"
// from "explicitly zero".
type UpdateConfigDirective struct {
	base

	HasParallelism bool
	Parallelism    int

	HasDelay bool
	Delay    string

	HasFailureAction bool
	FailureAction    string

	HasMonitor bool
	Monitor    string

	HasMaxFailureRatio bool
	MaxFailureRatio    float64
}

func NewUpdateConfig(span diag.Span) *UpdateConfigDirective {
	return &UpdateConfigDirective{base: base{span}}
}
func (d *UpdateConfigDirective) Kind() DirectiveKind { return KindUpdateConfig }

// SwarmLabelsDirective is SWARM-LABELS <key> <value> (accumulates like
// BuildArgsDirective).
type SwarmLabelsDirective struct {
	base
	Labels []KV
}

func NewSwarmLabels(span diag.Span, labels []KV) *SwarmLabelsDirective {
	return &SwarmLabelsDirective{base{span}, labels}
}
func (d *SwarmLabelsDirective) Kind() DirectiveKind { return KindSwarmLabels }
