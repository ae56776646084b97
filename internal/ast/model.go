package ast

import "github.com/athena-lang/athena/internal/diag"

// Deployment is the root entity of a parsed source file. Exactly one
// exists per file; it exclusively owns its Services and their
// Directives/Enrichment, and cross-references between services are by
// name, never by direct reference, so the model stays a pure tree (see
// DESIGN NOTES, "Service cross-references").
type Deployment struct {
	Span        diag.Span
	ID          string
	Version     string
	Environment *EnvironmentBlock
	Services    []*Service

	// byName is built once after parsing for O(1) lookups; it is not
	// itself part of the model's public shape.
	byName map[string]*Service
}

// Index builds (or rebuilds) the name->service lookup table. The parser
// calls this once after constructing the Deployment.
func (d *Deployment) Index() {
	d.byName = make(map[string]*Service, len(d.Services))
	for _, svc := range d.Services {
		d.byName[svc.Name] = svc
	}
}

// Service looks up a service by name, returning (nil, false) if absent.
func (d *Deployment) Service(name string) (*Service, bool) {
	if d.byName == nil {
		d.Index()
	}
	svc, ok := d.byName[name]
	return svc, ok
}

// NetworkDriver enumerates the supported Compose network drivers.
type NetworkDriver string

const (
	DriverBridge  NetworkDriver = "bridge"
	DriverOverlay NetworkDriver = "overlay"
	DriverHost    NetworkDriver = "host"
)

// NetworkOptions is the optional ENVIRONMENT SECTION network configuration.
type NetworkOptions struct {
	Span       diag.Span
	Driver     NetworkDriver
	Attachable bool
	Encrypted  bool
}

// EnvironmentBlock is the optional ENVIRONMENT SECTION.
type EnvironmentBlock struct {
	Span           diag.Span
	NetworkName    string
	NetworkOptions *NetworkOptions
}

// Service is one SERVICE ... END SERVICE block.
type Service struct {
	Span       diag.Span
	Name       string
	Directives []Directive

	// SourceLine is the line the SERVICE keyword appeared on; the
	// dependency sorter breaks ties by this value.
	SourceLine int

	Enrichment *Enrichment
}

// Image returns the service's ImageDirective, or nil if it has none
// (a Dockerfile-build service).
func (s *Service) Image() *ImageDirective {
	for _, d := range s.Directives {
		if img, ok := d.(*ImageDirective); ok {
			return img
		}
	}
	return nil
}

// DependsOn returns every DependsOnDirective on the service, in
// declaration order.
func (s *Service) DependsOn() []*DependsOnDirective {
	var out []*DependsOnDirective
	for _, d := range s.Directives {
		if dep, ok := d.(*DependsOnDirective); ok {
			out = append(out, dep)
		}
	}
	return out
}

// PortMappings returns every PortMappingDirective on the service, in
// declaration order.
func (s *Service) PortMappings() []*PortMappingDirective {
	var out []*PortMappingDirective
	for _, d := range s.Directives {
		if p, ok := d.(*PortMappingDirective); ok {
			out = append(out, p)
		}
	}
	return out
}

// BuildArgs returns the merged ordered map of every BuildArgsDirective on
// the service.
func (s *Service) BuildArgs() []KV {
	var out []KV
	for _, d := range s.Directives {
		if b, ok := d.(*BuildArgsDirective); ok {
			out = append(out, b.Args...)
		}
	}
	return out
}

// SwarmLabels returns the merged ordered map of every SwarmLabelsDirective
// on the service.
func (s *Service) SwarmLabels() []KV {
	var out []KV
	for _, d := range s.Directives {
		if l, ok := d.(*SwarmLabelsDirective); ok {
			out = append(out, l.Labels...)
		}
	}
	return out
}

// RestartPolicy returns the explicit RestartPolicyDirective, if any.
func (s *Service) RestartPolicy() *RestartPolicyDirective {
	for _, d := range s.Directives {
		if r, ok := d.(*RestartPolicyDirective); ok {
			return r
		}
	}
	return nil
}

// HealthCheck returns the explicit HealthCheckDirective, if any.
func (s *Service) HealthCheck() *HealthCheckDirective {
	for _, d := range s.Directives {
		if h, ok := d.(*HealthCheckDirective); ok {
			return h
		}
	}
	return nil
}

// ResourceLimits returns the explicit ResourceLimitsDirective, if any.
func (s *Service) ResourceLimits() *ResourceLimitsDirective {
	for _, d := range s.Directives {
		if r, ok := d.(*ResourceLimitsDirective); ok {
			return r
		}
	}
	return nil
}

// Replicas returns the explicit ReplicasDirective, if any.
func (s *Service) Replicas() *ReplicasDirective {
	for _, d := range s.Directives {
		if r, ok := d.(*ReplicasDirective); ok {
			return r
		}
	}
	return nil
}

// UpdateConfig returns the explicit UpdateConfigDirective, if any.
func (s *Service) UpdateConfig() *UpdateConfigDirective {
	for _, d := range s.Directives {
		if u, ok := d.(*UpdateConfigDirective); ok {
			return u
		}
	}
	return nil
}

// EnvVariables returns every EnvVariableDirective on the service, in
// declaration order.
func (s *Service) EnvVariables() []*EnvVariableDirective {
	var out []*EnvVariableDirective
	for _, d := range s.Directives {
		if e, ok := d.(*EnvVariableDirective); ok {
			out = append(out, e)
		}
	}
	return out
}

// VolumeMappings returns every VolumeMappingDirective on the service, in
// declaration order.
func (s *Service) VolumeMappings() []*VolumeMappingDirective {
	var out []*VolumeMappingDirective
	for _, d := range s.Directives {
		if v, ok := d.(*VolumeMappingDirective); ok {
			out = append(out, v)
		}
	}
	return out
}

// Command returns the explicit CommandDirective, if any.
func (s *Service) Command() *CommandDirective {
	for _, d := range s.Directives {
		if c, ok := d.(*CommandDirective); ok {
			return c
		}
	}
	return nil
}
