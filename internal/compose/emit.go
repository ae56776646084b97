// Package compose implements Athena's Compose emitter (C8). It builds a
// *yaml.Node document tree directly, in the exact key order §4.7 demands,
// rather than parsing then reordering — the model already carries the
// only order that matters, so there is nothing to sort (contrast the
// parse-and-reorder idiom this emitter descends from, see DESIGN NOTES).
package compose

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/athena-lang/athena/internal/ast"
)

const indentWidth = 2

// Emit renders dep into Compose YAML text. order is the dependency-sorted
// service list from depsort.Sort; it determines the order services
// entries appear in, which is itself part of the determinism contract.
func Emit(dep *ast.Deployment, order []*ast.Service) (string, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode}
	root := mapping(
		kv{"name", plainScalar(dep.ID)},
		kv{"services", servicesNode(order)},
		kv{"networks", networksNode(dep)},
		kv{"volumes", volumesNode(order)},
	)
	doc.Content = []*yaml.Node{root}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indentWidth)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode compose document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("close compose encoder: %w", err)
	}
	return buf.String(), nil
}

func servicesNode(order []*ast.Service) *yaml.Node {
	n := emptyMapping()
	for _, svc := range order {
		n.Content = append(n.Content, plainScalar(svc.Name), serviceBody(svc))
	}
	return n
}

// serviceBody builds one service's mapping in the exact field order
// §4.7 specifies: image (or build), container_name, ports, environment,
// volumes, depends_on, command, restart, healthcheck, deploy, labels,
// pull_policy, networks. Any field with nothing to say is omitted
// entirely rather than emitted empty.
func serviceBody(svc *ast.Service) *yaml.Node {
	e := svc.Enrichment
	var pairs []kv

	if img := svc.Image(); img != nil {
		pairs = append(pairs, kv{"image", plainScalar(img.Image)})
	} else if e.UsesBuildContext {
		pairs = append(pairs, kv{"build", buildNode(e.Build)})
	}

	pairs = append(pairs, kv{"container_name", plainScalar(e.ContainerName)})

	if ports := portsNode(svc); ports != nil {
		pairs = append(pairs, kv{"ports", ports})
	}
	if env := environmentNode(svc); env != nil {
		pairs = append(pairs, kv{"environment", env})
	}
	if vols := volumeMappingsNode(svc); vols != nil {
		pairs = append(pairs, kv{"volumes", vols})
	}
	if deps := dependsOnNode(svc); deps != nil {
		pairs = append(pairs, kv{"depends_on", deps})
	}
	if cmd := svc.Command(); cmd != nil {
		pairs = append(pairs, kv{"command", quotedScalar(cmd.Command)})
	}

	pairs = append(pairs, kv{"restart", plainScalar(e.EffectiveRestart)})
	pairs = append(pairs, kv{"healthcheck", healthcheckNode(e.EffectiveHealthCheck)})

	if deploy := deployNode(svc); deploy != nil {
		pairs = append(pairs, kv{"deploy", deploy})
	}

	pairs = append(pairs, kv{"labels", labelsNode(e.SynthesizedLabels)})
	pairs = append(pairs, kv{"pull_policy", plainScalar(e.PullPolicy)})
	pairs = append(pairs, kv{"networks", stringSeq(e.NetworkMemberships)})

	return mapping(pairs...)
}

func buildNode(b ast.BuildConfig) *yaml.Node {
	pairs := []kv{
		{"context", plainScalar(b.Context)},
		{"dockerfile", plainScalar(b.Dockerfile)},
	}
	if len(b.Args) > 0 {
		pairs = append(pairs, kv{"args", kvMapping(b.Args)})
	}
	return mapping(pairs...)
}

func portsNode(svc *ast.Service) *yaml.Node {
	pms := svc.PortMappings()
	if len(pms) == 0 {
		return nil
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, pm := range pms {
		n.Content = append(n.Content, quotedScalar(
			strconv.Itoa(pm.HostPort)+":"+strconv.Itoa(pm.ContainerPort)))
	}
	return n
}

// environmentNode renders each EnvVariableDirective as a single
// "NAME=VALUE" string: templated entries substitute ${NAME}, literal
// entries emit their quoted "NAME=value" payload unchanged.
func environmentNode(svc *ast.Service) *yaml.Node {
	vars := svc.EnvVariables()
	if len(vars) == 0 {
		return nil
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range vars {
		if v.IsTemplate {
			n.Content = append(n.Content, quotedScalar(v.TemplateName+"=${"+v.TemplateName+"}"))
			continue
		}
		n.Content = append(n.Content, quotedScalar(v.Literal))
	}
	return n
}

func volumeMappingsNode(svc *ast.Service) *yaml.Node {
	vms := svc.VolumeMappings()
	if len(vms) == 0 {
		return nil
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range vms {
		n.Content = append(n.Content, quotedScalar(v.HostPath+":"+v.ContainerPath))
	}
	return n
}

func dependsOnNode(svc *ast.Service) *yaml.Node {
	deps := svc.DependsOn()
	if len(deps) == 0 {
		return nil
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, d := range deps {
		n.Content = append(n.Content, plainScalar(d.ServiceName))
	}
	return n
}

func healthcheckNode(hc ast.HealthCheckSpec) *yaml.Node {
	return mapping(
		kv{"test", quotedScalar(hc.Test)},
		kv{"interval", plainScalar(hc.Interval)},
		kv{"timeout", plainScalar(hc.Timeout)},
		kv{"retries", intScalar(hc.Retries)},
		kv{"start_period", plainScalar(hc.StartPeriod)},
	)
}

// deployNode builds the deploy.* block from explicit Replicas/UpdateConfig
// directives, the effective resource defaults, and any SwarmLabels, which
// merge into deploy-level labels separately from the service's own
// synthesized labels (§4.5 "Labels"). Returns nil when none of those are
// present, so a service with none of them emits no deploy key at all.
func deployNode(svc *ast.Service) *yaml.Node {
	var pairs []kv

	if rep := svc.Replicas(); rep != nil {
		pairs = append(pairs, kv{"replicas", intScalar(rep.Count)})
	}

	if resources := resourcesNode(svc); resources != nil {
		pairs = append(pairs, kv{"resources", resources})
	}

	if uc := svc.UpdateConfig(); uc != nil {
		pairs = append(pairs, kv{"update_config", updateConfigNode(uc)})
	}

	if labels := svc.SwarmLabels(); len(labels) > 0 {
		pairs = append(pairs, kv{"labels", kvMapping(labels)})
	}

	if len(pairs) == 0 {
		return nil
	}
	return mapping(pairs...)
}

func resourcesNode(svc *ast.Service) *yaml.Node {
	if rl := svc.ResourceLimits(); rl != nil {
		return mapping(kv{"limits", mapping(
			kv{"cpus", quotedScalar(rl.CPUs)},
			kv{"memory", plainScalar(rl.Memory)},
		)})
	}
	rd := svc.Enrichment.ResourceDefaults
	if !rd.Set {
		return nil
	}
	return mapping(kv{"limits", mapping(
		kv{"cpus", quotedScalar(rd.CPUs)},
		kv{"memory", plainScalar(rd.Memory)},
	)})
}

func updateConfigNode(uc *ast.UpdateConfigDirective) *yaml.Node {
	var pairs []kv
	if uc.HasParallelism {
		pairs = append(pairs, kv{"parallelism", intScalar(uc.Parallelism)})
	}
	if uc.HasDelay {
		pairs = append(pairs, kv{"delay", plainScalar(uc.Delay)})
	}
	if uc.HasFailureAction {
		pairs = append(pairs, kv{"failure_action", plainScalar(uc.FailureAction)})
	}
	if uc.HasMonitor {
		pairs = append(pairs, kv{"monitor", plainScalar(uc.Monitor)})
	}
	if uc.HasMaxFailureRatio {
		pairs = append(pairs, kv{"max_failure_ratio", quotedScalar(strconv.FormatFloat(uc.MaxFailureRatio, 'f', -1, 64))})
	}
	return mapping(pairs...)
}

func labelsNode(labels []ast.KV) *yaml.Node {
	return kvMapping(labels)
}

func kvMapping(kvs []ast.KV) *yaml.Node {
	n := emptyMapping()
	for _, pair := range kvs {
		n.Content = append(n.Content, plainScalar(pair.Key), plainScalar(pair.Value))
	}
	return n
}

func stringSeq(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		n.Content = append(n.Content, plainScalar(v))
	}
	return n
}

// networksNode emits the deployment's single network, keyed by name, with
// its configured driver (bridge by default) and options.
func networksNode(dep *ast.Deployment) *yaml.Node {
	name := strings.ToLower(dep.ID) + "_network"
	driver := ast.DriverBridge
	var attachable, encrypted bool
	hasOptions := false

	if dep.Environment != nil {
		if dep.Environment.NetworkName != "" {
			name = dep.Environment.NetworkName
		}
		if opts := dep.Environment.NetworkOptions; opts != nil {
			driver = opts.Driver
			attachable = opts.Attachable
			encrypted = opts.Encrypted
			hasOptions = true
		}
	}

	pairs := []kv{{"driver", plainScalar(string(driver))}}
	if hasOptions {
		pairs = append(pairs, kv{"attachable", boolScalar(attachable)})
		pairs = append(pairs, kv{"encrypted", boolScalar(encrypted)})
	}

	return mapping(kv{name, mapping(pairs...)})
}

// volumesNode collects every VolumeMapping host side across all services
// that names a Compose-managed volume rather than a filesystem path (no
// leading "/" or "."), deduplicated and sorted, per §4.7 rule 4.
func volumesNode(order []*ast.Service) *yaml.Node {
	seen := map[string]bool{}
	var names []string
	for _, svc := range order {
		for _, v := range svc.VolumeMappings() {
			if isNamedVolume(v.HostPath) && !seen[v.HostPath] {
				seen[v.HostPath] = true
				names = append(names, v.HostPath)
			}
		}
	}
	sort.Strings(names)

	n := emptyMapping()
	for _, name := range names {
		n.Content = append(n.Content, plainScalar(name), emptyMapping())
	}
	return n
}

func isNamedVolume(hostPath string) bool {
	return hostPath != "" && !strings.HasPrefix(hostPath, "/") && !strings.HasPrefix(hostPath, ".")
}
