package validate

import (
	"regexp"
	"strconv"

	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/diag"
)

var memorySizePattern = regexp.MustCompile(`^\d+[KMG]$`)

var validRestartPolicies = map[string]bool{
	"no": true, "always": true, "on-failure": true, "unless-stopped": true,
}

var validFailureActions = map[string]bool{
	"continue": true, "pause": true, "rollback": true,
}

var validNetworkDrivers = map[ast.NetworkDriver]bool{
	ast.DriverBridge: true, ast.DriverOverlay: true, ast.DriverHost: true,
}

const maxReplicas = 10_000

// checkOptionValues implements §4.3 rule 5 together with the ShapeError
// checks the grammar cannot catch on its own (empty strings, identifier
// syntax on loosely-lexed keys). The parser (C2) only enforces token
// shape; every format/range/enum constraint from the Directive table
// lands here, in the semantic pass, where the full deployment is in view.
func checkOptionValues(dep *ast.Deployment, bag *diag.Bag) {
	checkNetworkOptions(dep, bag)
	for _, svc := range dep.Services {
		checkServiceOptions(svc, bag)
	}
}

func checkNetworkOptions(dep *ast.Deployment, bag *diag.Bag) {
	if dep.Environment == nil || dep.Environment.NetworkOptions == nil {
		return
	}
	opts := dep.Environment.NetworkOptions
	if !validNetworkDrivers[opts.Driver] {
		bag.Add(diag.New(diag.OptionError, opts.Span,
			"invalid network driver '"+string(opts.Driver)+"'; must be bridge, overlay, or host"))
	}
	if opts.Encrypted && opts.Driver != ast.DriverOverlay {
		bag.Add(diag.New(diag.OptionError, opts.Span,
			"encrypted networks require driver=overlay"))
	}
}

func checkServiceOptions(svc *ast.Service, bag *diag.Bag) {
	if img := svc.Image(); img != nil && img.Image == "" {
		bag.Add(diag.New(diag.ShapeError, img.Span(), "image value must not be empty").WithAffected(svc.Name))
	}

	if rp := svc.RestartPolicy(); rp != nil && !validRestartPolicies[rp.Policy] {
		bag.Add(diag.New(diag.OptionError, rp.Span(),
			"invalid restart policy '"+rp.Policy+"'; must be no, always, on-failure, or unless-stopped").
			WithAffected(svc.Name))
	}

	if cmd := svc.Command(); cmd != nil && cmd.Command == "" {
		bag.Add(diag.New(diag.ShapeError, cmd.Span(), "command must not be empty").WithAffected(svc.Name))
	}

	if hc := svc.HealthCheck(); hc != nil && hc.Command == "" {
		bag.Add(diag.New(diag.ShapeError, hc.Span(), "health check command must not be empty").WithAffected(svc.Name))
	}

	for _, v := range svc.VolumeMappings() {
		if v.HostPath == "" || v.ContainerPath == "" {
			bag.Add(diag.New(diag.ShapeError, v.Span(), "volume mapping paths must not be empty").WithAffected(svc.Name))
		}
	}

	if rl := svc.ResourceLimits(); rl != nil {
		checkResourceLimits(svc, rl, bag)
	}

	if rep := svc.Replicas(); rep != nil {
		if rep.Count < 0 || rep.Count > maxReplicas {
			bag.Add(diag.New(diag.OptionError, rep.Span(),
				"replicas must be between 0 and 10000").WithAffected(svc.Name))
		}
	}

	if uc := svc.UpdateConfig(); uc != nil {
		checkUpdateConfig(svc, uc, bag)
	}

	checkOrderedKeys(svc, "build arg", svc.BuildArgs(), bag)
	checkOrderedKeys(svc, "swarm label", svc.SwarmLabels(), bag)
}

func checkResourceLimits(svc *ast.Service, rl *ast.ResourceLimitsDirective, bag *diag.Bag) {
	cpus, err := strconv.ParseFloat(rl.CPUs, 64)
	if err != nil || cpus <= 0 {
		bag.Add(diag.New(diag.OptionError, rl.Span(),
			"cpus must be a positive decimal number, got '"+rl.CPUs+"'").WithAffected(svc.Name))
	}
	if !memorySizePattern.MatchString(rl.Memory) {
		bag.Add(diag.New(diag.OptionError, rl.Span(),
			`memory must match \d+[KMG], got '`+rl.Memory+"'").WithAffected(svc.Name))
	}
}

func checkUpdateConfig(svc *ast.Service, uc *ast.UpdateConfigDirective, bag *diag.Bag) {
	if uc.HasParallelism && uc.Parallelism < 0 {
		bag.Add(diag.New(diag.OptionError, uc.Span(), "parallelism must be >= 0").WithAffected(svc.Name))
	}
	if uc.HasFailureAction && !validFailureActions[uc.FailureAction] {
		bag.Add(diag.New(diag.OptionError, uc.Span(),
			"invalid failure action '"+uc.FailureAction+"'; must be continue, pause, or rollback").
			WithAffected(svc.Name))
	}
	if uc.HasMaxFailureRatio && (uc.MaxFailureRatio < 0.0 || uc.MaxFailureRatio > 1.0) {
		bag.Add(diag.New(diag.OptionError, uc.Span(),
			"max failure ratio must be between 0.0 and 1.0").WithAffected(svc.Name))
	}
}

// checkOrderedKeys validates identifier syntax and per-service uniqueness
// for BuildArgs/SwarmLabels ordered-map keys.
func checkOrderedKeys(svc *ast.Service, label string, kvs []ast.KV, bag *diag.Bag) {
	seen := map[string]bool{}
	for _, kv := range kvs {
		if !isIdentifier(kv.Key) {
			bag.Add(diag.New(diag.ShapeError, svc.Span,
				label+" key '"+kv.Key+"' is not a valid identifier").WithAffected(svc.Name))
			continue
		}
		if seen[kv.Key] {
			bag.Add(diag.New(diag.DuplicateError, svc.Span,
				"duplicate "+label+" key '"+kv.Key+"'").WithAffected(svc.Name))
			continue
		}
		seen[kv.Key] = true
	}
}
