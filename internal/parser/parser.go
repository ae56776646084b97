// Package parser implements Athena's grammar-driven recursive-descent
// parser (C2): it tokenizes via internal/lexer and lowers the concrete
// token stream directly into the typed internal/ast model, attaching a
// source span to every node from its constituent terminals. No
// off-the-shelf parser generator is wired (see DESIGN.md): the grammar is
// small and line-based, and DESIGN NOTES explicitly sanctions a
// hand-written recursive-descent parser as the alternative to a PEG
// generator.
package parser

import (
	"strconv"

	"github.com/athena-lang/athena/internal/ast"
	"github.com/athena-lang/athena/internal/diag"
	"github.com/athena-lang/athena/internal/lexer"
)

// Parser holds the token stream for a single source file.
type Parser struct {
	file string
	toks []lexer.Token
	pos  int
}

// Parse tokenizes and parses source text into a Deployment. It returns
// the first diagnostic encountered; the parser never tries to recover and
// continue past a grammar failure (§4.2's error contract wants precise
// line/column on the first defect, not a pile of cascading ones).
func Parse(file, source string) (*ast.Deployment, error) {
	lx := lexer.New(file, source)
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{file: file, toks: toks}
	dep, err := p.parseDeployment()
	if err != nil {
		return nil, err
	}
	dep.Index()
	return dep, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == lexer.EOF }

func (p *Parser) isWord(v string) bool {
	t := p.cur()
	return t.Kind == lexer.Word && t.Value == v
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == lexer.Newline {
		p.advance()
	}
}

// expectWord consumes the current token iff it is a Word with value v.
func (p *Parser) expectWord(v string) (lexer.Token, bool) {
	if p.isWord(v) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

// lastSpan returns the span of the most recently consumed token, used to
// anchor "unexpected EOF" diagnostics on the last real content.
func (p *Parser) lastSpan() diag.Span {
	if p.pos == 0 {
		return diag.Span{File: p.file, StartLine: 1, StartCol: 1}
	}
	return p.toks[p.pos-1].Span
}

func (p *Parser) parseDeployment() (*ast.Deployment, error) {
	p.skipNewlines()

	kw, ok := p.expectWord("DEPLOYMENT-ID")
	if !ok {
		return nil, fail(ctxMissingDeploymentID, p.cur().Span, "Missing DEPLOYMENT-ID declaration")
	}
	idTok := p.cur()
	if idTok.Kind != lexer.Word {
		return nil, fail(ctxMissingDeploymentID, kw.Span, "Missing DEPLOYMENT-ID declaration")
	}
	p.advance()

	dep := &ast.Deployment{
		Span: kw.Span,
		ID:   idTok.Value,
	}
	p.skipNewlines()

	if _, ok := p.expectWord("VERSION-ID"); ok {
		vtok := p.cur()
		if vtok.Kind == lexer.Word || vtok.Kind == lexer.Number || vtok.Kind == lexer.String {
			p.advance()
			dep.Version = vtok.Value
		}
		p.skipNewlines()
	}

	if p.isWord("ENVIRONMENT") {
		env, err := p.parseEnvironmentSection()
		if err != nil {
			return nil, err
		}
		dep.Environment = env
	}

	if _, ok := p.expectWord("SERVICES"); !ok {
		return nil, fail(ctxMissingServicesSection, p.cur().Span, "Missing SERVICES SECTION")
	}
	if _, ok := p.expectWord("SECTION"); !ok {
		return nil, fail(ctxMissingServicesSection, p.cur().Span, "Missing SERVICES SECTION")
	}
	p.skipNewlines()

	for p.isWord("SERVICE") {
		svc, err := p.parseService()
		if err != nil {
			return nil, err
		}
		dep.Services = append(dep.Services, svc)
		p.skipNewlines()
	}

	return dep, nil
}

func (p *Parser) parseEnvironmentSection() (*ast.EnvironmentBlock, error) {
	start := p.advance() // ENVIRONMENT
	if _, ok := p.expectWord("SECTION"); !ok {
		return nil, fail(ctxGeneric, p.cur().Span, "Expected SECTION after ENVIRONMENT")
	}
	p.skipNewlines()

	env := &ast.EnvironmentBlock{Span: start.Span}

	for p.isWord("NETWORK-NAME") || p.isWord("NETWORK-OPTIONS") {
		switch {
		case p.isWord("NETWORK-NAME"):
			p.advance()
			nameTok := p.cur()
			if nameTok.Kind != lexer.Word {
				return nil, fail(ctxGeneric, nameTok.Span, "Invalid NETWORK-NAME value")
			}
			p.advance()
			env.NetworkName = nameTok.Value
		case p.isWord("NETWORK-OPTIONS"):
			optStart := p.advance()
			driverTok := p.cur()
			if driverTok.Kind != lexer.Word {
				return nil, fail(ctxGeneric, driverTok.Span, "Invalid NETWORK-OPTIONS value")
			}
			p.advance()
			attachTok := p.cur()
			if attachTok.Kind != lexer.Word {
				return nil, fail(ctxGeneric, attachTok.Span, "Invalid NETWORK-OPTIONS value")
			}
			p.advance()
			encTok := p.cur()
			if encTok.Kind != lexer.Word {
				return nil, fail(ctxGeneric, encTok.Span, "Invalid NETWORK-OPTIONS value")
			}
			p.advance()
			env.NetworkOptions = &ast.NetworkOptions{
				Span:       optStart.Span,
				Driver:     ast.NetworkDriver(driverTok.Value),
				Attachable: attachTok.Value == "true",
				Encrypted:  encTok.Value == "true",
			}
		}
		p.skipNewlines()
	}

	return env, nil
}

func (p *Parser) parseService() (*ast.Service, error) {
	kw := p.advance() // SERVICE
	nameTok := p.cur()
	if nameTok.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Missing service name after SERVICE")
	}
	p.advance()
	p.skipNewlines()

	svc := &ast.Service{
		Span:       kw.Span,
		Name:       nameTok.Value,
		SourceLine: kw.Span.StartLine,
	}

	for {
		if p.isWord("END") {
			p.advance()
			if _, ok := p.expectWord("SERVICE"); !ok {
				return nil, fail(ctxMissingEndService, p.lastSpan(), "Missing 'END SERVICE' statement")
			}
			return svc, nil
		}
		if p.atEOF() {
			return nil, fail(ctxMissingEndService, p.lastSpan(), "Missing 'END SERVICE' statement")
		}

		d, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		svc.Directives = append(svc.Directives, d)
		p.skipNewlines()
	}
}

var directiveKeywords = []string{
	"IMAGE-ID", "PORT-MAPPING", "ENV-VARIABLE", "COMMAND", "VOLUME-MAPPING",
	"DEPENDS-ON", "HEALTH-CHECK", "RESTART-POLICY", "RESOURCE-LIMITS",
	"BUILD-ARGS", "REPLICAS", "UPDATE-CONFIG", "SWARM-LABELS",
}

func (p *Parser) parseDirective() (ast.Directive, error) {
	kw := p.cur()
	if kw.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Expected a directive keyword")
	}
	switch kw.Value {
	case "IMAGE-ID":
		return p.parseImage()
	case "PORT-MAPPING":
		return p.parsePortMapping()
	case "ENV-VARIABLE":
		return p.parseEnvVariable()
	case "COMMAND":
		return p.parseCommand()
	case "VOLUME-MAPPING":
		return p.parseVolumeMapping()
	case "DEPENDS-ON":
		return p.parseDependsOn()
	case "HEALTH-CHECK":
		return p.parseHealthCheck()
	case "RESTART-POLICY":
		return p.parseRestartPolicy()
	case "RESOURCE-LIMITS":
		return p.parseResourceLimits()
	case "BUILD-ARGS":
		return p.parseBuildArgs()
	case "REPLICAS":
		return p.parseReplicas()
	case "UPDATE-CONFIG":
		return p.parseUpdateConfig()
	case "SWARM-LABELS":
		return p.parseSwarmLabels()
	default:
		return nil, fail(ctxGeneric, kw.Span, "Unknown directive '"+kw.Value+"'")
	}
}

func (p *Parser) parseImage() (ast.Directive, error) {
	kw := p.advance()
	val := p.cur()
	if val.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Invalid IMAGE-ID value")
	}
	p.advance()
	return ast.NewImage(mergeSpan(kw.Span, val.Span), val.Value), nil
}

func (p *Parser) parsePortMapping() (ast.Directive, error) {
	kw := p.advance()
	host := p.cur()
	if host.Kind != lexer.Number {
		return nil, fail(ctxPortMappingShape, kw.Span, "Invalid port mapping format")
	}
	p.advance()
	if _, ok := p.expectWord("TO"); !ok {
		return nil, fail(ctxPortMappingShape, host.Span, "Invalid port mapping format")
	}
	container := p.cur()
	if container.Kind != lexer.Number {
		return nil, fail(ctxPortMappingShape, host.Span, "Invalid port mapping format")
	}
	p.advance()

	hostN, err1 := strconv.Atoi(host.Value)
	containerN, err2 := strconv.Atoi(container.Value)
	if err1 != nil || err2 != nil {
		return nil, fail(ctxPortMappingShape, host.Span, "Invalid port mapping format")
	}
	return ast.NewPortMapping(mergeSpan(kw.Span, container.Span), hostN, containerN), nil
}

func (p *Parser) parseEnvVariable() (ast.Directive, error) {
	kw := p.advance()
	val := p.cur()
	switch val.Kind {
	case lexer.Template:
		if !isIdentifier(val.Value) {
			return nil, fail(ctxEnvVariableShape, kw.Span, "Invalid environment variable format")
		}
		p.advance()
		return ast.NewEnvTemplate(mergeSpan(kw.Span, val.Span), val.Value), nil
	case lexer.String:
		if val.Value == "" {
			return nil, fail(ctxEnvVariableShape, kw.Span, "Invalid environment variable format")
		}
		p.advance()
		return ast.NewEnvLiteral(mergeSpan(kw.Span, val.Span), val.Value), nil
	default:
		return nil, fail(ctxEnvVariableShape, kw.Span, "Invalid environment variable format")
	}
}

func (p *Parser) parseCommand() (ast.Directive, error) {
	kw := p.advance()
	val := p.cur()
	if val.Kind != lexer.String {
		return nil, fail(ctxGeneric, kw.Span, "Invalid COMMAND format")
	}
	p.advance()
	return ast.NewCommand(mergeSpan(kw.Span, val.Span), val.Value), nil
}

func (p *Parser) parseVolumeMapping() (ast.Directive, error) {
	kw := p.advance()
	host := p.cur()
	if host.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Invalid volume mapping format")
	}
	p.advance()
	if _, ok := p.expectWord("TO"); !ok {
		return nil, fail(ctxGeneric, host.Span, "Invalid volume mapping format")
	}
	container := p.cur()
	if container.Kind != lexer.Word {
		return nil, fail(ctxGeneric, host.Span, "Invalid volume mapping format")
	}
	p.advance()
	return ast.NewVolumeMapping(mergeSpan(kw.Span, container.Span), host.Value, container.Value), nil
}

func (p *Parser) parseDependsOn() (ast.Directive, error) {
	kw := p.advance()
	val := p.cur()
	if val.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Invalid DEPENDS-ON value")
	}
	p.advance()
	return ast.NewDependsOn(mergeSpan(kw.Span, val.Span), val.Value), nil
}

func (p *Parser) parseHealthCheck() (ast.Directive, error) {
	kw := p.advance()
	val := p.cur()
	if val.Kind != lexer.String {
		return nil, fail(ctxGeneric, kw.Span, "Invalid HEALTH-CHECK format")
	}
	p.advance()
	return ast.NewHealthCheck(mergeSpan(kw.Span, val.Span), val.Value), nil
}

func (p *Parser) parseRestartPolicy() (ast.Directive, error) {
	kw := p.advance()
	val := p.cur()
	if val.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Invalid RESTART-POLICY value")
	}
	p.advance()
	return ast.NewRestartPolicy(mergeSpan(kw.Span, val.Span), val.Value), nil
}

func (p *Parser) parseResourceLimits() (ast.Directive, error) {
	kw := p.advance()
	cpus := p.cur()
	if cpus.Kind != lexer.Number {
		return nil, fail(ctxGeneric, kw.Span, "Invalid RESOURCE-LIMITS format")
	}
	p.advance()
	mem := p.cur()
	if mem.Kind != lexer.Number {
		return nil, fail(ctxGeneric, kw.Span, "Invalid RESOURCE-LIMITS format")
	}
	p.advance()
	return ast.NewResourceLimits(mergeSpan(kw.Span, mem.Span), cpus.Value, mem.Value), nil
}

func (p *Parser) parseKVValue() (lexer.Token, bool) {
	t := p.cur()
	if t.Kind == lexer.Word || t.Kind == lexer.String || t.Kind == lexer.Number {
		p.advance()
		return t, true
	}
	return lexer.Token{}, false
}

func (p *Parser) parseBuildArgs() (ast.Directive, error) {
	kw := p.advance()
	key := p.cur()
	if key.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Invalid BUILD-ARGS format")
	}
	p.advance()
	val, ok := p.parseKVValue()
	if !ok {
		return nil, fail(ctxGeneric, kw.Span, "Invalid BUILD-ARGS format")
	}
	return ast.NewBuildArgs(mergeSpan(kw.Span, val.Span), []ast.KV{{Key: key.Value, Value: val.Value}}), nil
}

func (p *Parser) parseSwarmLabels() (ast.Directive, error) {
	kw := p.advance()
	key := p.cur()
	if key.Kind != lexer.Word {
		return nil, fail(ctxGeneric, kw.Span, "Invalid SWARM-LABELS format")
	}
	p.advance()
	val, ok := p.parseKVValue()
	if !ok {
		return nil, fail(ctxGeneric, kw.Span, "Invalid SWARM-LABELS format")
	}
	return ast.NewSwarmLabels(mergeSpan(kw.Span, val.Span), []ast.KV{{Key: key.Value, Value: val.Value}}), nil
}

func (p *Parser) parseReplicas() (ast.Directive, error) {
	kw := p.advance()
	val := p.cur()
	if val.Kind != lexer.Number {
		return nil, fail(ctxGeneric, kw.Span, "Invalid REPLICAS value")
	}
	p.advance()
	n, err := strconv.Atoi(val.Value)
	if err != nil {
		return nil, fail(ctxGeneric, kw.Span, "Invalid REPLICAS value")
	}
	return ast.NewReplicas(mergeSpan(kw.Span, val.Span), n), nil
}

var updateConfigFields = map[string]bool{
	"PARALLELISM": true, "DELAY": true, "FAILURE-ACTION": true,
	"MONITOR": true, "MAX-FAILURE-RATIO": true,
}

func (p *Parser) parseUpdateConfig() (ast.Directive, error) {
	kw := p.advance()
	uc := ast.NewUpdateConfig(kw.Span)
	end := kw.Span

	for p.cur().Kind == lexer.Word && updateConfigFields[p.cur().Value] {
		field := p.advance()
		val := p.cur()
		switch field.Value {
		case "PARALLELISM":
			if val.Kind != lexer.Number {
				return nil, fail(ctxGeneric, field.Span, "Invalid UPDATE-CONFIG PARALLELISM value")
			}
			n, err := strconv.Atoi(val.Value)
			if err != nil {
				return nil, fail(ctxGeneric, field.Span, "Invalid UPDATE-CONFIG PARALLELISM value")
			}
			uc.HasParallelism, uc.Parallelism = true, n
			p.advance()
		case "DELAY":
			if val.Kind != lexer.Number {
				return nil, fail(ctxGeneric, field.Span, "Invalid UPDATE-CONFIG DELAY value")
			}
			uc.HasDelay, uc.Delay = true, val.Value
			p.advance()
		case "FAILURE-ACTION":
			if val.Kind != lexer.Word {
				return nil, fail(ctxGeneric, field.Span, "Invalid UPDATE-CONFIG FAILURE-ACTION value")
			}
			uc.HasFailureAction, uc.FailureAction = true, val.Value
			p.advance()
		case "MONITOR":
			if val.Kind != lexer.Number {
				return nil, fail(ctxGeneric, field.Span, "Invalid UPDATE-CONFIG MONITOR value")
			}
			uc.HasMonitor, uc.Monitor = true, val.Value
			p.advance()
		case "MAX-FAILURE-RATIO":
			if val.Kind != lexer.Number {
				return nil, fail(ctxGeneric, field.Span, "Invalid UPDATE-CONFIG MAX-FAILURE-RATIO value")
			}
			f, err := strconv.ParseFloat(val.Value, 64)
			if err != nil {
				return nil, fail(ctxGeneric, field.Span, "Invalid UPDATE-CONFIG MAX-FAILURE-RATIO value")
			}
			uc.HasMaxFailureRatio, uc.MaxFailureRatio = true, f
			p.advance()
		}
		end = val.Span
	}
	uc.SetSpan(mergeSpan(kw.Span, end))
	return uc, nil
}

func mergeSpan(start, end diag.Span) diag.Span {
	return diag.Span{
		File:        start.File,
		StartLine:   start.StartLine,
		StartCol:    start.StartCol,
		EndLine:     end.EndLine,
		EndCol:      end.EndCol,
		StartOffset: start.StartOffset,
		EndOffset:   end.EndOffset,
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IsIdentifier reports whether s matches the DSL's identifier grammar
// ([A-Za-z_][A-Za-z0-9_]*). Exported for the validator and defaults
// engine, which both need to re-check identifier syntax on values the
// parser accepted loosely (e.g. BUILD-ARGS keys).
func IsIdentifier(s string) bool { return isIdentifier(s) }
