package parser

import "github.com/athena-lang/athena/internal/diag"

// context tags a grammar failure site. The five mapped failure sites take
// their message/suggestion from errorTable, so that mapping is auditable
// as data; every other site uses ctxGeneric and passes its own fallback
// message to fail, with no suggestion. This follows the same
// principle the defaults engine (C6) applies to its rule tables (see
// DESIGN NOTES).
type context string

const (
	ctxMissingEndService      context = "missing_end_service"
	ctxPortMappingShape       context = "port_mapping_shape"
	ctxEnvVariableShape       context = "env_variable_shape"
	ctxMissingDeploymentID    context = "missing_deployment_id"
	ctxMissingServicesSection context = "missing_services_section"
	ctxGeneric                context = "generic"
)

type errorMapping struct {
	message    string
	suggestion string
}

// errorTable implements the parser error-mapping table from spec §4.2: it
// turns raw grammar failures into the targeted messages/suggestions a
// reader can act on.
var errorTable = map[context]errorMapping{
	ctxMissingEndService: {
		message:    "Missing 'END SERVICE' statement",
		suggestion: "Each SERVICE block must be closed with 'END SERVICE'",
	},
	ctxPortMappingShape: {
		message:    "Invalid port mapping format",
		suggestion: "Use PORT-MAPPING <host_port> TO <container_port>",
	},
	ctxEnvVariableShape: {
		message:    "Invalid environment variable format",
		suggestion: `Use ENV-VARIABLE {{VAR_NAME}} for templates or ENV-VARIABLE "literal" for literals`,
	},
	ctxMissingDeploymentID: {
		message:    "Missing DEPLOYMENT-ID declaration",
		suggestion: "A deployment must begin with DEPLOYMENT-ID <identifier>",
	},
	ctxMissingServicesSection: {
		message:    "Missing SERVICES SECTION",
		suggestion: "Declare SERVICES SECTION before any SERVICE block",
	},
}

// fail builds a ParseError diagnostic for context ctx at span, falling
// back to a generic message (still a valid diagnostic, never Internal)
// when ctx matches no table entry.
func fail(ctx context, span diag.Span, fallback string) *diag.Diagnostic {
	if m, ok := errorTable[ctx]; ok {
		return diag.New(diag.ParseError, span, m.message).WithSuggestion(m.suggestion)
	}
	return diag.New(diag.ParseError, span, fallback)
}
