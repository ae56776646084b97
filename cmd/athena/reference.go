package main

// directiveDoc is one row of the static directive reference printed by
// `athena info --directives`. This catalog is CLI-only: it never touches
// internal/pipeline, since it documents syntax rather than compiling it.
type directiveDoc struct {
	keyword string
	shape   string
}

var directiveCatalog = []directiveDoc{
	{"IMAGE-ID", "IMAGE-ID <image[:tag]>"},
	{"PORT-MAPPING", "PORT-MAPPING <hostPort> TO <containerPort>"},
	{"ENV-VARIABLE", `ENV-VARIABLE {{TEMPLATE_NAME}} | ENV-VARIABLE "NAME=value"`},
	{"COMMAND", `COMMAND "<shell command>"`},
	{"VOLUME-MAPPING", "VOLUME-MAPPING <hostPath> TO <containerPath>"},
	{"DEPENDS-ON", "DEPENDS-ON <service name>"},
	{"HEALTH-CHECK", `HEALTH-CHECK "<command>"`},
	{"RESTART-POLICY", "RESTART-POLICY <no|always|on-failure|unless-stopped>"},
	{"RESOURCE-LIMITS", "RESOURCE-LIMITS <cpus> <memory>"},
	{"BUILD-ARGS", "BUILD-ARGS <key> <value>"},
	{"REPLICAS", "REPLICAS <count>"},
	{"UPDATE-CONFIG", "UPDATE-CONFIG [PARALLELISM <n>] [DELAY <duration>] [FAILURE-ACTION <action>] [MONITOR <duration>] [MAX-FAILURE-RATIO <ratio>]"},
	{"SWARM-LABELS", "SWARM-LABELS <key> <value>"},
}

// exampleDoc is one worked example per archetype, printed by
// `athena info --examples`.
type exampleDoc struct {
	archetype string
	source    string
}

var exampleCatalog = []exampleDoc{
	{"database", "SERVICE db\n    IMAGE-ID postgres:15\nEND SERVICE"},
	{"cache", "SERVICE cache\n    IMAGE-ID redis:7-alpine\nEND SERVICE"},
	{"proxy", "SERVICE web\n    IMAGE-ID nginx:alpine\n    PORT-MAPPING 80 TO 80\nEND SERVICE"},
	{"webapp", "SERVICE api\n    IMAGE-ID node:20\n    PORT-MAPPING 3000 TO 3000\n    DEPENDS-ON db\nEND SERVICE"},
	{"generic", "SERVICE worker\n    BUILD-ARGS VERSION 1.0\nEND SERVICE"},
}
