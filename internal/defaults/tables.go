package defaults

import "github.com/athena-lang/athena/internal/ast"

// healthDefaults is one row of the archetype healthcheck table: the
// synthesized test command and its timing, used verbatim when a service
// has no explicit HealthCheck and as the timing source (never the
// command source) when it does.
type healthDefaults struct {
	test        string
	interval    string
	timeout     string
	retries     int
	startPeriod string
}

// restartDefaults implements §4.5 "Restart policy": database/cache/proxy
// always restart; webapp/generic restart unless stopped.
var restartDefaults = map[ast.Archetype]string{
	ast.ArchetypeDatabase: "always",
	ast.ArchetypeCache:    "always",
	ast.ArchetypeProxy:    "always",
	ast.ArchetypeWebapp:   "unless-stopped",
	ast.ArchetypeGeneric:  "unless-stopped",
}

// healthcheckDefaults implements §4.5 "Health check". generic shares
// webapp's command and timing verbatim.
var healthcheckDefaults = map[ast.Archetype]healthDefaults{
	ast.ArchetypeDatabase: {
		test:        `pg_isready || mysqladmin ping || mongo --eval "db.adminCommand('ping')"`,
		interval:    "10s", timeout: "5s", retries: 5, startPeriod: "60s",
	},
	ast.ArchetypeCache: {
		test:        `redis-cli ping || echo PONG`,
		interval:    "15s", timeout: "3s", retries: 3, startPeriod: "20s",
	},
	ast.ArchetypeProxy: {
		test:        `wget -qO- http://localhost/ || exit 1`,
		interval:    "20s", timeout: "5s", retries: 3, startPeriod: "10s",
	},
	ast.ArchetypeWebapp: {
		test:        `curl -f http://localhost/health || exit 1`,
		interval:    "30s", timeout: "10s", retries: 3, startPeriod: "40s",
	},
	ast.ArchetypeGeneric: {
		test:        `curl -f http://localhost/health || exit 1`,
		interval:    "30s", timeout: "10s", retries: 3, startPeriod: "40s",
	},
}

// resourceDefaultsTable implements §4.5 "Resource defaults". generic is
// intentionally absent: Set stays false and no deploy.resources block is
// emitted.
var resourceDefaultsTable = map[ast.Archetype]ast.ResourceDefaults{
	ast.ArchetypeDatabase: {Set: true, CPUs: "1.0", Memory: "1024M"},
	ast.ArchetypeCache:    {Set: true, CPUs: "0.5", Memory: "512M"},
	ast.ArchetypeWebapp:   {Set: true, CPUs: "0.5", Memory: "512M"},
	ast.ArchetypeProxy:    {Set: true, CPUs: "0.2", Memory: "256M"},
}
