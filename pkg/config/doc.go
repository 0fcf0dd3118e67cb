// Package config loads the cyclic dependency check configuration.
//
// Configuration is layered. Defaults come first, then the first of
// pkgcycle.yaml, pkgcycle.yml, .pkgcycle.yaml or .pkgcycle.yml found in the
// project directory, then PKGCYCLE_* environment variables (optionally seeded
// from a .env file). Command line flags are applied last by the cli package.
//
// Example file:
//
//	projectName: billing
//	sourceRoot: src/main/java
//	maxDepth: 10
//	failOnError: true
//	traversal: shared
//	excludePatterns:
//	  - com\.acme\.generated\..*
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  textfile: build/pkgcycle.prom
//	tracing:
//	  enabled: false
//	  endpoint: localhost:4317
//
// Environment variables:
//
//	PKGCYCLE_PROJECT_NAME="billing"
//	PKGCYCLE_SOURCE_ROOT="src/main/java"
//	PKGCYCLE_FILE_SUFFIX=".java"
//	PKGCYCLE_MAX_DEPTH="10"
//	PKGCYCLE_EXCLUDE_PATTERNS="com\.acme\.gen\..*,org\.legacy\..*"
//	PKGCYCLE_FAIL_ON_ERROR="true"
//	PKGCYCLE_TRAVERSAL="shared"     # shared, per-root
//	PKGCYCLE_LOG_LEVEL="info"
//	PKGCYCLE_LOG_FORMAT="text"      # text, json
//	PKGCYCLE_METRICS_TEXTFILE=""
//	PKGCYCLE_OTEL_ENABLED="false"
//	PKGCYCLE_OTEL_ENDPOINT="localhost:4317"
//	PKGCYCLE_OTEL_SERVICE_NAME="pkgcycle"
//	PKGCYCLE_OTEL_INSECURE="true"
//
// PKGCYCLE_EXCLUDE_PATTERNS is split on commas unless it contains a newline,
// in which case each line is one pattern. Use the newline form for patterns
// that contain a comma, such as a{1,3}.
//
// Validate rejects a maxDepth below one, an unknown traversal mode or log
// format, and enabled tracing without an endpoint.
package config
