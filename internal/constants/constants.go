package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for enrichment calls that fan out to modules.
	ExtendedHTTPTimeout = 60 * time.Second
)

// Client-side rate limiting.
const (
	// DefaultRateLimitBurst is used when a rate limit is set without a burst.
	DefaultRateLimitBurst = 5
)

// Regions.
const (
	RegionUS   = "us"
	RegionEU   = "eu"
	RegionAPJC = "apjc"

	DefaultRegion = RegionUS
)

// API hosts per region.
const (
	APIHostUS   = "https://visibility.amp.cisco.com"
	APIHostEU   = "https://visibility.eu.amp.cisco.com"
	APIHostAPJC = "https://visibility.apjc.amp.cisco.com"

	IntelHostUS   = "https://private.intel.amp.cisco.com"
	IntelHostEU   = "https://private.intel.eu.amp.cisco.com"
	IntelHostAPJC = "https://private.intel.apjc.amp.cisco.com"
)

// API paths.
const (
	TokenPath = "/iroh/oauth2/token"

	InspectPath = "/iroh/iroh-inspect/inspect"

	EnrichObservePath    = "/iroh/iroh-enrich/observe/observables"
	EnrichDeliberatePath = "/iroh/iroh-enrich/deliberate/observables"
	EnrichReferPath      = "/iroh/iroh-enrich/refer/observables"
	EnrichHealthPath     = "/iroh/iroh-enrich/health"

	RespondObservablesPath = "/iroh/iroh-response/respond/observables"
	RespondTriggerPath     = "/iroh/iroh-response/respond/trigger"

	WhoAmIPath = "/iroh/profile/whoami"

	IntelPathPrefix = "/ctia"
)

// Route group names used to mount each API group into the client registry.
const (
	GroupInspect  = "inspect"
	GroupEnrich   = "enrich"
	GroupResponse = "response"
	GroupProfile  = "profile"
	GroupIntel    = "intel"
	GroupCommands = "commands"
)

// Intel entity names.
var (
	// IntelEntities support get, create, update, delete and search.
	IntelEntities = []string{
		"actor",
		"attack_pattern",
		"campaign",
		"casebook",
		"coa",
		"feedback",
		"incident",
		"indicator",
		"judgement",
		"malware",
		"relationship",
		"sighting",
		"tool",
	}

	// ReadOnlyIntelEntities support get and search only.
	ReadOnlyIntelEntities = []string{
		"verdict",
	}
)

// Dispositions returned by deliberation modules.
const (
	DispositionClean      = 1
	DispositionMalicious  = 2
	DispositionSuspicious = 3
	DispositionCommon     = 4
	DispositionUnknown    = 5
)

// DispositionNames maps disposition numbers to their names.
var DispositionNames = map[int]string{
	DispositionClean:      "clean",
	DispositionMalicious:  "malicious",
	DispositionSuspicious: "suspicious",
	DispositionCommon:     "common",
	DispositionUnknown:    "unknown",
}
