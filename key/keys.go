// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Source selection - which adapters the CLI uses when none is given explicitly.
const (
	DefaultSources = "sources.default"
)

// Site endpoints - base URLs for each adapter, overridable when a site moves domains.
const (
	AniZoneURL    = "anizone.url"
	AnimeSailURL  = "animesail.url"
	SamehadakuURL = "samehadaku.url"
	NimegamiURL   = "nimegami.url"
)

// Outbound HTTP - timeouts, retries and transport selection shared by every adapter.
const (
	NetworkTimeout     = "network.timeout"
	NetworkRetries     = "network.retries"
	NetworkRetryWait   = "network.retry_wait"
	NetworkUserAgent   = "network.user_agent"
	NetworkFingerprint = "network.fingerprint"
	NetworkCloudflare  = "network.cloudflare"
)

// Stream resolution - bounds for the mirror fan-out.
const (
	StreamsConcurrency = "streams.concurrency"
)

// Livewire - limits for the AniZone session protocol.
const (
	LivewireMaxPages = "livewire.max_pages"
)

// Result caching - on-disk cache for search and detail lookups.
const (
	CacheEnabled = "cache.enabled"
	CacheTTL     = "cache.ttl"
)

// Search interaction.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchSort                 = "search.sort"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Media Playback.
const (
	Player = "player.default"
)
