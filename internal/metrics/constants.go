package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "wic_http_requests_total"
	MetricNameHTTPRequestDuration  = "wic_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "wic_http_requests_in_flight"
)

// Bot metric names
const (
	MetricNameCommandsTotal    = "wic_commands_total"
	MetricNameCommandDuration  = "wic_command_duration_seconds"
	MetricNameExternalRequests = "wic_external_requests_total"
	MetricNameExternalDuration = "wic_external_request_duration_seconds"
	MetricNameRolesGranted     = "wic_roles_granted_total"
	MetricNameDataReloads      = "wic_data_reloads_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Bot metric help text
const (
	HelpTextCommandsTotal    = "Total number of slash commands handled, by outcome"
	HelpTextCommandDuration  = "Slash command handling latency in seconds"
	HelpTextExternalRequests = "Total number of outbound API calls, by service and outcome"
	HelpTextExternalDuration = "Outbound API call latency in seconds"
	HelpTextRolesGranted     = "Total number of Discord roles granted"
	HelpTextDataReloads      = "Total number of card data reloads, by outcome"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelCommand = "command"
	LabelOutcome = "outcome"
	LabelService = "service"
	LabelReason  = "reason"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeMiss    = "miss"
	OutcomeCached  = "cached"
)

// Service label values
const (
	ServiceCoinGecko = "coingecko"
	ServiceHelius    = "helius"
)

// Role grant reasons
const (
	ReasonVerified  = "verified"
	ReasonNewMember = "new_member"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1}
	ExternalLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15}
)
