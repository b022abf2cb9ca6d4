package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameItemsBought        = "items_bought_total"
	MetricNameItemsSold          = "items_sold_total"
	MetricNameGoldEarned         = "gold_earned_total"
	MetricNameGoldSpent          = "gold_spent_total"
	MetricNameTransactionsFailed = "transactions_failed_total"
	MetricNameInventoryOverflow  = "inventory_overflow_total"
	MetricNameShopSessions       = "shop_sessions_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextItemsBought        = "Total number of item units bought from shops"
	HelpTextItemsSold          = "Total number of item units sold to shops"
	HelpTextGoldEarned         = "Total gold earned from selling items"
	HelpTextGoldSpent          = "Total gold spent buying items"
	HelpTextTransactionsFailed = "Total number of rejected shop transactions"
	HelpTextInventoryOverflow  = "Total number of purchased units dropped because the inventory was full"
	HelpTextShopSessions       = "Total number of shop sessions opened"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelItem   = "item"
	LabelReason = "reason"
	LabelShop   = "shop"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
