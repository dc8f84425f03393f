package check

import "context"

// FailKind is a closed set of failure tags carried on a Result, so the
// reporter and tests can match on kind instead of message substrings.
type FailKind string

const (
	KindNone              FailKind = ""
	KindSourceUnavailable FailKind = "resolution_source_unavailable"
	KindConfigMissing     FailKind = "config_missing"
	KindNetworkError      FailKind = "probe_network_error"
	KindBadResponse       FailKind = "probe_bad_response"
	KindException         FailKind = "probe_exception"
)

// Probe is one independent reachability check against an external
// dependency. A probe never returns an error: every failure mode is
// converted into a Result with OK=false.
type Probe interface {
	Name() string
	Probe(ctx context.Context) Result
}
