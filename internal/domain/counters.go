package domain

// Cause classifies a failed resolution or delivery for the usage counters
// and the delivery report.
type Cause string

const (
	CauseNotFound            Cause = "not_found"
	CauseForbidden           Cause = "forbidden"
	CauseNoMedia             Cause = "no_media"
	CauseUpstreamUnavailable Cause = "upstream_unavailable"
	CauseNoRepresentation    Cause = "no_representation"
	CausePartialMediaFailure Cause = "partial_media_failure"
	CauseDownloadFailed      Cause = "download_failed"
	CauseChannelRejected     Cause = "channel_rejected"
	CauseInternal            Cause = "internal"
)

// Outcome is the result of one resolution attempt as seen by the counters.
type Outcome struct {
	Success bool
	Cause   Cause
}

func Succeeded() Outcome         { return Outcome{Success: true} }
func Failed(cause Cause) Outcome { return Outcome{Cause: cause} }

// UsageCounters is the process-wide usage state. It is loaded from the
// counter repository at startup and flushed back on every mutation.
type UsageCounters struct {
	TotalRequests      int            `json:"total_requests"`
	Successes          int            `json:"successes"`
	MediaDelivered     int            `json:"media_delivered"`
	FailuresByCause    map[Cause]int  `json:"failures_by_cause"`
	RequestsByIdentity map[string]int `json:"requests_by_identity"`
}

func NewUsageCounters() UsageCounters {
	return UsageCounters{
		FailuresByCause:    make(map[Cause]int),
		RequestsByIdentity: make(map[string]int),
	}
}

// Clone returns a deep copy so snapshots cannot alias live state.
func (c UsageCounters) Clone() UsageCounters {
	out := c
	out.FailuresByCause = make(map[Cause]int, len(c.FailuresByCause))
	for k, v := range c.FailuresByCause {
		out.FailuresByCause[k] = v
	}
	out.RequestsByIdentity = make(map[string]int, len(c.RequestsByIdentity))
	for k, v := range c.RequestsByIdentity {
		out.RequestsByIdentity[k] = v
	}
	return out
}
