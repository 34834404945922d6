package models

// TimestampKey is the reserved insight key carrying an epoch-millisecond time.
const TimestampKey = "timestamp"

// InsightSet maps metric names to metric values. Values are JSON numbers
// (float64) or strings exactly as the backend sent them.
type InsightSet map[string]any

// Clone returns a shallow copy. A nil set clones to nil.
func (s InsightSet) Clone() InsightSet {
	if s == nil {
		return nil
	}
	out := make(InsightSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// InsightsEnvelope matches {"insights": {...}} returned by both insight endpoints.
type InsightsEnvelope struct {
	Insights InsightSet `json:"insights"`
}

// CampaignInsights pairs a fetched insight set with the campaign it belongs to.
type CampaignInsights struct {
	CampaignID CampaignID `json:"id"`
	Insights   InsightSet `json:"insights"`
}

type StreamState string

const (
	StreamStateIdle       StreamState = "idle"
	StreamStateConnecting StreamState = "connecting"
	StreamStateOpen       StreamState = "open"
	StreamStateClosed     StreamState = "closed"
)

// Active reports whether a session in this state still owns a connection.
func (s StreamState) Active() bool {
	return s == StreamStateConnecting || s == StreamStateOpen
}
