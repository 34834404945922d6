// Package store holds the reconciled dashboard view state. Every change goes
// through a pure transition function; Store serialises them and publishes
// each change to its subscribers.
package store

import "campaigndash/internal/models"

// FetchKind names the request families that feed the view.
type FetchKind int

const (
	FetchCampaigns FetchKind = iota + 1
	FetchCampaignDetail
	FetchGlobalInsights
	FetchInsights
)

func (k FetchKind) String() string {
	switch k {
	case FetchCampaigns:
		return "campaigns"
	case FetchCampaignDetail:
		return "campaign_detail"
	case FetchGlobalInsights:
		return "global_insights"
	case FetchInsights:
		return "insights"
	default:
		return "unknown"
	}
}

// scoped reports whether results of this kind belong to one selection.
func (k FetchKind) scoped() bool {
	return k == FetchCampaignDetail || k == FetchInsights
}

// Source identifies where the current error came from.
type Source string

const (
	SourceNone           Source = ""
	SourceCampaigns      Source = "campaigns"
	SourceCampaignDetail Source = "campaign_detail"
	SourceGlobalInsights Source = "global_insights"
	SourceInsights       Source = "insights"
	SourceStream         Source = "stream"
)

func sourceOf(k FetchKind) Source {
	switch k {
	case FetchCampaigns:
		return SourceCampaigns
	case FetchCampaignDetail:
		return SourceCampaignDetail
	case FetchGlobalInsights:
		return SourceGlobalInsights
	case FetchInsights:
		return SourceInsights
	default:
		return SourceNone
	}
}

// Request tags one fetch. CampaignID is the selection at dispatch time for
// selection-scoped kinds.
type Request struct {
	Kind       FetchKind
	Seq        uint64
	CampaignID models.CampaignID
}

// ViewState is the single source of truth read by the presentation layer.
// Nil maps and pointers mean "not loaded".
type ViewState struct {
	Campaigns          []models.Campaign
	SelectedCampaignID models.CampaignID
	CampaignDetail     *models.Campaign
	Insights           models.InsightSet
	GlobalInsights     models.InsightSet
	StreamSnapshot     models.InsightSet
	StreamState        models.StreamState
	Loading            bool
	Error              string
	ErrorSource        Source
	// ErrorSeq grows by one for every error occurrence, including a repeat
	// of the same message.
	ErrorSeq uint64

	pending map[uint64]Request
}

// Initial returns the state of a fresh dashboard session.
func Initial() ViewState {
	return ViewState{StreamState: models.StreamStateIdle}
}

// HasSelection reports whether a campaign is selected.
func (s ViewState) HasSelection() bool {
	return s.SelectedCampaignID != ""
}

// Pending returns the number of in-flight requests that feed the view.
func (s ViewState) Pending() int {
	return len(s.pending)
}

// IsPending reports whether req has neither resolved nor been retired.
func (s ViewState) IsPending(req Request) bool {
	_, ok := s.pending[req.Seq]
	return ok
}
