package store

import "campaigndash/internal/models"

const unknownErrorMessage = "Something went wrong"

// OnFetchStart registers req as in flight. Selection-scoped requests
// dispatched for a campaign that is no longer selected are ignored. A newer
// campaigns or global insights request retires older ones of the same kind.
func OnFetchStart(s ViewState, req Request) ViewState {
	if req.Kind.scoped() && req.CampaignID != s.SelectedCampaignID {
		return s
	}
	pending := make(map[uint64]Request, len(s.pending)+1)
	for seq, r := range s.pending {
		if !req.Kind.scoped() && r.Kind == req.Kind && seq < req.Seq {
			continue
		}
		pending[seq] = r
	}
	pending[req.Seq] = req
	s.pending = pending
	s.Loading = true
	s = clearError(s)
	return s
}

func OnFetchCampaignsSuccess(s ViewState, req Request, list []models.Campaign) ViewState {
	s, ok := resolve(s, req)
	if !ok {
		return s
	}
	campaigns := make([]models.Campaign, len(list))
	copy(campaigns, list)
	s.Campaigns = campaigns
	return clearError(s)
}

func OnFetchCampaignDetailSuccess(s ViewState, req Request, campaign *models.Campaign) ViewState {
	s, ok := resolve(s, req)
	if !ok {
		return s
	}
	if campaign != nil && campaign.ID == req.CampaignID {
		detail := *campaign
		s.CampaignDetail = &detail
	}
	return clearError(s)
}

func OnFetchGlobalInsightsSuccess(s ViewState, req Request, insights models.InsightSet) ViewState {
	s, ok := resolve(s, req)
	if !ok {
		return s
	}
	s.GlobalInsights = nonNil(insights)
	return clearError(s)
}

func OnFetchInsightsSuccess(s ViewState, req Request, result *models.CampaignInsights) ViewState {
	s, ok := resolve(s, req)
	if !ok {
		return s
	}
	if result != nil && result.CampaignID == req.CampaignID {
		s.Insights = nonNil(result.Insights)
	}
	return clearError(s)
}

// OnFetchFailure resolves req and records message as the current error.
func OnFetchFailure(s ViewState, req Request, message string) ViewState {
	s, ok := resolve(s, req)
	if !ok {
		return s
	}
	return setError(s, sourceOf(req.Kind), message)
}

// OnSelectCampaign records the selection and invalidates everything that
// belonged to the previous one. It does not fetch.
func OnSelectCampaign(s ViewState, id models.CampaignID) ViewState {
	s.SelectedCampaignID = id
	s.CampaignDetail = nil
	s.Insights = nil
	s.StreamSnapshot = nil
	s.StreamState = models.StreamStateIdle

	if len(s.pending) > 0 {
		pending := make(map[uint64]Request, len(s.pending))
		for seq, r := range s.pending {
			if r.Kind.scoped() {
				continue
			}
			pending[seq] = r
		}
		s.pending = pending
	}
	s.Loading = len(s.pending) > 0
	return s
}

func OnStreamState(s ViewState, id models.CampaignID, state models.StreamState) ViewState {
	if id != s.SelectedCampaignID {
		return s
	}
	s.StreamState = state
	return s
}

// OnStreamSnapshot replaces the live snapshot; keys of the previous
// snapshot are not carried over.
func OnStreamSnapshot(s ViewState, id models.CampaignID, snapshot models.InsightSet) ViewState {
	if id != s.SelectedCampaignID || snapshot == nil {
		return s
	}
	s.StreamSnapshot = snapshot.Clone()
	return s
}

// OnStreamError records a stream failure. The last snapshot stays visible.
func OnStreamError(s ViewState, id models.CampaignID, message string) ViewState {
	if id != s.SelectedCampaignID {
		return s
	}
	s.StreamState = models.StreamStateClosed
	return setError(s, SourceStream, message)
}

func resolve(s ViewState, req Request) (ViewState, bool) {
	if _, ok := s.pending[req.Seq]; !ok {
		return s, false
	}
	if req.Kind.scoped() && req.CampaignID != s.SelectedCampaignID {
		return s, false
	}
	pending := make(map[uint64]Request, len(s.pending))
	for seq, r := range s.pending {
		if seq != req.Seq {
			pending[seq] = r
		}
	}
	s.pending = pending
	s.Loading = len(pending) > 0
	return s, true
}

func setError(s ViewState, source Source, message string) ViewState {
	if message == "" {
		message = unknownErrorMessage
	}
	s.Error = message
	s.ErrorSource = source
	s.ErrorSeq++
	return s
}

func clearError(s ViewState) ViewState {
	s.Error = ""
	s.ErrorSource = SourceNone
	return s
}

func nonNil(set models.InsightSet) models.InsightSet {
	if set == nil {
		return models.InsightSet{}
	}
	return set.Clone()
}
