package interfaces

import "campaigndash/internal/models"

// StreamSink receives the events of a live insights session.
type StreamSink interface {
	StreamStateChanged(id models.CampaignID, state models.StreamState)
	StreamSnapshot(id models.CampaignID, snapshot models.InsightSet)
	StreamFailed(id models.CampaignID, message string)
}

// StreamStarter owns the single live insights connection.
type StreamStarter interface {
	Start(id models.CampaignID)
	Stop()
}
