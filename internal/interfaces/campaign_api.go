// internal/interfaces/campaign_api.go
package interfaces

import (
	"context"

	"campaigndash/internal/models"
)

// CampaignAPI defines the read operations the dashboard needs from the campaign backend
type CampaignAPI interface {
	FetchCampaigns(ctx context.Context) ([]models.Campaign, error)
	FetchCampaignDetail(ctx context.Context, id models.CampaignID) (*models.Campaign, error)
	FetchGlobalInsights(ctx context.Context) (models.InsightSet, error)
	FetchInsights(ctx context.Context, id models.CampaignID) (*models.CampaignInsights, error)
}
