// internal/models/campaign.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusInactive CampaignStatus = "inactive"
)

// Label is the human readable status shown on campaign cards.
func (s CampaignStatus) Label() string {
	if s == CampaignStatusActive {
		return "Active"
	}
	return "Inactive"
}

// CampaignID identifies a campaign. The backend sends ids either as JSON
// numbers or as strings; both decode to the same textual form.
type CampaignID string

func (id CampaignID) String() string { return string(id) }

func (id *CampaignID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CampaignID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("campaign id: %w", err)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*id = CampaignID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = CampaignID(n.String())
	return nil
}

type Campaign struct {
	ID          CampaignID     `json:"id" validate:"required"`
	Name        string         `json:"name"`
	Platforms   []string       `json:"platforms"`
	Budget      float64        `json:"budget"`
	DailyBudget float64        `json:"daily_budget"`
	// Status is passed through as sent; anything but active renders inactive.
	Status      CampaignStatus `json:"status"`
	Objective   string         `json:"objective,omitempty"`
}

// PrimaryPlatform returns the first listed platform, or "" when none is set.
func (c Campaign) PrimaryPlatform() string {
	if len(c.Platforms) == 0 {
		return ""
	}
	return c.Platforms[0]
}

// CampaignList matches the envelope served by GET /campaigns.
type CampaignList struct {
	Campaigns []Campaign `json:"campaigns" validate:"dive"`
}

// CampaignEnvelope is the wrapped form of GET /campaigns/{id}.
type CampaignEnvelope struct {
	Campaign *Campaign `json:"campaign"`
}
