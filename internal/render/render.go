// Package render turns the view state into the JSON-friendly dashboard the
// browser draws. Nothing here mutates the state it reads.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"campaigndash/internal/models"
	"campaigndash/internal/store"
)

const (
	DefaultLocale = "en-IN"

	// SelectPrompt is shown in place of insights until a campaign is chosen.
	SelectPrompt = "Select a campaign to view insights."
	emptyValue   = "—"
)

// dateLayouts approximates the medium date / short time style per locale.
var dateLayouts = map[string]string{
	"en-IN": "2 Jan 2006, 3:04 pm",
	"en-GB": "2 Jan 2006, 15:04",
	"en-US": "Jan 2, 2006, 3:04 PM",
}

type Card struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type CampaignCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	Budget      string `json:"budget"`
	DailyBudget string `json:"daily_budget"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Active      bool   `json:"active"`
	Selected    bool   `json:"selected"`
}

type CampaignDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StatusLabel string `json:"status_label"`
	Platform    string `json:"platform"`
	Budget      string `json:"budget"`
	DailyBudget string `json:"daily_budget"`
	Objective   string `json:"objective,omitempty"`
}

type Dashboard struct {
	GlobalInsights     []Card          `json:"global_insights"`
	GlobalLoaded       bool            `json:"global_loaded"`
	Campaigns          []CampaignCard  `json:"campaigns"`
	SelectedCampaignID string          `json:"selected_campaign_id,omitempty"`
	Detail             *CampaignDetail `json:"detail,omitempty"`
	Insights           []Card          `json:"insights"`
	InsightsPrompt     string          `json:"insights_prompt,omitempty"`
	LiveMetrics        []Card          `json:"live_metrics"`
	Live               bool            `json:"live"`
	StreamState        string          `json:"stream_state"`
	Loading            bool            `json:"loading"`
	Error              string          `json:"error,omitempty"`
}

// Renderer formats values for one locale and time zone.
type Renderer struct {
	printer  *message.Printer
	location *time.Location
	layout   string
}

// NewRenderer builds a renderer. An empty locale means DefaultLocale; an
// empty zone or "Local" means the process time zone.
func NewRenderer(locale, zone string) (*Renderer, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	loc := time.Local
	if zone != "" && zone != "Local" {
		loc, err = time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("load time zone %q: %w", zone, err)
		}
	}

	layout, ok := dateLayouts[tag.String()]
	if !ok {
		layout = dateLayouts[DefaultLocale]
	}
	return &Renderer{
		printer:  message.NewPrinter(tag),
		location: loc,
		layout:   layout,
	}, nil
}

// Dashboard renders the full view.
func (r *Renderer) Dashboard(s store.ViewState) Dashboard {
	d := Dashboard{
		GlobalInsights:     r.Cards(s.GlobalInsights),
		GlobalLoaded:       s.GlobalInsights != nil,
		Campaigns:          make([]CampaignCard, 0, len(s.Campaigns)),
		SelectedCampaignID: s.SelectedCampaignID.String(),
		Insights:           r.Cards(s.Insights),
		LiveMetrics:        r.Cards(s.StreamSnapshot),
		Live:               s.StreamState == models.StreamStateOpen,
		StreamState:        string(s.StreamState),
		Loading:            s.Loading,
		Error:              s.Error,
	}
	for _, c := range s.Campaigns {
		d.Campaigns = append(d.Campaigns, CampaignCard{
			ID:          c.ID.String(),
			Name:        c.Name,
			Platform:    c.PrimaryPlatform(),
			Budget:      r.Number(c.Budget),
			DailyBudget: r.Number(c.DailyBudget),
			Status:      string(c.Status),
			StatusLabel: c.Status.Label(),
			Active:      c.Status == models.CampaignStatusActive,
			Selected:    c.ID == s.SelectedCampaignID && s.HasSelection(),
		})
	}
	if s.CampaignDetail != nil {
		c := s.CampaignDetail
		d.Detail = &CampaignDetail{
			ID:          c.ID.String(),
			Name:        c.Name,
			StatusLabel: c.Status.Label(),
			Platform:    c.PrimaryPlatform(),
			Budget:      r.Number(c.Budget),
			DailyBudget: r.Number(c.DailyBudget),
			Objective:   c.Objective,
		}
	}
	if s.Insights == nil {
		d.InsightsPrompt = SelectPrompt
	}
	return d
}

// Cards renders an insight set as cards ordered by key. A nil set renders
// as an empty list.
func (r *Renderer) Cards(set models.InsightSet) []Card {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cards := make([]Card, 0, len(keys))
	for _, k := range keys {
		cards = append(cards, Card{Key: k, Value: r.Metric(k, set[k])})
	}
	return cards
}

// Metric formats one insight value. The timestamp key is shown as a local
// date and time.
func (r *Renderer) Metric(key string, v any) string {
	if key == models.TimestampKey {
		if t, ok := parseTimestamp(v); ok {
			return r.Time(t)
		}
	}
	switch val := v.(type) {
	case nil:
		return emptyValue
	case string:
		return val
	case float64:
		return r.Number(val)
	case int:
		return r.Number(float64(val))
	case int64:
		return r.Number(float64(val))
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func (r *Renderer) Number(v float64) string {
	return r.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func (r *Renderer) Time(t time.Time) string {
	return t.In(r.location).Format(r.layout)
}

// parseTimestamp accepts epoch milliseconds as a number or numeric string,
// or an RFC 3339 string.
func parseTimestamp(v any) (time.Time, bool) {
	switch val := v.(type) {
	case float64:
		return time.UnixMilli(int64(val)), true
	case int64:
		return time.UnixMilli(val), true
	case int:
		return time.UnixMilli(int64(val)), true
	case string:
		if ms, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
