package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campaigndash/internal/interfaces"
	"campaigndash/internal/models"
)

const defaultRequestTimeout = 15 * time.Second

// CampaignAPIClient reads campaigns and insights from the campaign backend.
type CampaignAPIClient struct {
	baseURL    string
	httpClient *http.Client
	validator  *validator.Validate
	logger     *zap.Logger
}

var _ interfaces.CampaignAPI = (*CampaignAPIClient)(nil)

func NewCampaignAPIClient(baseURL string, logger *zap.Logger) *CampaignAPIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		validator:  validator.New(),
		logger:     logger,
	}
}

func (c *CampaignAPIClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

func (c *CampaignAPIClient) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
}

// FetchCampaigns handles GET /campaigns
func (c *CampaignAPIClient) FetchCampaigns(ctx context.Context) ([]models.Campaign, error) {
	var out models.CampaignList
	if err := c.getJSON(ctx, "/campaigns", &out); err != nil {
		return nil, err
	}
	if err := c.validator.Struct(out); err != nil {
		return nil, &interfaces.DecodeError{Path: "/campaigns", Err: err}
	}
	if out.Campaigns == nil {
		out.Campaigns = []models.Campaign{}
	}
	return out.Campaigns, nil
}

// FetchCampaignDetail handles GET /campaigns/{id}. The backend may answer with
// the bare campaign or with {"campaign": {...}}.
func (c *CampaignAPIClient) FetchCampaignDetail(ctx context.Context, id models.CampaignID) (*models.Campaign, error) {
	path := "/campaigns/" + url.PathEscape(id.String())
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var wrapped models.CampaignEnvelope
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, &interfaces.DecodeError{Path: path, Err: err}
	}
	campaign := wrapped.Campaign
	if campaign == nil {
		campaign = &models.Campaign{}
		if err := json.Unmarshal(body, campaign); err != nil {
			return nil, &interfaces.DecodeError{Path: path, Err: err}
		}
	}
	if err := c.validator.Struct(campaign); err != nil {
		return nil, &interfaces.DecodeError{Path: path, Err: err}
	}
	return campaign, nil
}

// FetchGlobalInsights handles GET /campaigns/insights
func (c *CampaignAPIClient) FetchGlobalInsights(ctx context.Context) (models.InsightSet, error) {
	var out models.InsightsEnvelope
	if err := c.getJSON(ctx, "/campaigns/insights", &out); err != nil {
		return nil, err
	}
	if out.Insights == nil {
		out.Insights = models.InsightSet{}
	}
	return out.Insights, nil
}

// FetchInsights handles GET /campaigns/{id}/insights
func (c *CampaignAPIClient) FetchInsights(ctx context.Context, id models.CampaignID) (*models.CampaignInsights, error) {
	var out models.InsightsEnvelope
	if err := c.getJSON(ctx, "/campaigns/"+url.PathEscape(id.String())+"/insights", &out); err != nil {
		return nil, err
	}
	if out.Insights == nil {
		out.Insights = models.InsightSet{}
	}
	return &models.CampaignInsights{CampaignID: id, Insights: out.Insights}, nil
}

func (c *CampaignAPIClient) getJSON(ctx context.Context, path string, dst any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &interfaces.DecodeError{Path: path, Err: err}
	}
	return nil
}

func (c *CampaignAPIClient) get(ctx context.Context, path string) ([]byte, error) {
	if strings.TrimSpace(c.baseURL) == "" {
		return nil, errors.New("campaign api baseURL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("campaign api request failed",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &interfaces.NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &interfaces.NetworkError{Op: "GET " + path, Err: err}
	}

	c.logger.Debug("campaign api request",
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(path, resp, body)
	}
	return body, nil
}

func newAPIError(path string, resp *http.Response, body []byte) *interfaces.APIError {
	reason := statusReason(resp)
	apiErr := &interfaces.APIError{
		Path:       path,
		StatusCode: resp.StatusCode,
		Reason:     reason,
		Message:    interfaces.FallbackMessage(resp.StatusCode, reason),
	}

	var out map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(body), &out); err != nil {
		return apiErr
	}
	for _, k := range []string{"message", "error"} {
		if v, ok := out[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				apiErr.Message = s
				return apiErr
			}
		}
	}
	return apiErr
}

// statusReason returns the reason phrase of resp, e.g. "Not Found".
func statusReason(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	if reason == "" {
		reason = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return reason
}
