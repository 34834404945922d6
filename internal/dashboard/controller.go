// Package dashboard runs the side effects behind the dashboard view: it
// turns user intents into fetches and stream sessions and feeds their
// results into the store.
package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"campaigndash/internal/interfaces"
	"campaigndash/internal/models"
	"campaigndash/internal/store"
)

type Controller struct {
	api     interfaces.CampaignAPI
	streams interfaces.StreamStarter
	store   *store.Store
	logger  *zap.Logger

	// selectMu orders selections so the stream always follows the latest one.
	selectMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex // guards closed and wg.Add
	closed bool
	wg     sync.WaitGroup
}

func NewController(api interfaces.CampaignAPI, streams interfaces.StreamStarter, st *store.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		api:     api,
		streams: streams,
		store:   st,
		logger:  logger.Named("dashboard"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *Controller) Store() *store.Store { return c.store }

// Load fetches the campaign list and the aggregate insights concurrently.
// Failures are recorded in the store, so Load only returns ctx errors.
func (c *Controller) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.loadCampaigns(gctx)
		return nil
	})
	g.Go(func() error {
		c.loadGlobalInsights(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Refresh reloads the campaign list and aggregate insights in the background.
func (c *Controller) Refresh() {
	c.goFetch(func(ctx context.Context) {
		_ = c.Load(ctx)
	})
}

// Select makes id the current campaign, then dispatches the detail fetch,
// the insights fetch and the stream start independently.
func (c *Controller) Select(id models.CampaignID) {
	c.selectMu.Lock()
	defer c.selectMu.Unlock()

	c.logger.Debug("campaign selected", zap.String("campaign_id", id.String()))
	c.store.SelectCampaign(id)

	detail := c.store.BeginFetch(store.FetchCampaignDetail)
	c.goFetch(func(ctx context.Context) { c.loadDetail(ctx, detail) })

	insights := c.store.BeginFetch(store.FetchInsights)
	c.goFetch(func(ctx context.Context) { c.loadInsights(ctx, insights) })

	if c.streams != nil {
		c.streams.Start(id)
	}
}

// Wait blocks until every dispatched fetch has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close stops the live stream, cancels in-flight fetches and waits for them.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	if c.streams != nil {
		c.streams.Stop()
	}
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) goFetch(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn(c.ctx)
	}()
}

func (c *Controller) loadCampaigns(ctx context.Context) {
	req := c.store.BeginFetch(store.FetchCampaigns)
	campaigns, err := c.api.FetchCampaigns(ctx)
	if err != nil {
		c.failed(req, err)
		return
	}
	c.store.CampaignsLoaded(req, campaigns)
}

func (c *Controller) loadGlobalInsights(ctx context.Context) {
	req := c.store.BeginFetch(store.FetchGlobalInsights)
	insights, err := c.api.FetchGlobalInsights(ctx)
	if err != nil {
		c.failed(req, err)
		return
	}
	c.store.GlobalInsightsLoaded(req, insights)
}

func (c *Controller) loadDetail(ctx context.Context, req store.Request) {
	campaign, err := c.api.FetchCampaignDetail(ctx, req.CampaignID)
	if err != nil {
		c.failed(req, err)
		return
	}
	c.store.CampaignDetailLoaded(req, campaign)
}

func (c *Controller) loadInsights(ctx context.Context, req store.Request) {
	insights, err := c.api.FetchInsights(ctx, req.CampaignID)
	if err != nil {
		c.failed(req, err)
		return
	}
	c.store.InsightsLoaded(req, insights)
}

func (c *Controller) failed(req store.Request, err error) {
	if c.ctx.Err() != nil {
		// shutting down
		return
	}
	c.logger.Warn("fetch failed",
		zap.Stringer("kind", req.Kind),
		zap.String("campaign_id", req.CampaignID.String()),
		zap.Error(err))
	c.store.FetchFailed(req, interfaces.ErrorMessage(err))
}
