package store

import (
	"sync"

	"campaigndash/internal/interfaces"
	"campaigndash/internal/models"
)

// Listener is called after every state change with the previous and the
// new state. Listeners run while the store is locked and must not call back
// into it.
type Listener func(prev, next ViewState)

// Store owns a ViewState. Its methods are the only way to change it.
type Store struct {
	mu        sync.Mutex
	state     ViewState
	seq       uint64
	listeners map[uint64]Listener
	nextSub   uint64
}

var _ interfaces.StreamSink = (*Store)(nil)

func New() *Store {
	return &Store{
		state:     Initial(),
		listeners: make(map[uint64]Listener),
	}
}

// State returns the current state. Slices and maps in it are shared and
// must be treated as read-only.
func (st *Store) State() ViewState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Subscribe registers l and returns a function that removes it.
func (st *Store) Subscribe(l Listener) func() {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.listeners[id] = l
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.listeners, id)
		st.mu.Unlock()
	}
}

func (st *Store) apply(fn func(ViewState) ViewState) {
	st.mu.Lock()
	defer st.mu.Unlock()
	prev := st.state
	next := fn(prev)
	st.state = next
	for _, l := range st.listeners {
		l(prev, next)
	}
}

// BeginFetch tags a new request of kind and marks it in flight. For
// selection-scoped kinds the current selection is recorded on the request.
func (st *Store) BeginFetch(kind FetchKind) Request {
	st.mu.Lock()
	st.seq++
	req := Request{Kind: kind, Seq: st.seq}
	if kind.scoped() {
		req.CampaignID = st.state.SelectedCampaignID
	}
	st.mu.Unlock()

	st.apply(func(s ViewState) ViewState { return OnFetchStart(s, req) })
	return req
}

func (st *Store) CampaignsLoaded(req Request, list []models.Campaign) {
	st.apply(func(s ViewState) ViewState { return OnFetchCampaignsSuccess(s, req, list) })
}

func (st *Store) CampaignDetailLoaded(req Request, campaign *models.Campaign) {
	st.apply(func(s ViewState) ViewState { return OnFetchCampaignDetailSuccess(s, req, campaign) })
}

func (st *Store) GlobalInsightsLoaded(req Request, insights models.InsightSet) {
	st.apply(func(s ViewState) ViewState { return OnFetchGlobalInsightsSuccess(s, req, insights) })
}

func (st *Store) InsightsLoaded(req Request, result *models.CampaignInsights) {
	st.apply(func(s ViewState) ViewState { return OnFetchInsightsSuccess(s, req, result) })
}

func (st *Store) FetchFailed(req Request, message string) {
	st.apply(func(s ViewState) ViewState { return OnFetchFailure(s, req, message) })
}

func (st *Store) SelectCampaign(id models.CampaignID) {
	st.apply(func(s ViewState) ViewState { return OnSelectCampaign(s, id) })
}

func (st *Store) StreamStateChanged(id models.CampaignID, state models.StreamState) {
	st.apply(func(s ViewState) ViewState { return OnStreamState(s, id, state) })
}

func (st *Store) StreamSnapshot(id models.CampaignID, snapshot models.InsightSet) {
	st.apply(func(s ViewState) ViewState { return OnStreamSnapshot(s, id, snapshot) })
}

func (st *Store) StreamFailed(id models.CampaignID, message string) {
	st.apply(func(s ViewState) ViewState { return OnStreamError(s, id, message) })
}
