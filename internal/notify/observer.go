package notify

import "campaigndash/internal/store"

var errorTitles = map[store.Source]string{
	store.SourceCampaigns:      "Could not load campaigns",
	store.SourceCampaignDetail: "Could not load campaign details",
	store.SourceGlobalInsights: "Could not load dashboard metrics",
	store.SourceInsights:       "Could not load campaign insights",
	store.SourceStream:         "Live updates stopped",
}

// ErrorTitle returns the notification title for an error from source.
func ErrorTitle(source store.Source) string {
	if title, ok := errorTitles[source]; ok {
		return title
	}
	return "Error"
}

// ErrorObserver returns a store listener that sends exactly one error
// notification per error occurrence. Re-renders and unrelated transitions
// do not notify again.
func ErrorObserver(n Notifier) store.Listener {
	return func(prev, next store.ViewState) {
		if next.ErrorSeq == prev.ErrorSeq || next.Error == "" {
			return
		}
		n.Notify(New(SeverityError, ErrorTitle(next.ErrorSource), next.Error))
	}
}
