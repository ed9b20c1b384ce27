package model

// SuggestedVideo is an ephemeral search result surfaced on the discover
// page. It only ever lives in the TTL cache and the response payload,
// never in the database.
type SuggestedVideo struct {
	YouTubeID   string `json:"youtube_id"`
	Title       string `json:"title"`
	ChannelName string `json:"channel_name"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"published_at"`
	Interest    string `json:"interest,omitempty"`
}

// RefreshAllowance is the remaining explicit-refresh budget for a user.
// Premium users are unlimited; the JSON form is null for unlimited and a
// plain integer otherwise, matching what the front end expects.
type RefreshAllowance struct {
	Unlimited bool
	Remaining int
}

func UnlimitedAllowance() RefreshAllowance {
	return RefreshAllowance{Unlimited: true}
}

func LimitedAllowance(remaining int) RefreshAllowance {
	if remaining < 0 {
		remaining = 0
	}
	return RefreshAllowance{Remaining: remaining}
}

func (a RefreshAllowance) CanRefresh() bool {
	return a.Unlimited || a.Remaining > 0
}

// RemainingJSON returns the wire representation: nil for unlimited.
func (a RefreshAllowance) RemainingJSON() *int {
	if a.Unlimited {
		return nil
	}
	n := a.Remaining
	return &n
}
