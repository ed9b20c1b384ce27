package dto

import "vidnotes/domain/model"

// UpdateInterestsRequest replaces a user's interest set wholesale.
type UpdateInterestsRequest struct {
	CategoryIDs    []int64  `json:"category_ids"`
	CustomKeywords []string `json:"custom_keywords"`
}

// SuggestionsResponse is the payload of GET /api/discover/suggestions and
// POST /api/discover/refresh. RemainingRefreshes is null for premium users
// and is always computed live, never served from cache.
type SuggestionsResponse struct {
	Videos             []model.SuggestedVideo `json:"videos"`
	Interests          []string               `json:"interests,omitempty"`
	Message            string                 `json:"message,omitempty"`
	RemainingRefreshes *int                   `json:"remaining_refreshes"`
	IsPremium          bool                   `json:"is_premium"`
}

// SuggestionSet is what gets cached per user per hour: the videos and the
// interest labels, without the live allowance fields.
type SuggestionSet struct {
	Videos    []model.SuggestedVideo `json:"videos"`
	Interests []string               `json:"interests"`
}
