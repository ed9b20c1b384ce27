package model

import "time"

// InterestCategory is a fixed catalog entry seeded at deployment time.
// The application never writes to it outside the seeder.
type InterestCategory struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

// Interest is a user's declared topic: either a reference to a catalog
// category or a free-text keyword, never both.
type Interest struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	CategoryID    *int64            `json:"interest_category_id,omitempty"`
	CustomKeyword *string           `json:"custom_keyword,omitempty"`
	Category      *InterestCategory `json:"category,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// SearchTerm returns the query string used against the video search API:
// the custom keyword verbatim if present, else the category display name.
func (i *Interest) SearchTerm() string {
	if i.CustomKeyword != nil && *i.CustomKeyword != "" {
		return *i.CustomKeyword
	}
	if i.Category != nil {
		return i.Category.Name
	}
	return ""
}
