package model

import (
	"encoding/json"
	"time"
)

// Document is the rich-text study document a user keeps per saved video.
// Content holds rendered HTML; ContentJSON holds the editor's structured
// state, passed through opaquely.
type Document struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	VideoID     int64           `json:"video_id"`
	Content     string          `json:"content"`
	ContentJSON json.RawMessage `json:"content_json"`
	Tags        []Tag           `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
