package model

import "time"

// Video is a YouTube video a user saved to their library.
type Video struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	YouTubeID     string     `json:"youtube_id"`
	Title         string     `json:"title"`
	Thumbnail     *string    `json:"thumbnail,omitempty"`
	ChannelName   *string    `json:"channel_name,omitempty"`
	LastPosition  int        `json:"last_position"`
	LastWatchedAt *time.Time `json:"last_watched_at,omitempty"`
	NotesCount    int        `json:"notes_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Note is a quick note attached to a saved video, optionally anchored to a
// playback timestamp (seconds).
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	VideoID   int64     `json:"video_id"`
	Content   string    `json:"content"`
	Timestamp *int      `json:"timestamp,omitempty"`
	Tags      []Tag     `json:"tags"`
	Video     *Video    `json:"video,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tag struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Color      *string   `json:"color,omitempty"`
	NotesCount int       `json:"notes_count"`
	CreatedAt  time.Time `json:"created_at"`
}
