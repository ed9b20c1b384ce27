package dto

import (
	"encoding/json"

	"vidnotes/domain/model"
)

// StoreVideoRequest saves (or re-saves) a YouTube video into the library.
type StoreVideoRequest struct {
	YouTubeID   string  `json:"youtube_id" binding:"required"`
	Title       string  `json:"title" binding:"required,max=255"`
	Thumbnail   *string `json:"thumbnail"`
	ChannelName *string `json:"channel_name" binding:"omitempty,max=255"`
}

// UpdatePositionRequest records the playback position of a video.
type UpdatePositionRequest struct {
	Position int `json:"position" binding:"min=0"`
}

// VideoListResponse is a page of library videos.
type VideoListResponse struct {
	Videos      []model.Video `json:"videos"`
	CurrentPage int           `json:"current_page"`
	LastPage    int           `json:"last_page"`
	PerPage     int           `json:"per_page"`
	Total       int64         `json:"total"`
}

// StoreNoteRequest creates a quick note on a saved video.
type StoreNoteRequest struct {
	VideoID   int64   `json:"video_id" binding:"required"`
	Content   string  `json:"content" binding:"required"`
	Timestamp *int    `json:"timestamp" binding:"omitempty,min=0"`
	Tags      []int64 `json:"tags"`
}

// UpdateNoteRequest edits a note's content, timestamp or tag set.
type UpdateNoteRequest struct {
	Content   string   `json:"content" binding:"required"`
	Timestamp *int     `json:"timestamp" binding:"omitempty,min=0"`
	Tags      *[]int64 `json:"tags"`
}

// NoteFilter narrows the notes listing.
type NoteFilter struct {
	Search  string
	TagID   int64
	VideoID int64
	Page    int
	PerPage int
}

type NoteListResponse struct {
	Notes       []model.Note `json:"notes"`
	CurrentPage int          `json:"current_page"`
	LastPage    int          `json:"last_page"`
	PerPage     int          `json:"per_page"`
	Total       int64        `json:"total"`
}

// StoreDocumentRequest creates or replaces the document of a saved video.
// All fields are optional; a missing tags key leaves the tag set alone.
type StoreDocumentRequest struct {
	Content     *string         `json:"content"`
	ContentJSON json.RawMessage `json:"content_json"`
	Tags        *[]int64        `json:"tags"`
}

type StoreTagRequest struct {
	Name  string  `json:"name" binding:"required,max=50"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}
