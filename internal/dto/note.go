// Package dto defines the request and response shapes of the HTTP API.
package dto

// NoteCreateRequest creates a new note.
type NoteCreateRequest struct {
	Title   string   `json:"title" form:"title" binding:"required"`
	Content string   `json:"content" form:"content"`
	Labels  []string `json:"labels" form:"labels"`
}

// NoteUpdateRequest updates title/content/labels of an existing note.
type NoteUpdateRequest struct {
	Title   string   `json:"title" form:"title" binding:"required"`
	Content string   `json:"content" form:"content"`
	Labels  []string `json:"labels" form:"labels"`
}

// NoteSearchRequest full-text query against title and content.
type NoteSearchRequest struct {
	Query string `json:"query" form:"query" binding:"required"`
}

// ReminderSetRequest attaches or reconfigures the reminder of a note.
// Time uses the "2006-01-02 15:04:05" local wall-clock format.
type ReminderSetRequest struct {
	Time           string `json:"time" form:"time" binding:"required"`
	RepeatInterval string `json:"repeatInterval" form:"repeatInterval"`
	IsEnabled      *bool  `json:"isEnabled" form:"isEnabled"`
}
