package domain

import (
	"time"
)

// SearchRecord is one logged search, kept for the /recent command.
type SearchRecord struct {
	ID          string    `json:"id"`
	ChatID      int64     `json:"chat_id"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}
