// Package domain contains core domain types for the ticket bot.
package domain

import (
	"time"
)

// Event represents a single ticketed event returned by the search API.
type Event struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Day      time.Time `json:"day"`
	Price    int64     `json:"price"`
	Deeplink string    `json:"deeplink"`
}

// HasDeeplink returns true if the event carries a booking link.
func (e *Event) HasDeeplink() bool {
	return e.Deeplink != ""
}
