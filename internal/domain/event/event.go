package event

import (
	"errors"
	"time"
)

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartAt     time.Time `json:"startAt"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	SpotsTotal  int       `json:"spotsTotal"`
	SpotsTaken  int       `json:"spotsTaken"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("event not found")

// Derived values are computed on demand; the row stores only the counters.

func (e Event) SpotsAvailable() int {
	return e.SpotsTotal - e.SpotsTaken
}

func (e Event) IsFull() bool {
	return e.SpotsTaken >= e.SpotsTotal
}

func (e Event) IsPast(now time.Time) bool {
	return !now.Before(e.StartAt)
}
