//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultEventImage is shown for events without an uploaded image.
const DefaultEventImage = "/static/img/event.svg"

// EventsPerPage is the page size for every event listing.
const EventsPerPage = 6

// EventTab selects upcoming or past events.
type EventTab string

const (
	EventTabFuture EventTab = "future"
	EventTabPast   EventTab = "past"
)

// ParseEventTab returns the tab named by s, defaulting to future.
func ParseEventTab(s string) EventTab {
	if EventTab(strings.ToLower(strings.TrimSpace(s))) == EventTabPast {
		return EventTabPast
	}
	return EventTabFuture
}

// Event is an organisation event as served by the backend.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	ImageURL    string    `json:"image_url,omitempty"`
}

// Image returns the event image, or the default placeholder.
func (e Event) Image() string {
	if e.ImageURL == "" {
		return DefaultEventImage
	}
	return e.ImageURL
}

// Upcoming reports whether the event has not ended yet at now.
func (e Event) Upcoming(now time.Time) bool {
	return e.EndDate.After(now)
}

// EventInput carries the editable fields of an event.
type EventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// Normalize trims whitespace from text fields.
func (in *EventInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// Validate checks the event fields.
func (in *EventInput) Validate() error {
	if in.Title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(in.Title) > 200 {
		return errors.New("title cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(in.Description) > 5000 {
		return errors.New("description cannot exceed 5000 characters")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return errors.New("start and end dates are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return errors.New("end date must not be before start date")
	}
	return nil
}
