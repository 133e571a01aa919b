//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Announcement is a notice posted by staff to all members.
type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name,omitempty"`
}

// AnnouncementInput carries the fields of a new announcement.
type AnnouncementInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Normalize trims whitespace.
func (in *AnnouncementInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
}

// Validate checks the announcement fields.
func (in *AnnouncementInput) Validate() error {
	if in.Title == "" || in.Body == "" {
		return errors.New("title and body are required")
	}
	if utf8.RuneCountInString(in.Title) > 200 {
		return errors.New("title cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(in.Body) > 10000 {
		return errors.New("body cannot exceed 10000 characters")
	}
	return nil
}
