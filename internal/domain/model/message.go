//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Message is a contact-form submission from the About Us page.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageInput carries a contact-form submission.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"message"`
}

// Normalize trims whitespace and lower-cases the address.
func (in *MessageInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)
}

// Validate checks the message fields.
func (in *MessageInput) Validate() error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return errors.New("a valid e-mail address is required")
	}
	if in.Body == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(in.Body) > 5000 {
		return errors.New("message cannot exceed 5000 characters")
	}
	return nil
}
