//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/memberhub/portal/internal/domain/auth"
)

// Member is a member profile as served by the backend.
// Email is only populated for staff views.
type Member struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            auth.Role `json:"role"`
	Email           string    `json:"email,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Phone           string    `json:"phone,omitempty"`
}

// FullName joins first and last names.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Initials returns up to two initials for avatar placeholders.
func (m Member) Initials() string {
	var b strings.Builder
	for _, s := range []string{m.FirstName, m.LastName} {
		if r, _ := utf8.DecodeRuneInString(s); r != utf8.RuneError {
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	return b.String()
}

// AsUser converts the member into the identity shape used by access checks.
func (m Member) AsUser() auth.User {
	return auth.User{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Role:            m.Role,
		ProfileImageURL: m.ProfileImageURL,
	}
}

// MergeEmails copies e-mail addresses from withEmail into members by ID.
// Members absent from withEmail keep an empty address.
func MergeEmails(members, withEmail []Member) []Member {
	emails := make(map[string]string, len(withEmail))
	for _, m := range withEmail {
		emails[m.ID] = m.Email
	}
	out := make([]Member, len(members))
	for i, m := range members {
		m.Email = emails[m.ID]
		out[i] = m
	}
	return out
}

// ProfileInput carries the fields a member may edit on their own profile.
type ProfileInput struct {
	FirstName       string `json:"firstname"`
	LastName        string `json:"lastname"`
	Bio             string `json:"bio,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// Normalize trims whitespace from all fields.
func (in *ProfileInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ProfileImageURL = strings.TrimSpace(in.ProfileImageURL)
}

// Validate checks the profile fields.
func (in *ProfileInput) Validate() error {
	if in.FirstName == "" || in.LastName == "" {
		return errors.New("first and last name are required")
	}
	if utf8.RuneCountInString(in.FirstName) > 50 || utf8.RuneCountInString(in.LastName) > 50 {
		return errors.New("names cannot exceed 50 characters")
	}
	if utf8.RuneCountInString(in.Bio) > 1000 {
		return errors.New("bio cannot exceed 1000 characters")
	}
	if utf8.RuneCountInString(in.Phone) > 30 {
		return errors.New("phone cannot exceed 30 characters")
	}
	return nil
}
