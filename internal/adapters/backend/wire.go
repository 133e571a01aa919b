package backend

import (
	"time"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/model"
)

// Wire shapes of the member service. Field names follow the service's JSON.

type wireImage struct {
	URL string `json:"url"`
}

func (w *wireImage) url() string {
	if w == nil {
		return ""
	}
	return w.URL
}

type wireUser struct {
	ID           string     `json:"_id"`
	FirstName    string     `json:"firstname"`
	LastName     string     `json:"lastname"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	IsVerified   bool       `json:"isVerified"`
	ProfileImage *wireImage `json:"profileImage"`
	Bio          string     `json:"bio"`
	Phone        string     `json:"phone"`
}

func (w wireUser) toUser() (domainauth.User, error) {
	role, err := domainauth.ParseRole(w.Role)
	if err != nil {
		return domainauth.User{}, err
	}
	return domainauth.User{
		ID:              w.ID,
		FirstName:       w.FirstName,
		LastName:        w.LastName,
		Email:           w.Email,
		Role:            role,
		IsVerified:      w.IsVerified,
		ProfileImageURL: w.ProfileImage.url(),
	}, nil
}

func (w wireUser) toMember() (model.Member, error) {
	role, err := domainauth.ParseRole(w.Role)
	if err != nil {
		return model.Member{}, err
	}
	return model.Member{
		ID:              w.ID,
		FirstName:       w.FirstName,
		LastName:        w.LastName,
		Role:            role,
		Email:           w.Email,
		ProfileImageURL: w.ProfileImage.url(),
		Bio:             w.Bio,
		Phone:           w.Phone,
	}, nil
}

type wireEvent struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Image       *wireImage `json:"image"`
}

func (w wireEvent) toEvent() model.Event {
	return model.Event{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Location:    w.Location,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		ImageURL:    w.Image.url(),
	}
}

type wireAnnouncement struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
	} `json:"author"`
}

func (w wireAnnouncement) toAnnouncement() model.Announcement {
	a := model.Announcement{ID: w.ID, Title: w.Title, Body: w.Content, CreatedAt: w.CreatedAt}
	if w.Author != nil {
		a.AuthorName = w.Author.FirstName + " " + w.Author.LastName
	}
	return a
}

type wireMessage struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireMessage) toMessage() model.Message {
	return model.Message{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Subject:   w.Subject,
		Body:      w.Message,
		CreatedAt: w.CreatedAt,
	}
}

type wireAnnouncementInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
