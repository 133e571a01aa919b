package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
)

// MessagesPerPage is the page size of the admin inbox.
const MessagesPerPage = 20

// MessageServiceOptions groups dependencies for MessageService.
type MessageServiceOptions struct {
	Backend ports.MessageBackend // Required
	Logger  *slog.Logger         // Optional
}

// MessageService accepts contact-form messages and serves the admin inbox.
type MessageService struct {
	backend ports.MessageBackend
	logger  *slog.Logger
}

// NewMessageService constructs a new MessageService.
func NewMessageService(opts MessageServiceOptions) (*MessageService, error) {
	if opts.Backend == nil {
		return nil, errors.New("MessageBackend is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "message_service")
	}
	return &MessageService{backend: opts.Backend, logger: logger}, nil
}

// MustNewMessageService constructs a new MessageService and panics on error.
func MustNewMessageService(opts MessageServiceOptions) *MessageService {
	svc, err := NewMessageService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // startup wiring
	}
	return svc
}

// Send submits a contact-form message. No session is required.
func (s *MessageService) Send(ctx context.Context, in model.MessageInput) error {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	if err := s.backend.CreateMessage(ctx, in); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "contact message received")
	}
	return nil
}

// MessageList is one page of the inbox.
type MessageList struct {
	Messages   []model.Message
	Page       int // 1-based
	TotalPages int
	Count      int
}

// List fetches one page of messages. page is 1-based.
func (s *MessageService) List(ctx context.Context, token string, page int) (*MessageList, error) {
	if page < 1 {
		page = 1
	}
	q := model.PageQuery(page-1, MessagesPerPage, "")
	res, err := s.backend.ListMessages(ctx, token, q)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return &MessageList{
		Messages:   res.Items,
		Page:       page,
		TotalPages: model.PageCount(res.Count, q.Limit),
		Count:      res.Count,
	}, nil
}

// Delete removes a message.
func (s *MessageService) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.NotFound("message not found")
	}
	if err := s.backend.DeleteMessage(ctx, token, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
