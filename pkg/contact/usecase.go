package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidMessage = errors.New("invalid contact message")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const maxBodyLen = 5000

// ContactUseCase accepts contact form submissions.
type ContactUseCase interface {
	Submit(ctx context.Context, name, email, subject, body string) (Message, error)
}

type contactService struct {
	repo MessageRepository
}

// NewContactService returns default implementation of ContactUseCase.
func NewContactService(repo MessageRepository) ContactUseCase {
	return &contactService{repo: repo}
}

func (s *contactService) Submit(ctx context.Context, name, email, subject, body string) (Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)

	if name == "" || body == "" || !emailRe.MatchString(email) {
		return Message{}, ErrInvalidMessage
	}
	if len(body) > maxBodyLen {
		return Message{}, ErrInvalidMessage
	}

	m := Message{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Message{}, err
	}
	return m, nil
}
