package recruit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/almanarhr/recruit-api/internal/metrics"
	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

var (
	// ErrContactInvalid is returned when a contact submission lacks
	// a name, a message, or any way to reach the sender back.
	ErrContactInvalid = errors.New("contact requires name, message and email or phone")

	// ErrChatInvalid is returned when a chat transcript has no messages.
	ErrChatInvalid = errors.New("chat transcript requires at least one message")
)

// ContactService stores leads: contact-form submissions and chatbot
// transcripts captured by the public site.
type ContactService struct {
	contacts storage.ContactRepo
	chats    storage.ChatRepo
	metrics  *metrics.Metrics
}

// NewContactService constructs a ContactService. metrics may be nil.
func NewContactService(contacts storage.ContactRepo, chats storage.ChatRepo, m *metrics.Metrics) *ContactService {
	return &ContactService{contacts: contacts, chats: chats, metrics: m}
}

// SubmitContact validates and stores a contact-form submission.
func (s *ContactService) SubmitContact(ctx context.Context, msg *models.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Message) == "" {
		return ErrContactInvalid
	}
	if strings.TrimSpace(msg.Email) == "" && strings.TrimSpace(msg.Phone) == "" {
		return ErrContactInvalid
	}

	msg.ID = uuid.NewString()
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()

	if err := s.contacts.Save(ctx, msg); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.ContactMessages.Inc()
	}
	return nil
}

// ListContacts returns all contact submissions, newest first.
func (s *ContactService) ListContacts(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.contacts.ListAll(ctx)
}

// GetContact returns a contact submission by ID, or nil when not found.
func (s *ContactService) GetContact(ctx context.Context, id string) (*models.ContactMessage, error) {
	return s.contacts.GetByID(ctx, id)
}

// MarkContactRead flags a contact submission as handled.
func (s *ContactService) MarkContactRead(ctx context.Context, id string) error {
	return s.contacts.MarkRead(ctx, id)
}

// DeleteContact removes a contact submission.
func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}

// SubmitChat validates and stores a chatbot transcript.
func (s *ContactService) SubmitChat(ctx context.Context, t *models.ChatTranscript) error {
	if len(t.Messages) == 0 {
		return ErrChatInvalid
	}

	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	if err := s.chats.Save(ctx, t); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.ChatTranscripts.Inc()
	}
	return nil
}

// ListChats returns all captured chat transcripts, newest first.
func (s *ContactService) ListChats(ctx context.Context) ([]*models.ChatTranscript, error) {
	return s.chats.ListAll(ctx)
}

// GetChat returns a chat transcript by ID, or nil when not found.
func (s *ContactService) GetChat(ctx context.Context, id string) (*models.ChatTranscript, error) {
	return s.chats.GetByID(ctx, id)
}

// DeleteChat removes a chat transcript.
func (s *ContactService) DeleteChat(ctx context.Context, id string) error {
	return s.chats.Delete(ctx, id)
}
