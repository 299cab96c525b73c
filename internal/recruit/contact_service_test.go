package recruit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

func newLeadsFixture() *ContactService {
	return NewContactService(storage.NewInMemoryContactRepo(), storage.NewInMemoryChatRepo(), nil)
}

func TestSubmitContact(t *testing.T) {
	ctx := context.Background()
	svc := newLeadsFixture()

	msg := &models.ContactMessage{
		Name:    "Visitor",
		Phone:   "+96650000000",
		Message: "Looking for a driver",
	}
	require.NoError(t, svc.SubmitContact(ctx, msg))
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Read)
	assert.False(t, msg.CreatedAt.IsZero())

	list, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Visitor", list[0].Name)
}

func TestSubmitContactValidation(t *testing.T) {
	ctx := context.Background()
	svc := newLeadsFixture()

	tests := []struct {
		name string
		msg  models.ContactMessage
	}{
		{"missing name", models.ContactMessage{Phone: "1", Message: "hi"}},
		{"missing message", models.ContactMessage{Name: "V", Phone: "1"}},
		{"no way to reply", models.ContactMessage{Name: "V", Message: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.msg
			err := svc.SubmitContact(ctx, &msg)
			assert.ErrorIs(t, err, ErrContactInvalid)
		})
	}
}

func TestSubmitChat(t *testing.T) {
	ctx := context.Background()
	svc := newLeadsFixture()

	transcript := &models.ChatTranscript{
		VisitorName:  "Visitor",
		VisitorPhone: "+96650000000",
		Messages: []models.ChatMessage{
			{Sender: "bot", Text: "Hello, how can we help?", SentAt: time.Now().UTC()},
			{Sender: "visitor", Text: "I need a nanny", SentAt: time.Now().UTC()},
		},
	}
	require.NoError(t, svc.SubmitChat(ctx, transcript))
	assert.NotEmpty(t, transcript.ID)

	got, err := svc.GetChat(ctx, transcript.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Messages, 2)

	empty := &models.ChatTranscript{VisitorName: "Visitor"}
	assert.ErrorIs(t, svc.SubmitChat(ctx, empty), ErrChatInvalid)
}
