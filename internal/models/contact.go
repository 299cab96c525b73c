package models

import "time"

// ContactMessage is a lead submitted through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is one turn of a chatbot conversation.
type ChatMessage struct {
	Sender string    `json:"sender"` // "bot" or "visitor"
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// ChatTranscript is a captured chatbot lead: visitor details plus the
// full message exchange, stored once the conversation ends.
type ChatTranscript struct {
	ID           string        `json:"id"`
	VisitorName  string        `json:"visitor_name,omitempty"`
	VisitorPhone string        `json:"visitor_phone,omitempty"`
	Messages     []ChatMessage `json:"messages"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AdminUser is a back-office account. Password is stored bcrypt-hashed.
type AdminUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

const RoleAdmin = "admin"
