package models

import (
	"strings"
	"time"
)

// ===========================================
// INTERACTION EVENTS
// ===========================================

// UserType identifies who triggered an interaction event.
type UserType string

const (
	UserTypeClient UserType = "CLIENT"
	UserTypeAdmin  UserType = "ADMIN"
	UserTypeGuest  UserType = "GUEST"
)

// ParseUserType normalizes a raw user type to its canonical form.
// Unknown values are preserved upper-cased so the event is still recorded.
func ParseUserType(s string) UserType {
	return UserType(strings.ToUpper(strings.TrimSpace(s)))
}

// ActionType identifies the tracked user action on a worker profile.
// The set is open: unknown action types are stored as sent (upper-cased)
// and participate in totals, so new frontend actions don't require a deploy.
type ActionType string

const (
	ActionView           ActionType = "VIEW"
	ActionCall           ActionType = "CALL"
	ActionShare          ActionType = "SHARE"
	ActionWhatsApp       ActionType = "WHATSAPP"
	ActionDownloadResume ActionType = "DOWNLOAD_RESUME"
)

// KnownActions lists the canonical action types in display order.
var KnownActions = []ActionType{
	ActionView,
	ActionCall,
	ActionShare,
	ActionWhatsApp,
	ActionDownloadResume,
}

// NormalizeAction upper-cases a raw action type.
func NormalizeAction(s string) ActionType {
	return ActionType(strings.ToUpper(strings.TrimSpace(s)))
}

// InteractionEvent is one recorded user action on a worker profile.
// Events are append-only: no update or delete path exists.
type InteractionEvent struct {
	ID         string     `json:"id"`
	UserType   UserType   `json:"user_type"`
	UserID     string     `json:"user_id,omitempty"`
	WorkerID   string     `json:"worker_id"`
	ActionType ActionType `json:"action_type"`

	// Server-side enrichment; not part of the ingest contract.
	GeoCountry string `json:"geo_country,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// EventInput is the wire form accepted by the public ingest endpoint,
// either alone or as an array element.
type EventInput struct {
	UserType   string `json:"userType"`
	UserID     string `json:"userId,omitempty"`
	WorkerID   string `json:"workerId"`
	ActionType string `json:"actionType"`
}

// Valid reports whether all required fields are present.
func (e EventInput) Valid() bool {
	return strings.TrimSpace(e.UserType) != "" &&
		strings.TrimSpace(e.WorkerID) != "" &&
		strings.TrimSpace(e.ActionType) != ""
}
