package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeRegistrationReceived NotificationType = "REGISTRATION_RECEIVED"
)

// RegistrationNotification announces a registration confirmed by the attendance service
type RegistrationNotification struct {
	ID         uuid.UUID        `json:"id"`
	Type       NotificationType `json:"type"`
	Name       string           `json:"name"`
	Address    string           `json:"address"`
	Message    string           `json:"message,omitempty"`
	EventTitle string           `json:"event_title"`
	RequestID  string           `json:"request_id,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewRegistrationNotification builds a notification with a fresh id and timestamp
func NewRegistrationNotification(name, address, message, eventTitle string) *RegistrationNotification {
	return &RegistrationNotification{
		ID:         uuid.New(),
		Type:       NotificationTypeRegistrationReceived,
		Name:       name,
		Address:    address,
		Message:    message,
		EventTitle: eventTitle,
		CreatedAt:  time.Now().UTC(),
	}
}

// GetPartitionKey keeps every registration for the same name on one partition
func (n *RegistrationNotification) GetPartitionKey() string {
	return n.Name
}

func (n *RegistrationNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
