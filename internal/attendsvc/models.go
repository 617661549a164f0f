package attendsvc

import (
	"time"

	"github.com/google/uuid"
)

// Attendee is a stored registration
type Attendee struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	Address   string    `json:"address" gorm:"not null;size:500"`
	Message   string    `json:"message" gorm:"size:2000"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (Attendee) TableName() string {
	return "attendees"
}

// AttendRequest is the body accepted by POST /attend
type AttendRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Address string `json:"address" binding:"required,min=5"`
	Message string `json:"message"`
}

// AttendeeResponse is one element of the GET /attend array
type AttendeeResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Message string `json:"message"`
}

func (a *Attendee) ToResponse() AttendeeResponse {
	return AttendeeResponse{
		ID:      a.ID.String(),
		Name:    a.Name,
		Address: a.Address,
		Message: a.Message,
	}
}
