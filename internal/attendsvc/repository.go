package attendsvc

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, attendee *Attendee) error
	List(ctx context.Context) ([]Attendee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, attendee *Attendee) error {
	return r.db.WithContext(ctx).Create(attendee).Error
}

// List returns attendees in registration order
func (r *repository) List(ctx context.Context) ([]Attendee, error) {
	var attendees []Attendee
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&attendees).Error
	if err != nil {
		return nil, err
	}
	return attendees, nil
}
