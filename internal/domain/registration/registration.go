package registration

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// if this email already holds a spot for the event
var ErrAlreadyRegistered = errors.New("registration already exists")

// error if event is full
var ErrEventFull = errors.New("event is full")

var ErrNotFound = errors.New("registration not found")

type CreateRegistrationRequest struct {
	EventID string `form:"-"`
	Name    string `form:"name" binding:"required,min=2,max=120"`
	Email   string `form:"email" binding:"required,email"`
	Phone   string `form:"phone" binding:"omitempty,max=30"`
	Message string `form:"message" binding:"omitempty,max=1000"`
}

// A factory to build a Registration from the incoming form DTO

func NewFromCreateRequest(req CreateRegistrationRequest) Registration {
	return Registration{
		ID:        uuid.NewString(),
		EventID:   req.EventID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
}
