package contact

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TopicSeparator joins the selected topic labels into the stored column.
const TopicSeparator = ","

type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Topics    []string  `json:"topics,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("contact message not found")

type CreateMessageRequest struct {
	Name    string   `form:"name" binding:"required,min=2,max=120"`
	Email   string   `form:"email" binding:"required,email"`
	Phone   string   `form:"phone" binding:"omitempty,max=30"`
	Topics  []string `form:"topics" binding:"omitempty,dive,max=60"`
	Message string   `form:"message" binding:"required,min=2,max=2000"`
}

func NewFromCreateRequest(req CreateMessageRequest) Message {
	return Message{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Topics:    req.Topics,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
}

// JoinTopics renders the topic set the way the column stores it.
func JoinTopics(topics []string) string {
	return strings.Join(topics, TopicSeparator)
}

func SplitTopics(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, TopicSeparator)
}
