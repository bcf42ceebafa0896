package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// RegistrationCursor is the keyset position for the admin registrations
// listing: everything strictly older than (CreatedAt, ID) comes next.
type RegistrationCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

func EncodeRegistrationCursor(createdAt time.Time, id string) (string, error) {
	b, err := json.Marshal(RegistrationCursor{CreatedAt: createdAt, ID: id})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeRegistrationCursor(cursor string) (RegistrationCursor, error) {
	if cursor == "" {
		return RegistrationCursor{}, errors.New("empty cursor")
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return RegistrationCursor{}, err
	}

	var c RegistrationCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return RegistrationCursor{}, err
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return RegistrationCursor{}, errors.New("invalid cursor payload")
	}
	return c, nil
}
