package tokenpkg

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Different types of error returned by the VerifyToken function.
var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// ErrInvalidUserID is returned when a token is requested for a non-positive user id.
var ErrInvalidUserID = errors.New("user id must be positive")

// Payload contains the payload data of the token.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

// NewPayload creates a new token payload with a specific user id and duration.
func NewPayload(userID int64, duration time.Duration) (*Payload, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		ID:        tokenID,
		UserID:    userID,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	return payload, nil
}

// Valid checks if the token payload is valid or not.
func (payload *Payload) Valid() error {
	if payload.UserID <= 0 {
		return ErrInvalidToken
	}

	if time.Now().After(payload.ExpiredAt) {
		return ErrExpiredToken
	}

	return nil
}
