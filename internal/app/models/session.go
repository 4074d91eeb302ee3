package models

import "time"

type Session struct {
	SessionID   string
	UserID      string
	TherapistID string
	ExpiresAt   time.Time
}
