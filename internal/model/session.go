package model

import "time"

// Session is the navigation state of one client. It replaces any notion of
// a process-wide "current user": every request names its session explicitly.
type Session struct {
	ID         string    `json:"session_id"   db:"session_id"`
	UserID     int64     `json:"user_id"      db:"user_id"`
	Page       string    `json:"page"         db:"page"`
	CreatedAt  time.Time `json:"created_at"   db:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at" db:"last_seen_at"`
}
