package model

import "time"

// Sleep is one sleep session. Duration is derived from the two timestamps
// and never stored.
//
// QualityScore is a pointer because "not recorded" is different from any
// score: the API reports it as null.
type Sleep struct {
	ID           int64     `json:"sleep_id"      db:"sleep_id"`
	UserID       int64     `json:"user_id"       db:"user_id"`
	StartTime    time.Time `json:"start_time"    db:"start_time"`
	EndTime      time.Time `json:"end_time"      db:"end_time"`
	QualityScore *int      `json:"quality_score" db:"quality_score"`
}

// Hours returns the session length in hours. It is negative when the end
// precedes the start, which the store does not forbid.
func (s Sleep) Hours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}
