package model

import "time"

// TeamMember links a user to a team with a role the backend's policies act on.
type TeamMember struct {
	TeamID   string    `gorm:"primaryKey" json:"team_id"`
	UserID   string    `gorm:"primaryKey" json:"user_id"`
	Role     string    `gorm:"not null;default:'member'" json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// AttendanceRecord is one check-in/out pair for a user and day.
type AttendanceRecord struct {
	ID       string     `gorm:"primaryKey" json:"id"`
	UserID   string     `gorm:"index;not null" json:"user_id"`
	TeamID   string     `gorm:"index;not null" json:"team_id"`
	Day      string     `gorm:"index;not null" json:"day"`
	CheckIn  time.Time  `json:"check_in"`
	CheckOut *time.Time `json:"check_out,omitempty"`
}
