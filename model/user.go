package model

import "time"

// User row as the hosted backend stores it; the client reads it for sign-in
// checks and sender display names.
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Role        string    `json:"role"`

	Otp_enabled bool   `gorm:"default:false" json:"otp_enabled"`
	Otp_secret  string `json:"-"`
}
