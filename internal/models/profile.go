package models

import "gorm.io/gorm"

// Profile holds the free-text contact and address details for a user.
// One profile per user; created empty at registration.
type Profile struct {
	UserID     string `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	FirstName  string `json:"first_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	LastName   string `json:"last_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Phone      string `json:"phone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	Email      string `json:"email" gorm:"type:varchar(255)" validate:"omitempty,email"`
	Address    string `json:"address" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	City       string `json:"city" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	State      string `json:"state" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Zip        string `json:"zip" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	gorm.Model `json:"-"`
}
