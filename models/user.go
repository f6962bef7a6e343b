// user.go - Defines the User model for the database

package models // Declares the package name

import "time"

type User struct { // User struct represents a registered account in the database
	ID        uint      `gorm:"primaryKey"`                    // Unique user ID (primary key)
	Username  string    `gorm:"size:100;uniqueIndex;not null"` // Login name (must be unique, cannot be null)
	Password  string    `gorm:"not null" json:"-"`             // Bcrypt hash, never serialized
	CreatedAt time.Time // Set by gorm on insert
}
