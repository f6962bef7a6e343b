package models

import "time"

// Command is a stored snippet owned by exactly one user.
// Only Title, Technology and Content change after creation.
type Command struct {
	ID         uint       `gorm:"primaryKey"`                                                                // Unique ID
	Title      string     `gorm:"size:255;not null"`                                                         // Short label
	Technology Technology `gorm:"size:32;not null;index"`                                                    // Tag, stored by name
	Content    string     `gorm:"type:text;not null"`                                                        // Snippet body
	CreatedAt  time.Time  `gorm:"not null;index"`                                                            // Set once by the service
	UserID     uint       `gorm:"not null;index"`                                                            // Foreign key to users table
	User       *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Owner, rows go away with it
}

// OwnedBy reports whether the command belongs to the given user.
func (c *Command) OwnedBy(user *User) bool {
	return c != nil && user != nil && c.UserID == user.ID
}
