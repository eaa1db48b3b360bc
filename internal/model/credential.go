package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential is a sign-in record in the SQL credential catalog.
type Credential struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255) COLLATE utf8mb4_bin;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null"`
	ProfileImage string    `json:"profileImage,omitempty" gorm:"size:512"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets the id when the caller did not supply one.
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Identity strips the password hash.
func (c *Credential) Identity() *Identity {
	return &Identity{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Role:         c.Role,
		ProfileImage: c.ProfileImage,
	}
}

// MockCredential is a record of the built-in demo catalog, stored with its plain password.
type MockCredential struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	Role         Role   `yaml:"role"`
	ProfileImage string `yaml:"profileImage"`
}

// Identity strips the password.
func (c MockCredential) Identity() *Identity {
	return &Identity{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Role:         c.Role,
		ProfileImage: c.ProfileImage,
	}
}
