// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/domain"
)

type User struct {
	BaseModel
	Username     string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"`
	Role         domain.Role    `json:"role" gorm:"type:varchar(20);not null;index"`
	StageName    string         `json:"stage_name,omitempty" gorm:"size:100"`
	Bio          string         `json:"bio,omitempty" gorm:"type:text"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// DisplayName prefers the stage name.
func (u *User) DisplayName() string {
	if u.StageName != "" {
		return u.StageName
	}
	return u.Username
}
