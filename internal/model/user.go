package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email           *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	FirstName       *string   `gorm:"type:varchar(255)" json:"first_name"`
	LastName        *string   `gorm:"type:varchar(255)" json:"last_name"`
	ProfileImageURL *string   `gorm:"type:text" json:"profile_image_url"`
	Role            Role      `gorm:"type:user_role;not null;default:driver" json:"role"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
