package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`
	Name         string    `gorm:"column:name" json:"name"`
	Role         string    `gorm:"not null;index;column:role" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ProjectAssignment links a MANAGER or AGENT to a project they may edit under
// the "assigned" permission scope.
type ProjectAssignment struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"userId"`
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey;index;column:project_id" json:"projectId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (ProjectAssignment) TableName() string { return "project_assignment" }
