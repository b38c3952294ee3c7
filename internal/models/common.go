package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - id генерируется в приложении, чтобы не зависеть от uuid_generate_v4()
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All возвращает все модели в порядке миграции
func All() []interface{} {
	return []interface{}{
		&Account{},
		&UserProfile{},
		&RecruiterProfile{},
		&AdminProfile{},
		&Resume{},
		&Job{},
		&AppliedJob{},
		&FavoriteJob{},
		&JobAlert{},
	}
}
