package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"agentsville/pkg/utils"
)

type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt int64          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EnsureIdentity assigns an id and timestamps if they are missing. The
// in-memory store calls it directly; gorm calls it through BeforeCreate.
func (b *BaseModel) EnsureIdentity() {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := utils.NowUnixSeconds()
	if b.CreatedAt == 0 {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	b.EnsureIdentity()
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = utils.NowUnixSeconds()
	return nil
}
