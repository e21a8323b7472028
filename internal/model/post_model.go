package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostModel rows are hard-deleted: removal is irreversible by contract, so
// there is no soft-delete column.
type PostModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	AuthorID    string    `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorEmail string    `gorm:"type:varchar(255);not null" json:"author_email"`
	Status      string    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PostModel) TableName() string { return "posts" }

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
