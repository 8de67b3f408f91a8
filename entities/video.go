package entities

import (
	"github.com/google/uuid"
	"time"
)

type Video struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID         string    `json:"userId" gorm:"type:varchar(64);not null;index:idx_videos_user_id"`
	Title          string    `json:"title" gorm:"type:varchar(255);not null"`
	Description    string    `json:"description" gorm:"type:text;not null;default:''"`
	IsPublic       bool      `json:"isPublic" gorm:"not null;default:false;index:idx_videos_is_public"`
	PublicID       string    `json:"publicId" gorm:"type:varchar(500);not null;uniqueIndex:unique_videos_public_id"`
	OriginalSize   int64     `json:"originalSize" gorm:"type:bigint;not null"`
	CompressedSize int64     `json:"compressedSize" gorm:"type:bigint;not null"`
	Duration       float64   `json:"duration" gorm:"type:double precision;not null"`
	CreatedAt      time.Time `json:"createdAt" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Video) TableName() string {
	return "videos"
}
