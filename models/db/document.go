package dbmodels

import (
	"gorm.io/gorm"
)

type Document struct {
	BaseModel
	Title       string `gorm:"type:varchar(255)"`
	Description string
	CreatorID   string `gorm:"type:varchar(36)"`
	Creator     *User  `gorm:"foreignKey:CreatorID"`
	// Признак активного маршрута по документу
	RouteActive bool
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type DocumentFile struct {
	BaseModel
	DocumentID string `gorm:"type:varchar(36);index"`
	Name       string `gorm:"type:varchar(255)"`
	MimeType   string `gorm:"type:varchar(100)"`
	Size       int64
}
