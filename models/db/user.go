package dbmodels

import (
	"doc-flow-backend/models"
)

type User struct {
	BaseModel
	Login    string `gorm:"type:varchar(100);uniqueIndex"`
	Email    string `gorm:"type:varchar(255)"`
	Password string `gorm:"type:varchar(64)"`
	Role     models.UserRole
}

type Group struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex"`
}

type GroupMember struct {
	BaseModel
	GroupID string `gorm:"type:varchar(36);index:idx_group_member"`
	UserID  string `gorm:"type:varchar(36);index:idx_group_member"`
	User    *User  `gorm:"foreignKey:UserID"`
}
