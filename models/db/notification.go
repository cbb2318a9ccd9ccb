package dbmodels

import "doc-flow-backend/models"

// NotificationData - отложенные пуши для пользователей без активного
// ws-соединения, отправляются при следующем подключении.
type NotificationData struct {
	BaseModel
	UserID string          `gorm:"type:varchar(36);index:idx_notify_user"`
	Code   models.PushCode `gorm:"type:varchar(255)"`
	Title  string
	Msg    string
}
