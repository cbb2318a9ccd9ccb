package dbmodels

import (
	"time"

	"doc-flow-backend/models"

	"gorm.io/gorm"
)

// Route - экземпляр маршрута по одному документу.
// Кроме пометки удаления запись неизменяемая.
type Route struct {
	BaseModel
	DocumentID string         `gorm:"type:varchar(36);index"`
	Name       string         `gorm:"type:varchar(255)"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// RouteStep - шаг маршрута.
// Текущим считается шаг с незаполненной датой завершения,
// такой шаг в активном маршруте ровно один.
type RouteStep struct {
	BaseModel
	RouteID     string                 `gorm:"type:varchar(36);index"`
	Type        models.RouteStepType   `gorm:"type:varchar(20)"`
	Name        string                 `gorm:"type:varchar(255)"`
	TargetName  string                 `gorm:"type:varchar(100)"`
	TargetType  models.RouteTargetType `gorm:"type:varchar(10)"`
	Ordinal     int
	Transitions RouteTransitions `gorm:"type:jsonb"`
	EndDate     *time.Time
	ValidatorID *string `gorm:"type:varchar(36)"`
	Validator   *User   `gorm:"foreignKey:ValidatorID"`
	Transition  *string `gorm:"type:varchar(100)"`
	Comment     *string
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// FindTransition возвращает объявленный на шаге переход по имени.
func (s RouteStep) FindTransition(name string) *RouteTransition {
	for _, transition := range s.Transitions {
		if transition.Name == name {
			return &transition
		}
	}
	return nil
}
