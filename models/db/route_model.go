package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"doc-flow-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RouteModel - шаблон маршрута согласования документа.
// Порядок шагов фиксируется при создании и далее не меняется.
type RouteModel struct {
	BaseModel
	Name      string             `gorm:"type:varchar(255)"`
	Steps     RouteStepTemplates `gorm:"type:jsonb"`
	DeletedAt gorm.DeletedAt     `gorm:"index"`
}

type RouteStepTemplate struct {
	Type        models.RouteStepType `json:"type"`
	Name        string               `json:"name"`
	Target      RouteTarget          `json:"target"`
	Transitions []RouteTransition    `json:"transitions"`
}

type RouteTarget struct {
	Name string                 `json:"name"` // логин пользователя или имя группы
	Type models.RouteTargetType `json:"type"`
}

type RouteTransition struct {
	Name    string        `json:"name"`
	Actions []RouteAction `json:"actions"`
}

type RouteAction struct {
	Type  models.RouteActionType `json:"type"`
	TagID string                 `json:"tag_id,omitempty"`
}

type RouteStepTemplates []RouteStepTemplate

func (j RouteStepTemplates) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *RouteStepTemplates) Scan(value any) error {
	return scanJSON(value, j)
}

type RouteTransitions []RouteTransition

func (j RouteTransitions) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *RouteTransitions) Scan(value any) error {
	return scanJSON(value, j)
}

func scanJSON(value any, out any) error {
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, out)
	case string:
		return json.Unmarshal([]byte(data), out)
	}
	return errors.Errorf("неподдерживаемый тип jsonb значения: %T", value)
}
