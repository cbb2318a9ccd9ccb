package routestepstore

import (
	"time"

	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.RouteStep) (id string, err error)
	// GetCurrent возвращает текущий шаг маршрута - первый по порядку
	// шаг без даты завершения, nil если все шаги завершены.
	GetCurrent(routeID string) (rec *dbmodels.RouteStep, err error)
	ListByRoute(routeID string) (list []dbmodels.RouteStep, err error)
	// Complete помечает шаг завершённым при условии, что он ещё не
	// завершён. Возвращает false, если шаг уже обработан параллельным
	// запросом.
	Complete(id, validatorID, transition string, comment *string, endDate time.Time) (done bool, err error)
	DeleteByRoute(routeID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RouteStep) (id string, err error) {
	err = i.db.
		Omit("Validator").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetCurrent(routeID string) (*dbmodels.RouteStep, error) {
	rec := dbmodels.RouteStep{}
	err := i.db.
		Where("route_id = ?", routeID).
		Where("end_date IS NULL").
		Order("ordinal ASC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByRoute(routeID string) (list []dbmodels.RouteStep, err error) {
	list = []dbmodels.RouteStep{}
	err = i.db.
		Where("route_id = ?", routeID).
		Order("ordinal ASC").
		Preload("Validator").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Complete(id, validatorID, transition string, comment *string, endDate time.Time) (bool, error) {
	updMap := map[string]interface{}{
		"end_date":     endDate,
		"validator_id": validatorID,
		"transition":   transition,
	}
	if comment != nil {
		updMap["comment"] = *comment
	}
	tx := i.db.
		Model(&dbmodels.RouteStep{}).
		Where("id = ?", id).
		Where("end_date IS NULL").
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) DeleteByRoute(routeID string) error {
	return i.db.
		Where("route_id = ?", routeID).
		Delete(&dbmodels.RouteStep{}).
		Error
}
