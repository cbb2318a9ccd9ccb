package documentstore

import (
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Document) (id string, err error)
	GetByID(id string) (rec *dbmodels.Document, err error)
	List() (list []dbmodels.Document, err error)
	ListByCreator(creatorID string) (list []dbmodels.Document, err error)
	Delete(id string) error
	SetRouteActive(id string, active bool) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Document) (id string, err error) {
	err = i.db.
		Omit("Creator").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Document, error) {
	rec := dbmodels.Document{}
	err := i.db.
		Where("id = ?", id).
		Preload("Creator").
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

func (i impl) List() (list []dbmodels.Document, err error) {
	list = []dbmodels.Document{}
	err = i.db.
		Order("created_at DESC").
		Preload("Creator").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByCreator(creatorID string) (list []dbmodels.Document, err error) {
	list = []dbmodels.Document{}
	err = i.db.
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Preload("Creator").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Document{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) SetRouteActive(id string, active bool) error {
	return i.db.
		Model(&dbmodels.Document{}).
		Where("id = ?", id).
		Update("route_active", active).
		Error
}
