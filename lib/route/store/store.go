package routestore

import (
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Route) (id string, err error)
	GetByID(id string) (rec *dbmodels.Route, err error)
	// GetLatestByDocument возвращает последний не удалённый маршрут
	// документа (активный маршрут, если у документа выставлен признак).
	GetLatestByDocument(documentID string) (rec *dbmodels.Route, err error)
	ListByDocument(documentID string) (list []dbmodels.Route, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Route) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Route, error) {
	rec := dbmodels.Route{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetLatestByDocument(documentID string) (*dbmodels.Route, error) {
	rec := dbmodels.Route{}
	err := i.db.
		Where("document_id = ?", documentID).
		Order("created_at DESC").
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

func (i impl) ListByDocument(documentID string) (list []dbmodels.Route, err error) {
	list = []dbmodels.Route{}
	err = i.db.
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Route{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}
