package filestore

import (
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	SaveFile(rec dbmodels.DocumentFile) (id string, err error)
	GetByID(id string) (rec *dbmodels.DocumentFile, err error)
	ListByDocument(documentID string) (list []dbmodels.DocumentFile, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) SaveFile(rec dbmodels.DocumentFile) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.DocumentFile, error) {
	rec := dbmodels.DocumentFile{}
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

func (i impl) ListByDocument(documentID string) (list []dbmodels.DocumentFile, err error) {
	list = []dbmodels.DocumentFile{}
	err = i.db.
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
