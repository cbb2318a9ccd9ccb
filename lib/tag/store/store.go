package tagstore

import (
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Tag) (id string, err error)
	GetByID(id string) (rec *dbmodels.Tag, err error)
	List() (list []dbmodels.Tag, err error)
	Delete(id string) error
	AddToDocument(documentID, tagID string) error
	RemoveFromDocument(documentID, tagID string) error
	ListByDocument(documentID string) (list []dbmodels.DocumentTag, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Tag) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Tag, error) {
	rec := dbmodels.Tag{}
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

func (i impl) List() (list []dbmodels.Tag, err error) {
	list = []dbmodels.Tag{}
	err = i.db.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("tag_id = ?", id).
		Delete(&dbmodels.DocumentTag{}).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.Tag{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

// AddToDocument идемпотентно: повторное назначение метки не создаёт
// дубликат связи.
func (i impl) AddToDocument(documentID, tagID string) error {
	var count int64
	err := i.db.
		Model(&dbmodels.DocumentTag{}).
		Where("document_id = ?", documentID).
		Where("tag_id = ?", tagID).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rec := dbmodels.DocumentTag{
		DocumentID: documentID,
		TagID:      tagID,
	}
	return i.db.
		Omit("Tag").
		Save(&rec).
		Error
}

func (i impl) RemoveFromDocument(documentID, tagID string) error {
	return i.db.
		Where("document_id = ?", documentID).
		Where("tag_id = ?", tagID).
		Delete(&dbmodels.DocumentTag{}).
		Error
}

func (i impl) ListByDocument(documentID string) (list []dbmodels.DocumentTag, err error) {
	list = []dbmodels.DocumentTag{}
	err = i.db.
		Where("document_id = ?", documentID).
		Preload("Tag").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
