package taghandler

import (
	"doc-flow-backend/db"
	tagstore "doc-flow-backend/lib/tag/store"
	"doc-flow-backend/lib/utils/apperrors"
	tagapimodels "doc-flow-backend/models/api/tag"
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Create(data tagapimodels.TagData) (id string, err error)
	List() (list []tagapimodels.TagView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: tagstore.NewInstance(db.DB),
	}
}

type impl struct {
	store tagstore.Provider
}

func (i impl) Create(data tagapimodels.TagData) (string, error) {
	rec := dbmodels.Tag{
		Name:  data.Name,
		Color: data.Color,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания метки")
	}
	return id, nil
}

func (i impl) List() ([]tagapimodels.TagView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка меток")
	}
	result := make([]tagapimodels.TagView, 0, len(list))
	for _, rec := range list {
		result = append(result, tagapimodels.TagConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения метки")
	}
	if rec == nil {
		return apperrors.ErrNotFound
	}
	return i.store.Delete(id)
}
