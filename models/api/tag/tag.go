package tagapimodels

import (
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
)

type TagData struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (t TagData) Validate() error {
	if t.Name == "" {
		return errors.New("не указано имя метки")
	}
	if len(t.Name) > 36 {
		return errors.New("имя метки слишком длинное")
	}
	return nil
}

type TagView struct {
	TagData
	ID string `json:"id"`
}

func TagConvert(rec dbmodels.Tag) TagView {
	return TagView{
		TagData: TagData{
			Name:  rec.Name,
			Color: rec.Color,
		},
		ID: rec.ID,
	}
}
