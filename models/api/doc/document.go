package docapimodels

import (
	"time"

	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
)

type DocumentData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (d DocumentData) Validate() error {
	if d.Title == "" {
		return errors.New("не указано название документа")
	}
	return nil
}

type DocumentView struct {
	DocumentData
	ID          string    `json:"id"`
	CreatorName string    `json:"creator_name"`
	RouteActive bool      `json:"route_active"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func DocumentConvert(rec dbmodels.Document, tags []dbmodels.DocumentTag) DocumentView {
	creatorName := ""
	if rec.Creator != nil {
		creatorName = rec.Creator.Login
	}
	tagNames := make([]string, 0, len(tags))
	for _, docTag := range tags {
		if docTag.Tag != nil {
			tagNames = append(tagNames, docTag.Tag.Name)
		}
	}
	return DocumentView{
		DocumentData: DocumentData{
			Title:       rec.Title,
			Description: rec.Description,
		},
		ID:          rec.ID,
		CreatorName: creatorName,
		RouteActive: rec.RouteActive,
		Tags:        tagNames,
		CreatedAt:   rec.CreatedAt,
	}
}
