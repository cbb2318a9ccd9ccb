package reviewstore

import (
	"doc-flow-backend/models"
	dbmodels "doc-flow-backend/models/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteReviews - маршрут с оценками всех его шагов типа RESUME_REVIEW
// в порядке завершения шагов. Список пуст, если шаги ещё не завершены.
type RouteReviews struct {
	Route   dbmodels.Route
	Reviews []dbmodels.Review
}

// ReviewComment - комментарий шага вместе с автором (валидатором шага).
type ReviewComment struct {
	Author   string
	Contents string
}

type Provider interface {
	// Create сохраняет оценку. Валидация диапазона и категории
	// выполняется до вызова, на границе обработки перехода.
	Create(rec dbmodels.Review) (id string, err error)
	// FindByDocument возвращает маршруты документа, содержащие шаги
	// оценки резюме, от нового к старому. Оценки внутри маршрута
	// упорядочены по дате завершения шага, затем по порядку подачи.
	FindByDocument(documentID string) (list []RouteReviews, err error)
	// GetComments возвращает непустые комментарии всех шагов маршрута
	// с логином валидатора, по дате завершения шага.
	GetComments(routeID string) (list []ReviewComment, err error)
	// CountByRoute - число оценок по всем шагам маршрута.
	CountByRoute(routeID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Review) (id string, err error) {
	rec.ID = uuid.NewString()
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

type reviewRow struct {
	dbmodels.Review `gorm:"embedded"`
	RouteID         string
}

func (i impl) FindByDocument(documentID string) ([]RouteReviews, error) {
	routes := []dbmodels.Route{}
	err := i.db.
		Model(&dbmodels.Route{}).
		Distinct("routes.*").
		Joins("JOIN route_steps ON route_steps.route_id = routes.id").
		Where("routes.document_id = ?", documentID).
		Where("route_steps.type = ?", models.RouteStepTypeResumeReview).
		Where("route_steps.deleted_at IS NULL").
		Order("routes.created_at DESC").
		Find(&routes).
		Error
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return []RouteReviews{}, nil
	}

	rows := []reviewRow{}
	err = i.db.
		Model(&dbmodels.Review{}).
		Select("reviews.*, route_steps.route_id AS route_id").
		Joins("JOIN route_steps ON route_steps.id = reviews.route_step_id").
		Joins("JOIN routes ON routes.id = route_steps.route_id").
		Where("routes.document_id = ?", documentID).
		Where("routes.deleted_at IS NULL").
		Where("route_steps.deleted_at IS NULL").
		Where("route_steps.type = ?", models.RouteStepTypeResumeReview).
		Order("route_steps.end_date ASC, reviews.ordinal ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	byRoute := map[string][]dbmodels.Review{}
	for _, row := range rows {
		byRoute[row.RouteID] = append(byRoute[row.RouteID], row.Review)
	}
	result := make([]RouteReviews, 0, len(routes))
	for _, route := range routes {
		reviews := byRoute[route.ID]
		if reviews == nil {
			reviews = []dbmodels.Review{}
		}
		result = append(result, RouteReviews{
			Route:   route,
			Reviews: reviews,
		})
	}
	return result, nil
}

func (i impl) GetComments(routeID string) ([]ReviewComment, error) {
	list := []ReviewComment{}
	err := i.db.
		Model(&dbmodels.RouteStep{}).
		Select("users.login AS author, route_steps.comment AS contents").
		Joins("JOIN users ON users.id = route_steps.validator_id").
		Where("route_steps.route_id = ?", routeID).
		Where("route_steps.comment IS NOT NULL").
		Where("route_steps.comment <> ''").
		Order("route_steps.end_date ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByRoute(routeID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Review{}).
		Joins("JOIN route_steps ON route_steps.id = reviews.route_step_id").
		Where("route_steps.route_id = ?", routeID).
		Where("route_steps.deleted_at IS NULL").
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
