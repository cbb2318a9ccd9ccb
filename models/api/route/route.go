package routeapimodels

import (
	"math"
	"time"

	"doc-flow-backend/models"
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
)

type RouteStartData struct {
	DocumentID   string `json:"document_id"`
	RouteModelID string `json:"route_model_id"`
}

func (d RouteStartData) Validate() error {
	if d.DocumentID == "" {
		return errors.New("не указан идентификатор документа")
	}
	if d.RouteModelID == "" {
		return errors.New("не указан идентификатор модели маршрута")
	}
	return nil
}

type RatingData struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

func (d RatingData) Validate() error {
	if d.Category == "" {
		return errors.New("не указана категория оценки")
	}
	if len(d.Category) > models.ReviewCategoryMaxLength {
		return errors.Errorf("категория оценки длиннее %v символов", models.ReviewCategoryMaxLength)
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
		return errors.New("недопустимое значение оценки")
	}
	if d.Value < models.ReviewRatingMin || d.Value > models.ReviewRatingMax {
		return errors.Errorf("значение оценки должно быть в диапазоне от %v до %v", models.ReviewRatingMin, models.ReviewRatingMax)
	}
	return nil
}

type RouteValidateData struct {
	DocumentID string        `json:"document_id"`
	Transition string        `json:"transition"`
	Ratings    *[]RatingData `json:"ratings,omitempty"`
	Comment    string        `json:"comment"`
}

// Validate проверяет форму запроса. Обязательность списка оценок
// зависит от типа текущего шага и проверяется обработчиком маршрута.
func (d RouteValidateData) Validate() error {
	if d.DocumentID == "" {
		return errors.New("не указан идентификатор документа")
	}
	if d.Transition == "" {
		return errors.New("не указан переход")
	}
	if d.Ratings != nil {
		for _, rating := range *d.Ratings {
			if err := rating.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

type RouteStepView struct {
	ID         string                 `json:"id"`
	Type       models.RouteStepType   `json:"type"`
	Name       string                 `json:"name"`
	TargetName string                 `json:"target_name"`
	TargetType models.RouteTargetType `json:"target_type"`
	Ordinal    int                    `json:"ordinal"`
	EndDate    *time.Time             `json:"end_date,omitempty"`
	Validator  string                 `json:"validator,omitempty"`
	Transition string                 `json:"transition,omitempty"`
	Comment    string                 `json:"comment,omitempty"`
}

func RouteStepConvert(rec dbmodels.RouteStep) RouteStepView {
	view := RouteStepView{
		ID:         rec.ID,
		Type:       rec.Type,
		Name:       rec.Name,
		TargetName: rec.TargetName,
		TargetType: rec.TargetType,
		Ordinal:    rec.Ordinal,
		EndDate:    rec.EndDate,
	}
	if rec.Validator != nil {
		view.Validator = rec.Validator.Login
	}
	if rec.Transition != nil {
		view.Transition = *rec.Transition
	}
	if rec.Comment != nil {
		view.Comment = *rec.Comment
	}
	return view
}

type RouteView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Steps     []RouteStepView `json:"steps"`
	CreatedAt time.Time       `json:"created_at"`
}

func RouteConvert(rec dbmodels.Route, steps []dbmodels.RouteStep) RouteView {
	stepViews := make([]RouteStepView, 0, len(steps))
	for _, step := range steps {
		stepViews = append(stepViews, RouteStepConvert(step))
	}
	return RouteView{
		ID:        rec.ID,
		Name:      rec.Name,
		Steps:     stepViews,
		CreatedAt: rec.CreatedAt,
	}
}

// RouteValidateResult - результат обработки шага: следующий шаг
// (отсутствует, если маршрут завершён) и признак сохранения доступа
// на чтение документа.
type RouteValidateResult struct {
	RouteStep *RouteStepView `json:"route_step,omitempty"`
	Readable  bool           `json:"readable"`
}
