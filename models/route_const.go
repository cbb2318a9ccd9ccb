package models

type RouteStepType string

const (
	// Шаг согласования с выбором из двух переходов
	RouteStepTypeApprove RouteStepType = "APPROVE"
	// Простой шаг валидации, один переход
	RouteStepTypeValidate RouteStepType = "VALIDATE"
	// Шаг оценки резюме, рецензент выставляет оценки по категориям
	RouteStepTypeResumeReview RouteStepType = "RESUME_REVIEW"
)

func (t RouteStepType) IsValid() bool {
	switch t {
	case RouteStepTypeApprove, RouteStepTypeValidate, RouteStepTypeResumeReview:
		return true
	}
	return false
}

// RequiresRatings - на шаге обязателен список оценок
func (t RouteStepType) RequiresRatings() bool {
	return t == RouteStepTypeResumeReview
}

type RouteTargetType string

const (
	RouteTargetUser  RouteTargetType = "USER"
	RouteTargetGroup RouteTargetType = "GROUP"
)

func (t RouteTargetType) IsValid() bool {
	return t == RouteTargetUser || t == RouteTargetGroup
}

type RouteActionType string

const (
	RouteActionAddTag    RouteActionType = "ADD_TAG"
	RouteActionRemoveTag RouteActionType = "REMOVE_TAG"
)

func (t RouteActionType) IsValid() bool {
	return t == RouteActionAddTag || t == RouteActionRemoveTag
}

const (
	// Максимальная длина названия категории оценки
	ReviewCategoryMaxLength = 36
	// Допустимый диапазон значения оценки
	ReviewRatingMin = 1.0
	ReviewRatingMax = 5.0
)
