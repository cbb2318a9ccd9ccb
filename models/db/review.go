package dbmodels

// Review - одна оценка по категории в рамках шага RESUME_REVIEW.
// Создаётся только вместе с завершением шага, не изменяется и не
// удаляется отдельно от родительского шага.
type Review struct {
	BaseModel
	RouteStepID string  `gorm:"type:varchar(36);index"`
	Category    string  `gorm:"type:varchar(36)"`
	Value       float64
	// Порядок подачи оценки внутри шага
	Ordinal int
}
