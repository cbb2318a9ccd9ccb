package reviewapimodels

// ReviewsView - агрегированная история оценок по документу.
// Маршруты идут от самого нового к самому старому, оценки и
// комментарии внутри маршрута - в порядке завершения шагов.
type ReviewsView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Workflows   []WorkflowView `json:"workflows"`
}

type WorkflowView struct {
	Name       string        `json:"name"`
	Ratings    []RatingView  `json:"ratings"`
	NumRatings int           `json:"num_ratings"`
	Comments   []CommentView `json:"comments"`
}

type RatingView struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type CommentView struct {
	Author   string `json:"author"`
	Contents string `json:"contents"`
}
