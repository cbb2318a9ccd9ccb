package reviewshandler

import (
	"doc-flow-backend/db"
	reviewstore "doc-flow-backend/lib/review/store"
	routehandler "doc-flow-backend/lib/route"
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/models"
	reviewapimodels "doc-flow-backend/models/api/review"

	"github.com/pkg/errors"
)

type Provider interface {
	// Get собирает историю оценок документа по всем его маршрутам.
	Get(documentID, userID string, role models.UserRole) (*reviewapimodels.ReviewsView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		reviewStore: reviewstore.NewInstance(db.DB),
	}
}

type impl struct {
	reviewStore reviewstore.Provider
}

func (i impl) Get(documentID, userID string, role models.UserRole) (*reviewapimodels.ReviewsView, error) {
	doc, err := routehandler.Instance.GetReadable(documentID, userID, role)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.ErrNotFound
	}
	routeReviews, err := i.reviewStore.FindByDocument(doc.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения оценок документа")
	}
	workflows := make([]reviewapimodels.WorkflowView, 0, len(routeReviews))
	for _, item := range routeReviews {
		ratings := make([]reviewapimodels.RatingView, 0, len(item.Reviews))
		for _, review := range item.Reviews {
			ratings = append(ratings, reviewapimodels.RatingView{
				Category: review.Category,
				Value:    review.Value,
			})
		}
		comments, err := i.reviewStore.GetComments(item.Route.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения комментариев маршрута")
		}
		commentViews := make([]reviewapimodels.CommentView, 0, len(comments))
		for _, comment := range comments {
			commentViews = append(commentViews, reviewapimodels.CommentView{
				Author:   comment.Author,
				Contents: comment.Contents,
			})
		}
		numRatings, err := i.reviewStore.CountByRoute(item.Route.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка подсчёта оценок маршрута")
		}
		workflows = append(workflows, reviewapimodels.WorkflowView{
			Name:       item.Route.Name,
			Ratings:    ratings,
			NumRatings: int(numRatings),
			Comments:   commentViews,
		})
	}
	return &reviewapimodels.ReviewsView{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		Workflows:   workflows,
	}, nil
}
