package routeapimodels

import (
	"math"
	"strings"
	"testing"

	"doc-flow-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRatingDataValidate(t *testing.T) {
	t.Run(`valid ratings`, func(t *testing.T) {
		for _, value := range []float64{1, 1.5, 3, 4.99, 5} {
			rating := RatingData{Category: "GRE", Value: value}
			require.Nil(t, rating.Validate())
		}
	})

	t.Run(`value out of range`, func(t *testing.T) {
		for _, value := range []float64{0, 0.99, 5.01, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
			rating := RatingData{Category: "GRE", Value: value}
			require.NotNil(t, rating.Validate())
		}
	})

	t.Run(`category bounds`, func(t *testing.T) {
		rating := RatingData{Category: "", Value: 3}
		require.NotNil(t, rating.Validate())

		rating = RatingData{Category: strings.Repeat("a", models.ReviewCategoryMaxLength), Value: 3}
		require.Nil(t, rating.Validate())

		rating = RatingData{Category: strings.Repeat("a", models.ReviewCategoryMaxLength+1), Value: 3}
		require.NotNil(t, rating.Validate())
	})
}

func TestRouteValidateDataValidate(t *testing.T) {
	t.Run(`required fields`, func(t *testing.T) {
		data := RouteValidateData{Transition: "approved"}
		require.NotNil(t, data.Validate())

		data = RouteValidateData{DocumentID: "doc-1"}
		require.NotNil(t, data.Validate())

		data = RouteValidateData{DocumentID: "doc-1", Transition: "approved"}
		require.Nil(t, data.Validate())
	})

	t.Run(`invalid rating rejects request`, func(t *testing.T) {
		ratings := []RatingData{
			{Category: "GRE", Value: 4},
			{Category: "GPA", Value: 6},
		}
		data := RouteValidateData{DocumentID: "doc-1", Transition: "reviewed", Ratings: &ratings}
		require.NotNil(t, data.Validate())
	})
}

func TestRouteModelDataValidate(t *testing.T) {
	valid := func() RouteModelData {
		return RouteModelData{
			Name: "Согласование",
			Steps: []RouteStepTemplateData{
				{
					Type:   models.RouteStepTypeApprove,
					Name:   "Шаг 1",
					Target: RouteTargetData{Name: "petrov", Type: models.RouteTargetUser},
					Transitions: []RouteTransitionData{
						{Name: "approved"},
					},
				},
			},
		}
	}

	t.Run(`valid model`, func(t *testing.T) {
		require.Nil(t, valid().Validate())
	})

	t.Run(`steps required`, func(t *testing.T) {
		data := valid()
		data.Steps = nil
		require.NotNil(t, data.Validate())
	})

	t.Run(`unknown step type`, func(t *testing.T) {
		data := valid()
		data.Steps[0].Type = "UNKNOWN"
		require.NotNil(t, data.Validate())
	})

	t.Run(`transition required`, func(t *testing.T) {
		data := valid()
		data.Steps[0].Transitions = nil
		require.NotNil(t, data.Validate())
	})

	t.Run(`action without tag`, func(t *testing.T) {
		data := valid()
		data.Steps[0].Transitions[0].Actions = []RouteActionData{{Type: models.RouteActionAddTag}}
		require.NotNil(t, data.Validate())
	})
}
