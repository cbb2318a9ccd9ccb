package reviewshandler

import (
	"fmt"
	"testing"

	"doc-flow-backend/db"
	documentstore "doc-flow-backend/lib/document/store"
	routehandler "doc-flow-backend/lib/route"
	routemodelstore "doc-flow-backend/lib/route-model/store"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/models"
	routeapimodels "doc-flow-backend/models/api/route"
	dbmodels "doc-flow-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type reviewsTestEnv struct {
	admin    dbmodels.User
	outsider dbmodels.User
	doc      dbmodels.Document
	model    dbmodels.RouteModel
}

func setupReviewsTest(t *testing.T) *reviewsTestEnv {
	dbConn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.Nil(t, err)
	db.DB = dbConn
	require.Nil(t, db.AutoMigrateDB())

	routehandler.NewHandler()
	NewHandler()

	env := reviewsTestEnv{}
	userStore := usersstore.NewInstance(db.DB)
	env.admin = dbmodels.User{Login: "admin", Role: models.UserRoleAdmin}
	env.admin.ID, err = userStore.Create(env.admin)
	require.Nil(t, err)
	env.outsider = dbmodels.User{Login: "sidorov", Role: models.UserRoleUser}
	env.outsider.ID, err = userStore.Create(env.outsider)
	require.Nil(t, err)

	docStore := documentstore.NewInstance(db.DB)
	env.doc = dbmodels.Document{Title: "Резюме кандидата", Description: "Кандидат на позицию инженера", CreatorID: env.admin.ID}
	env.doc.ID, err = docStore.Create(env.doc)
	require.Nil(t, err)

	modelStore := routemodelstore.NewInstance(db.DB)
	env.model = dbmodels.RouteModel{
		Name: "Оценка резюме",
		Steps: dbmodels.RouteStepTemplates{
			{
				Type:   models.RouteStepTypeResumeReview,
				Name:   "Оценка",
				Target: dbmodels.RouteTarget{Name: "admin", Type: models.RouteTargetUser},
				Transitions: []dbmodels.RouteTransition{
					{Name: "reviewed"},
				},
			},
		},
	}
	env.model.ID, err = modelStore.Create(env.model)
	require.Nil(t, err)
	return &env
}

func TestReviewsAggregation(t *testing.T) {
	t.Run(`single review step scenario`, func(t *testing.T) {
		env := setupReviewsTest(t)
		_, hMsg, err := routehandler.Instance.Start(env.admin.ID, models.UserRoleAdmin, routeapimodels.RouteStartData{
			DocumentID:   env.doc.ID,
			RouteModelID: env.model.ID,
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)

		ratings := []routeapimodels.RatingData{
			{Category: "GRE", Value: 4},
			{Category: "GPA", Value: 3.5},
			{Category: "Skills", Value: 5},
			{Category: "Experience", Value: 4.5},
			{Category: "Extracurriculars", Value: 4},
		}
		result, hMsg, err := routehandler.Instance.Validate(env.admin.ID, models.UserRoleAdmin, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "reviewed",
			Ratings:    &ratings,
			Comment:    "Looks good.",
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.Nil(t, result.RouteStep)

		view, err := Instance.Get(env.doc.ID, env.admin.ID, models.UserRoleAdmin)
		require.Nil(t, err)
		require.Equal(t, env.doc.ID, view.ID)
		require.Equal(t, "Резюме кандидата", view.Title)
		require.Equal(t, 1, len(view.Workflows))

		workflow := view.Workflows[0]
		require.Equal(t, "Оценка резюме", workflow.Name)
		require.Equal(t, 5, workflow.NumRatings)
		require.Equal(t, 5, len(workflow.Ratings))
		// порядок подачи оценок сохраняется
		expected := []string{"GRE", "GPA", "Skills", "Experience", "Extracurriculars"}
		for k, rating := range workflow.Ratings {
			require.Equal(t, expected[k], rating.Category)
		}
		require.Equal(t, 4.0, workflow.Ratings[0].Value)
		require.Equal(t, 3.5, workflow.Ratings[1].Value)
		require.Equal(t, 5.0, workflow.Ratings[2].Value)
		require.Equal(t, 4.5, workflow.Ratings[3].Value)
		require.Equal(t, 4.0, workflow.Ratings[4].Value)

		require.Equal(t, 1, len(workflow.Comments))
		require.Equal(t, "admin", workflow.Comments[0].Author)
		require.Equal(t, "Looks good.", workflow.Comments[0].Contents)
	})

	t.Run(`ratings required on review step`, func(t *testing.T) {
		env := setupReviewsTest(t)
		_, _, err := routehandler.Instance.Start(env.admin.ID, models.UserRoleAdmin, routeapimodels.RouteStartData{
			DocumentID:   env.doc.ID,
			RouteModelID: env.model.ID,
		})
		require.Nil(t, err)
		_, hMsg, err := routehandler.Instance.Validate(env.admin.ID, models.UserRoleAdmin, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "reviewed",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)

		// отклонённый запрос не оставил следов
		view, err := Instance.Get(env.doc.ID, env.admin.ID, models.UserRoleAdmin)
		require.Nil(t, err)
		require.Equal(t, 1, len(view.Workflows))
		require.Equal(t, 0, view.Workflows[0].NumRatings)
	})

	t.Run(`document without review steps has no workflows`, func(t *testing.T) {
		env := setupReviewsTest(t)
		view, err := Instance.Get(env.doc.ID, env.admin.ID, models.UserRoleAdmin)
		require.Nil(t, err)
		require.Equal(t, 0, len(view.Workflows))
	})

	t.Run(`unreadable document returns not found`, func(t *testing.T) {
		env := setupReviewsTest(t)
		_, err := Instance.Get(env.doc.ID, env.outsider.ID, models.UserRoleUser)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		_, err = Instance.Get("missing", env.admin.ID, models.UserRoleAdmin)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
