package documenthandler

import (
	"fmt"
	"testing"

	"doc-flow-backend/db"
	notificationhandler "doc-flow-backend/lib/notification"
	notificationdatastore "doc-flow-backend/lib/notification/data-store"
	routehandler "doc-flow-backend/lib/route"
	routemodelstore "doc-flow-backend/lib/route-model/store"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/models"
	docapimodels "doc-flow-backend/models/api/doc"
	routeapimodels "doc-flow-backend/models/api/route"
	dbmodels "doc-flow-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type docTestEnv struct {
	admin  dbmodels.User
	petrov dbmodels.User
	model  dbmodels.RouteModel
	docID  string
}

func setupDocTest(t *testing.T) *docTestEnv {
	dbConn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.Nil(t, err)
	db.DB = dbConn
	require.Nil(t, db.AutoMigrateDB())

	routehandler.NewHandler()
	notificationhandler.NewHandler()
	NewHandler()

	env := docTestEnv{}
	userStore := usersstore.NewInstance(db.DB)
	env.admin = dbmodels.User{Login: "admin", Role: models.UserRoleAdmin}
	env.admin.ID, err = userStore.Create(env.admin)
	require.Nil(t, err)
	env.petrov = dbmodels.User{Login: "petrov", Role: models.UserRoleUser}
	env.petrov.ID, err = userStore.Create(env.petrov)
	require.Nil(t, err)

	env.docID, err = Instance.Create(env.admin.ID, docapimodels.DocumentData{
		Title:       "Резюме кандидата",
		Description: "Кандидат на позицию инженера",
	})
	require.Nil(t, err)

	modelStore := routemodelstore.NewInstance(db.DB)
	env.model = dbmodels.RouteModel{
		Name: "Согласование",
		Steps: dbmodels.RouteStepTemplates{
			{
				Type:   models.RouteStepTypeValidate,
				Name:   "Проверка",
				Target: dbmodels.RouteTarget{Name: "petrov", Type: models.RouteTargetUser},
				Transitions: []dbmodels.RouteTransition{
					{Name: "validated"},
				},
			},
		},
	}
	env.model.ID, err = modelStore.Create(env.model)
	require.Nil(t, err)
	return &env
}

func TestDocumentAccess(t *testing.T) {
	t.Run(`step target reads document while step is pending`, func(t *testing.T) {
		env := setupDocTest(t)
		// до запуска маршрута документ не виден
		_, err := Instance.Get(env.docID, env.petrov.ID, models.UserRoleUser)
		require.ErrorIs(t, err, apperrors.ErrNotFound)

		_, hMsg, err := routehandler.Instance.Start(env.admin.ID, models.UserRoleAdmin, routeapimodels.RouteStartData{
			DocumentID:   env.docID,
			RouteModelID: env.model.ID,
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)

		view, err := Instance.Get(env.docID, env.petrov.ID, models.UserRoleUser)
		require.Nil(t, err)
		require.Equal(t, "Резюме кандидата", view.Title)

		// после завершения шага доступ пропадает
		_, _, err = routehandler.Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.docID,
			Transition: "validated",
		})
		require.Nil(t, err)
		_, err = Instance.Get(env.docID, env.petrov.ID, models.UserRoleUser)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run(`list scoped to creator for regular users`, func(t *testing.T) {
		env := setupDocTest(t)
		_, err := Instance.Create(env.petrov.ID, docapimodels.DocumentData{Title: "Черновик"})
		require.Nil(t, err)

		list, err := Instance.List(env.petrov.ID, models.UserRoleUser)
		require.Nil(t, err)
		require.Equal(t, 1, len(list))
		require.Equal(t, "Черновик", list[0].Title)

		list, err = Instance.List(env.admin.ID, models.UserRoleAdmin)
		require.Nil(t, err)
		require.Equal(t, 2, len(list))
	})
}

func TestDocumentDelete(t *testing.T) {
	t.Run(`delete cancels active route and notifies target`, func(t *testing.T) {
		env := setupDocTest(t)
		_, _, err := routehandler.Instance.Start(env.admin.ID, models.UserRoleAdmin, routeapimodels.RouteStartData{
			DocumentID:   env.docID,
			RouteModelID: env.model.ID,
		})
		require.Nil(t, err)

		require.Nil(t, Instance.Delete(env.docID, env.admin.ID, models.UserRoleAdmin))
		_, err = Instance.Get(env.docID, env.admin.ID, models.UserRoleAdmin)
		require.ErrorIs(t, err, apperrors.ErrNotFound)

		list, err := notificationdatastore.NewInstance(db.DB).List(env.petrov.ID)
		require.Nil(t, err)
		var codes []models.PushCode
		for _, item := range list {
			codes = append(codes, item.Code)
		}
		require.Contains(t, codes, models.PushRouteCanceled)
	})

	t.Run(`delete by non creator`, func(t *testing.T) {
		env := setupDocTest(t)
		err := Instance.Delete(env.docID, env.petrov.ID, models.UserRoleUser)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
