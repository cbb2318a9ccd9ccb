package routehandler

import (
	"fmt"
	"testing"
	"time"

	"doc-flow-backend/db"
	documentstore "doc-flow-backend/lib/document/store"
	groupstore "doc-flow-backend/lib/group/store"
	notificationdatastore "doc-flow-backend/lib/notification/data-store"
	notificationhandler "doc-flow-backend/lib/notification"
	routestepstore "doc-flow-backend/lib/route/step-store"
	routestore "doc-flow-backend/lib/route/store"
	routemodelstore "doc-flow-backend/lib/route-model/store"
	tagstore "doc-flow-backend/lib/tag/store"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/models"
	routeapimodels "doc-flow-backend/models/api/route"
	dbmodels "doc-flow-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type routeTestEnv struct {
	admin       dbmodels.User
	petrov      dbmodels.User
	sidorov     dbmodels.User
	doc         dbmodels.Document
	model       dbmodels.RouteModel
	tagApproved dbmodels.Tag
	tagRejected dbmodels.Tag
}

func setupRouteTest(t *testing.T) *routeTestEnv {
	dbConn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.Nil(t, err)
	db.DB = dbConn
	require.Nil(t, db.AutoMigrateDB())

	NewHandler()
	notificationhandler.NewHandler()

	env := routeTestEnv{}
	userStore := usersstore.NewInstance(db.DB)
	env.admin = dbmodels.User{Login: "admin", Role: models.UserRoleAdmin}
	env.admin.ID, err = userStore.Create(env.admin)
	require.Nil(t, err)
	env.petrov = dbmodels.User{Login: "petrov", Role: models.UserRoleUser}
	env.petrov.ID, err = userStore.Create(env.petrov)
	require.Nil(t, err)
	env.sidorov = dbmodels.User{Login: "sidorov", Role: models.UserRoleUser}
	env.sidorov.ID, err = userStore.Create(env.sidorov)
	require.Nil(t, err)

	grpStore := groupstore.NewInstance(db.DB)
	group := dbmodels.Group{Name: "reviewers"}
	group.ID, err = grpStore.Create(group)
	require.Nil(t, err)
	require.Nil(t, grpStore.AddMember(group.ID, env.petrov.ID))

	tgStore := tagstore.NewInstance(db.DB)
	env.tagApproved = dbmodels.Tag{Name: "approved", Color: "#00ff00"}
	env.tagApproved.ID, err = tgStore.Create(env.tagApproved)
	require.Nil(t, err)
	env.tagRejected = dbmodels.Tag{Name: "rejected", Color: "#ff0000"}
	env.tagRejected.ID, err = tgStore.Create(env.tagRejected)
	require.Nil(t, err)

	docStore := documentstore.NewInstance(db.DB)
	env.doc = dbmodels.Document{Title: "Резюме кандидата", CreatorID: env.admin.ID}
	env.doc.ID, err = docStore.Create(env.doc)
	require.Nil(t, err)

	modelStore := routemodelstore.NewInstance(db.DB)
	env.model = dbmodels.RouteModel{
		Name: "Согласование резюме",
		Steps: dbmodels.RouteStepTemplates{
			{
				Type:   models.RouteStepTypeApprove,
				Name:   "Согласование",
				Target: dbmodels.RouteTarget{Name: "petrov", Type: models.RouteTargetUser},
				Transitions: []dbmodels.RouteTransition{
					{Name: "approved", Actions: []dbmodels.RouteAction{{Type: models.RouteActionAddTag, TagID: env.tagApproved.ID}}},
					{Name: "rejected", Actions: []dbmodels.RouteAction{{Type: models.RouteActionAddTag, TagID: env.tagRejected.ID}}},
				},
			},
			{
				Type:   models.RouteStepTypeValidate,
				Name:   "Проверка",
				Target: dbmodels.RouteTarget{Name: "reviewers", Type: models.RouteTargetGroup},
				Transitions: []dbmodels.RouteTransition{
					{Name: "validated", Actions: []dbmodels.RouteAction{{Type: models.RouteActionRemoveTag, TagID: env.tagApproved.ID}}},
				},
			},
		},
	}
	env.model.ID, err = modelStore.Create(env.model)
	require.Nil(t, err)
	return &env
}

func (e *routeTestEnv) startData() routeapimodels.RouteStartData {
	return routeapimodels.RouteStartData{
		DocumentID:   e.doc.ID,
		RouteModelID: e.model.ID,
	}
}

func TestRouteStart(t *testing.T) {
	t.Run(`start check`, func(t *testing.T) {
		env := setupRouteTest(t)
		view, hMsg, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, env.startData())
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.Equal(t, "Согласование резюме", view.Name)
		require.Equal(t, 2, len(view.Steps))
		require.Equal(t, "Согласование", view.Steps[0].Name)
		require.Nil(t, view.Steps[0].EndDate)

		doc, err := documentstore.NewInstance(db.DB).GetByID(env.doc.ID)
		require.Nil(t, err)
		require.True(t, doc.RouteActive)

		// уведомление адресату первого шага поставлено в очередь
		list, err := notificationdatastore.NewInstance(db.DB).List(env.petrov.ID)
		require.Nil(t, err)
		require.Equal(t, 1, len(list))
		require.Equal(t, models.PushRouteStepReady, list[0].Code)
	})

	t.Run(`start on active route returns conflict`, func(t *testing.T) {
		env := setupRouteTest(t)
		_, _, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, env.startData())
		require.Nil(t, err)
		_, _, err = Instance.Start(env.admin.ID, models.UserRoleAdmin, env.startData())
		require.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run(`start on unknown document returns not found`, func(t *testing.T) {
		env := setupRouteTest(t)
		data := env.startData()
		data.DocumentID = "missing"
		_, _, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, data)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run(`start on unreadable document returns not found`, func(t *testing.T) {
		env := setupRouteTest(t)
		_, _, err := Instance.Start(env.sidorov.ID, models.UserRoleUser, env.startData())
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run(`start with unknown model returns validation message`, func(t *testing.T) {
		env := setupRouteTest(t)
		data := env.startData()
		data.RouteModelID = "missing"
		_, hMsg, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, data)
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})
}

func TestRouteValidate(t *testing.T) {
	start := func(t *testing.T, env *routeTestEnv) {
		_, hMsg, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, env.startData())
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
	}

	t.Run(`validate advances route and runs actions`, func(t *testing.T) {
		env := setupRouteTest(t)
		start(t, env)
		result, hMsg, err := Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "approved",
			Comment:    "Соответствует требованиям",
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.NotNil(t, result.RouteStep)
		require.Equal(t, "Проверка", result.RouteStep.Name)
		// petrov входит в группу reviewers следующего шага
		require.True(t, result.Readable)

		docTags, err := tagstore.NewInstance(db.DB).ListByDocument(env.doc.ID)
		require.Nil(t, err)
		require.Equal(t, 1, len(docTags))
		require.Equal(t, env.tagApproved.ID, docTags[0].TagID)

		route, err := routestore.NewInstance(db.DB).GetLatestByDocument(env.doc.ID)
		require.Nil(t, err)
		steps, err := routestepstore.NewInstance(db.DB).ListByRoute(route.ID)
		require.Nil(t, err)
		require.NotNil(t, steps[0].EndDate)
		require.Equal(t, env.petrov.ID, *steps[0].ValidatorID)
		require.Equal(t, "approved", *steps[0].Transition)
		require.Equal(t, "Соответствует требованиям", *steps[0].Comment)
		require.Nil(t, steps[1].EndDate)
	})

	t.Run(`final step clears active flag and removes tag`, func(t *testing.T) {
		env := setupRouteTest(t)
		start(t, env)
		_, _, err := Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "approved",
		})
		require.Nil(t, err)
		result, hMsg, err := Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "validated",
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.Nil(t, result.RouteStep)
		// обычный пользователь теряет доступ после завершения маршрута
		require.False(t, result.Readable)

		doc, err := documentstore.NewInstance(db.DB).GetByID(env.doc.ID)
		require.Nil(t, err)
		require.False(t, doc.RouteActive)

		docTags, err := tagstore.NewInstance(db.DB).ListByDocument(env.doc.ID)
		require.Nil(t, err)
		require.Equal(t, 0, len(docTags))
	})

	t.Run(`outsider cannot see document`, func(t *testing.T) {
		env := setupRouteTest(t)
		start(t, env)
		_, _, err := Instance.Validate(env.sidorov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "approved",
		})
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run(`creator outside step target returns forbidden`, func(t *testing.T) {
		env := setupRouteTest(t)
		doc := dbmodels.Document{Title: "Черновик", CreatorID: env.sidorov.ID}
		var err error
		doc.ID, err = documentstore.NewInstance(db.DB).Create(doc)
		require.Nil(t, err)
		_, hMsg, err := Instance.Start(env.sidorov.ID, models.UserRoleUser, routeapimodels.RouteStartData{
			DocumentID:   doc.ID,
			RouteModelID: env.model.ID,
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		_, _, err = Instance.Validate(env.sidorov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: doc.ID,
			Transition: "approved",
		})
		require.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run(`unknown transition returns validation message`, func(t *testing.T) {
		env := setupRouteTest(t)
		start(t, env)
		_, hMsg, err := Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "unknown",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})

	t.Run(`ratings on non review step rejected`, func(t *testing.T) {
		env := setupRouteTest(t)
		start(t, env)
		ratings := []routeapimodels.RatingData{{Category: "GRE", Value: 4}}
		_, hMsg, err := Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "approved",
			Ratings:    &ratings,
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
		// отклонённый запрос ничего не меняет
		step, err := routestepstoreCurrent(t, env)
		require.Nil(t, err)
		require.Equal(t, "Согласование", step.Name)
	})

	t.Run(`double validate returns conflict`, func(t *testing.T) {
		env := setupRouteTest(t)
		start(t, env)
		route, err := routestore.NewInstance(db.DB).GetLatestByDocument(env.doc.ID)
		require.Nil(t, err)
		step, err := routestepstore.NewInstance(db.DB).GetCurrent(route.ID)
		require.Nil(t, err)
		// параллельный запрос успел завершить шаг первым
		done, err := routestepstore.NewInstance(db.DB).Complete(step.ID, env.admin.ID, "approved", nil, time.Now())
		require.Nil(t, err)
		require.True(t, done)

		_, _, err = Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "approved",
		})
		require.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run(`completed step cannot be completed twice in store`, func(t *testing.T) {
		env := setupRouteTest(t)
		start(t, env)
		route, err := routestore.NewInstance(db.DB).GetLatestByDocument(env.doc.ID)
		require.Nil(t, err)
		step, err := routestepstore.NewInstance(db.DB).GetCurrent(route.ID)
		require.Nil(t, err)
		done, err := routestepstore.NewInstance(db.DB).Complete(step.ID, env.petrov.ID, "approved", nil, time.Now())
		require.Nil(t, err)
		require.True(t, done)
		done, err = routestepstore.NewInstance(db.DB).Complete(step.ID, env.sidorov.ID, "rejected", nil, time.Now())
		require.Nil(t, err)
		require.False(t, done)
	})
}

func routestepstoreCurrent(t *testing.T, env *routeTestEnv) (*dbmodels.RouteStep, error) {
	route, err := routestore.NewInstance(db.DB).GetLatestByDocument(env.doc.ID)
	require.Nil(t, err)
	return routestepstore.NewInstance(db.DB).GetCurrent(route.ID)
}

func TestRouteCancel(t *testing.T) {
	t.Run(`cancel check`, func(t *testing.T) {
		env := setupRouteTest(t)
		_, _, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, env.startData())
		require.Nil(t, err)
		require.Nil(t, Instance.Cancel(env.doc.ID, env.admin.ID, models.UserRoleAdmin))

		doc, err := documentstore.NewInstance(db.DB).GetByID(env.doc.ID)
		require.Nil(t, err)
		require.False(t, doc.RouteActive)
		route, err := routestore.NewInstance(db.DB).GetLatestByDocument(env.doc.ID)
		require.Nil(t, err)
		require.Nil(t, route)
	})

	t.Run(`cancel by wrong principal`, func(t *testing.T) {
		env := setupRouteTest(t)
		_, _, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, env.startData())
		require.Nil(t, err)
		// адресат шага видит документ, но не может отменить маршрут
		err = Instance.Cancel(env.doc.ID, env.petrov.ID, models.UserRoleUser)
		require.ErrorIs(t, err, apperrors.ErrForbidden)
		// посторонний не отличает отсутствие от запрета
		err = Instance.Cancel(env.doc.ID, env.sidorov.ID, models.UserRoleUser)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run(`cancel without active route`, func(t *testing.T) {
		env := setupRouteTest(t)
		err := Instance.Cancel(env.doc.ID, env.admin.ID, models.UserRoleAdmin)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRouteList(t *testing.T) {
	t.Run(`routes ordered newest first`, func(t *testing.T) {
		env := setupRouteTest(t)
		_, _, err := Instance.Start(env.admin.ID, models.UserRoleAdmin, env.startData())
		require.Nil(t, err)
		_, _, err = Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "approved",
		})
		require.Nil(t, err)
		_, _, err = Instance.Validate(env.petrov.ID, models.UserRoleUser, routeapimodels.RouteValidateData{
			DocumentID: env.doc.ID,
			Transition: "validated",
		})
		require.Nil(t, err)

		// второй маршрут по тому же документу
		routeStore := routestore.NewInstance(db.DB)
		second := dbmodels.Route{DocumentID: env.doc.ID, Name: "Повторное согласование"}
		second.CreatedAt = time.Now().Add(time.Minute)
		_, err = routeStore.Create(second)
		require.Nil(t, err)

		list, err := Instance.ListByDocument(env.doc.ID, env.admin.ID, models.UserRoleAdmin)
		require.Nil(t, err)
		require.Equal(t, 2, len(list))
		require.Equal(t, "Повторное согласование", list[0].Name)
		require.Equal(t, "Согласование резюме", list[1].Name)
	})
}
