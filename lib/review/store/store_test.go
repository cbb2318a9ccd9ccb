package reviewstore

import (
	"fmt"
	"testing"
	"time"

	"doc-flow-backend/db"
	routestepstore "doc-flow-backend/lib/route/step-store"
	routestore "doc-flow-backend/lib/route/store"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/models"
	dbmodels "doc-flow-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type storeTestEnv struct {
	store     Provider
	ivanov    dbmodels.User
	petrov    dbmodels.User
	oldRoute  dbmodels.Route
	newRoute  dbmodels.Route
	firstStep dbmodels.RouteStep
	lastStep  dbmodels.RouteStep
}

func setupStoreTest(t *testing.T) *storeTestEnv {
	dbConn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.Nil(t, err)
	db.DB = dbConn
	require.Nil(t, db.AutoMigrateDB())

	env := storeTestEnv{
		store: NewInstance(db.DB),
	}
	userStore := usersstore.NewInstance(db.DB)
	env.ivanov = dbmodels.User{Login: "ivanov", Role: models.UserRoleUser}
	env.ivanov.ID, err = userStore.Create(env.ivanov)
	require.Nil(t, err)
	env.petrov = dbmodels.User{Login: "petrov", Role: models.UserRoleUser}
	env.petrov.ID, err = userStore.Create(env.petrov)
	require.Nil(t, err)

	routeStore := routestore.NewInstance(db.DB)
	stepStore := routestepstore.NewInstance(db.DB)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// старый маршрут с двумя завершёнными шагами оценки
	env.oldRoute = dbmodels.Route{DocumentID: "doc-1", Name: "Первичная оценка"}
	env.oldRoute.CreatedAt = base
	env.oldRoute.ID, err = routeStore.Create(env.oldRoute)
	require.Nil(t, err)

	firstEnd := base.Add(time.Hour)
	secondEnd := base.Add(2 * time.Hour)
	firstComment := "Сильный кандидат"
	env.firstStep = dbmodels.RouteStep{
		RouteID:     env.oldRoute.ID,
		Type:        models.RouteStepTypeResumeReview,
		Name:        "Оценка 1",
		TargetName:  "ivanov",
		TargetType:  models.RouteTargetUser,
		Ordinal:     0,
		EndDate:     &firstEnd,
		ValidatorID: &env.ivanov.ID,
		Comment:     &firstComment,
	}
	env.firstStep.ID, err = stepStore.Create(env.firstStep)
	require.Nil(t, err)
	secondComment := "Нужна проверка опыта"
	env.lastStep = dbmodels.RouteStep{
		RouteID:     env.oldRoute.ID,
		Type:        models.RouteStepTypeResumeReview,
		Name:        "Оценка 2",
		TargetName:  "petrov",
		TargetType:  models.RouteTargetUser,
		Ordinal:     1,
		EndDate:     &secondEnd,
		ValidatorID: &env.petrov.ID,
		Comment:     &secondComment,
	}
	env.lastStep.ID, err = stepStore.Create(env.lastStep)
	require.Nil(t, err)

	// новый маршрут без завершённых шагов
	env.newRoute = dbmodels.Route{DocumentID: "doc-1", Name: "Повторная оценка"}
	env.newRoute.CreatedAt = base.Add(24 * time.Hour)
	env.newRoute.ID, err = routeStore.Create(env.newRoute)
	require.Nil(t, err)
	pending := dbmodels.RouteStep{
		RouteID:    env.newRoute.ID,
		Type:       models.RouteStepTypeResumeReview,
		Name:       "Оценка",
		TargetName: "ivanov",
		TargetType: models.RouteTargetUser,
		Ordinal:    0,
	}
	_, err = stepStore.Create(pending)
	require.Nil(t, err)

	for k, category := range []string{"GRE", "GPA"} {
		_, err = env.store.Create(dbmodels.Review{
			RouteStepID: env.firstStep.ID,
			Category:    category,
			Value:       4,
			Ordinal:     k,
		})
		require.Nil(t, err)
	}
	_, err = env.store.Create(dbmodels.Review{
		RouteStepID: env.lastStep.ID,
		Category:    "Skills",
		Value:       5,
		Ordinal:     0,
	})
	require.Nil(t, err)
	return &env
}

func TestReviewStore(t *testing.T) {
	t.Run(`routes ordered newest first, reviews by step completion`, func(t *testing.T) {
		env := setupStoreTest(t)
		list, err := env.store.FindByDocument("doc-1")
		require.Nil(t, err)
		require.Equal(t, 2, len(list))
		require.Equal(t, "Повторная оценка", list[0].Route.Name)
		require.Equal(t, 0, len(list[0].Reviews))
		require.Equal(t, "Первичная оценка", list[1].Route.Name)
		require.Equal(t, 3, len(list[1].Reviews))
		require.Equal(t, "GRE", list[1].Reviews[0].Category)
		require.Equal(t, "GPA", list[1].Reviews[1].Category)
		require.Equal(t, "Skills", list[1].Reviews[2].Category)
	})

	t.Run(`comments paired with validator login`, func(t *testing.T) {
		env := setupStoreTest(t)
		comments, err := env.store.GetComments(env.oldRoute.ID)
		require.Nil(t, err)
		require.Equal(t, 2, len(comments))
		require.Equal(t, "ivanov", comments[0].Author)
		require.Equal(t, "Сильный кандидат", comments[0].Contents)
		require.Equal(t, "petrov", comments[1].Author)
		require.Equal(t, "Нужна проверка опыта", comments[1].Contents)
	})

	t.Run(`count by route`, func(t *testing.T) {
		env := setupStoreTest(t)
		count, err := env.store.CountByRoute(env.oldRoute.ID)
		require.Nil(t, err)
		require.Equal(t, int64(3), count)
		count, err = env.store.CountByRoute(env.newRoute.ID)
		require.Nil(t, err)
		require.Equal(t, int64(0), count)
	})

	t.Run(`unknown document returns empty list`, func(t *testing.T) {
		env := setupStoreTest(t)
		list, err := env.store.FindByDocument("missing")
		require.Nil(t, err)
		require.Equal(t, 0, len(list))
	})
}
