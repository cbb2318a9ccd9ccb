package routemodelhandler

import (
	"doc-flow-backend/db"
	groupstore "doc-flow-backend/lib/group/store"
	routemodelstore "doc-flow-backend/lib/route-model/store"
	tagstore "doc-flow-backend/lib/tag/store"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/models"
	routeapimodels "doc-flow-backend/models/api/route"
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Create(data routeapimodels.RouteModelData) (id string, hMsg string, err error)
	Get(id string) (view *routeapimodels.RouteModelView, err error)
	// Update заменяет название и шаблоны шагов модели. На уже
	// запущенные маршруты изменение не влияет, их шаги скопированы.
	Update(id string, data routeapimodels.RouteModelData) (hMsg string, err error)
	Delete(id string) error
	List() (list []routeapimodels.RouteModelView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      routemodelstore.NewInstance(db.DB),
		usersStore: usersstore.NewInstance(db.DB),
		groupStore: groupstore.NewInstance(db.DB),
		tagStore:   tagstore.NewInstance(db.DB),
	}
}

type impl struct {
	store      routemodelstore.Provider
	usersStore usersstore.Provider
	groupStore groupstore.Provider
	tagStore   tagstore.Provider
}

func (i impl) Create(data routeapimodels.RouteModelData) (string, string, error) {
	hMsg, err := i.checkDependency(data)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	rec := dbmodels.RouteModel{
		Name:  data.Name,
		Steps: data.ToSteps(),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка создания модели маршрута")
	}
	return id, "", nil
}

func (i impl) Get(id string) (*routeapimodels.RouteModelView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения модели маршрута")
	}
	if rec == nil {
		return nil, apperrors.ErrNotFound
	}
	view := routeapimodels.RouteModelConvert(*rec)
	return &view, nil
}

func (i impl) Update(id string, data routeapimodels.RouteModelData) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения модели маршрута")
	}
	if rec == nil {
		return "", apperrors.ErrNotFound
	}
	hMsg, err := i.checkDependency(data)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	updMap := map[string]interface{}{
		"name":  data.Name,
		"steps": data.ToSteps(),
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return "", errors.Wrap(err, "ошибка обновления модели маршрута")
	}
	return "", nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения модели маршрута")
	}
	if rec == nil {
		return apperrors.ErrNotFound
	}
	return i.store.Delete(id)
}

func (i impl) List() ([]routeapimodels.RouteModelView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка моделей маршрута")
	}
	result := make([]routeapimodels.RouteModelView, 0, len(list))
	for _, rec := range list {
		result = append(result, routeapimodels.RouteModelConvert(rec))
	}
	return result, nil
}

// checkDependency проверяет, что исполнители шагов и метки действий
// существуют на момент сохранения модели.
func (i impl) checkDependency(data routeapimodels.RouteModelData) (hMsg string, err error) {
	for _, step := range data.Steps {
		if step.Target.Type == models.RouteTargetGroup {
			group, err := i.groupStore.GetByName(step.Target.Name)
			if err != nil {
				return "", errors.Wrap(err, "ошибка получения группы")
			}
			if group == nil {
				return errors.Errorf("группа %v не найдена", step.Target.Name).Error(), nil
			}
		} else {
			user, err := i.usersStore.GetByLogin(step.Target.Name)
			if err != nil {
				return "", errors.Wrap(err, "ошибка получения пользователя")
			}
			if user == nil {
				return errors.Errorf("пользователь %v не найден", step.Target.Name).Error(), nil
			}
		}
		for _, transition := range step.Transitions {
			for _, action := range transition.Actions {
				tag, err := i.tagStore.GetByID(action.TagID)
				if err != nil {
					return "", errors.Wrap(err, "ошибка получения метки")
				}
				if tag == nil {
					return errors.Errorf("метка %v не найдена", action.TagID).Error(), nil
				}
			}
		}
	}
	return "", nil
}
