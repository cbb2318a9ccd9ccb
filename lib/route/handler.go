package routehandler

import (
	"time"

	"doc-flow-backend/db"
	documentstore "doc-flow-backend/lib/document/store"
	groupstore "doc-flow-backend/lib/group/store"
	notificationhandler "doc-flow-backend/lib/notification"
	reviewstore "doc-flow-backend/lib/review/store"
	routemodelstore "doc-flow-backend/lib/route-model/store"
	routestepstore "doc-flow-backend/lib/route/step-store"
	routestore "doc-flow-backend/lib/route/store"
	tagstore "doc-flow-backend/lib/tag/store"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/models"
	routeapimodels "doc-flow-backend/models/api/route"
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Start запускает маршрут по документу из модели.
	Start(userID string, role models.UserRole, data routeapimodels.RouteStartData) (view *routeapimodels.RouteView, hMsg string, err error)
	// Validate обрабатывает текущий шаг активного маршрута документа.
	Validate(userID string, role models.UserRole, data routeapimodels.RouteValidateData) (result *routeapimodels.RouteValidateResult, hMsg string, err error)
	// Cancel отменяет активный маршрут документа.
	Cancel(documentID, userID string, role models.UserRole) error
	ListByDocument(documentID, userID string, role models.UserRole) ([]routeapimodels.RouteView, error)
	// GetReadable возвращает документ, если он существует и виден
	// пользователю, иначе nil. Отсутствие и отсутствие доступа на
	// чтение снаружи неразличимы.
	GetReadable(documentID, userID string, role models.UserRole) (*dbmodels.Document, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		documentStore:   documentstore.NewInstance(db.DB),
		routeModelStore: routemodelstore.NewInstance(db.DB),
		routeStore:      routestore.NewInstance(db.DB),
		stepStore:       routestepstore.NewInstance(db.DB),
		reviewStore:     reviewstore.NewInstance(db.DB),
		tagStore:        tagstore.NewInstance(db.DB),
		usersStore:      usersstore.NewInstance(db.DB),
		groupStore:      groupstore.NewInstance(db.DB),
	}
}

type impl struct {
	documentStore   documentstore.Provider
	routeModelStore routemodelstore.Provider
	routeStore      routestore.Provider
	stepStore       routestepstore.Provider
	reviewStore     reviewstore.Provider
	tagStore        tagstore.Provider
	usersStore      usersstore.Provider
	groupStore      groupstore.Provider
}

func (i impl) getLogger(documentID, userID string) *log.Entry {
	logger := log.
		WithField("document_id", documentID).
		WithField("user_id", userID)
	return logger
}

func (i impl) Start(userID string, role models.UserRole, data routeapimodels.RouteStartData) (*routeapimodels.RouteView, string, error) {
	logger := i.getLogger(data.DocumentID, userID).
		WithField("route_model_id", data.RouteModelID)
	doc, err := i.GetReadable(data.DocumentID, userID, role)
	if err != nil {
		return nil, "", err
	}
	if doc == nil {
		return nil, "", apperrors.ErrNotFound
	}
	if doc.RouteActive {
		return nil, "", apperrors.ErrConflict
	}
	model, err := i.routeModelStore.GetByID(data.RouteModelID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения модели маршрута")
	}
	if model == nil {
		return nil, "Модель маршрута не найдена", nil
	}
	if len(model.Steps) == 0 {
		return nil, "В модели маршрута нет шагов", nil
	}

	route := dbmodels.Route{
		DocumentID: doc.ID,
		Name:       model.Name,
	}
	steps := []dbmodels.RouteStep{}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		routeStore := routestore.NewInstance(tx)
		stepStore := routestepstore.NewInstance(tx)
		documentStore := documentstore.NewInstance(tx)
		routeID, err := routeStore.Create(route)
		if err != nil {
			return errors.Wrap(err, "ошибка создания маршрута")
		}
		route.ID = routeID
		for ordinal, tpl := range model.Steps {
			step := dbmodels.RouteStep{
				RouteID:     routeID,
				Type:        tpl.Type,
				Name:        tpl.Name,
				TargetName:  tpl.Target.Name,
				TargetType:  tpl.Target.Type,
				Ordinal:     ordinal,
				Transitions: tpl.Transitions,
			}
			stepID, err := stepStore.Create(step)
			if err != nil {
				return errors.Wrap(err, "ошибка создания шага маршрута")
			}
			step.ID = stepID
			steps = append(steps, step)
		}
		err = documentStore.SetRouteActive(doc.ID, true)
		if err != nil {
			return errors.Wrap(err, "ошибка установки признака активного маршрута")
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	logger.WithField("route_id", route.ID).Info("маршрут запущен")

	if notificationhandler.Instance != nil {
		notificationhandler.Instance.StepReady(doc.Title, steps[0])
	}
	view := routeapimodels.RouteConvert(route, steps)
	return &view, "", nil
}

func (i impl) Validate(userID string, role models.UserRole, data routeapimodels.RouteValidateData) (*routeapimodels.RouteValidateResult, string, error) {
	logger := i.getLogger(data.DocumentID, userID).
		WithField("transition", data.Transition)
	doc, err := i.GetReadable(data.DocumentID, userID, role)
	if err != nil {
		return nil, "", err
	}
	if doc == nil || !doc.RouteActive {
		return nil, "", apperrors.ErrNotFound
	}
	route, err := i.routeStore.GetLatestByDocument(doc.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения маршрута")
	}
	if route == nil {
		return nil, "", apperrors.ErrNotFound
	}
	step, err := i.stepStore.GetCurrent(route.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения текущего шага")
	}
	if step == nil {
		return nil, "", apperrors.ErrNotFound
	}
	isTarget, err := i.isStepTarget(*step, userID, role)
	if err != nil {
		return nil, "", err
	}
	if !isTarget {
		return nil, "", apperrors.ErrForbidden
	}
	transition := step.FindTransition(data.Transition)
	if transition == nil {
		return nil, "Переход не объявлен на текущем шаге", nil
	}
	ratings := []routeapimodels.RatingData{}
	if data.Ratings != nil {
		ratings = *data.Ratings
	}
	if step.Type.RequiresRatings() && len(ratings) == 0 {
		return nil, "На шаге оценки резюме требуется список оценок", nil
	}
	if !step.Type.RequiresRatings() && len(ratings) > 0 {
		return nil, "Шаг данного типа не принимает оценки", nil
	}

	var comment *string
	if data.Comment != "" {
		comment = &data.Comment
	}
	var nextStep *dbmodels.RouteStep
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		stepStore := routestepstore.NewInstance(tx)
		reviewStore := reviewstore.NewInstance(tx)
		documentStore := documentstore.NewInstance(tx)

		done, err := stepStore.Complete(step.ID, userID, data.Transition, comment, time.Now())
		if err != nil {
			return errors.Wrap(err, "ошибка завершения шага")
		}
		if !done {
			return apperrors.ErrConflict
		}
		for ordinal, rating := range ratings {
			_, err = reviewStore.Create(dbmodels.Review{
				RouteStepID: step.ID,
				Category:    rating.Category,
				Value:       rating.Value,
				Ordinal:     ordinal,
			})
			if err != nil {
				return errors.Wrap(err, "ошибка сохранения оценки")
			}
		}
		err = i.runActions(tx, doc.ID, transition.Actions, logger)
		if err != nil {
			return err
		}
		nextStep, err = stepStore.GetCurrent(route.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения следующего шага")
		}
		if nextStep == nil {
			err = documentStore.SetRouteActive(doc.ID, false)
			if err != nil {
				return errors.Wrap(err, "ошибка снятия признака активного маршрута")
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	logger.WithField("route_step_id", step.ID).Info("шаг маршрута обработан")

	result := routeapimodels.RouteValidateResult{}
	if nextStep != nil {
		// уведомление о завершающем маршрут переходе не отправляется
		if notificationhandler.Instance != nil {
			notificationhandler.Instance.StepReady(doc.Title, *nextStep)
		}
		view := routeapimodels.RouteStepConvert(*nextStep)
		result.RouteStep = &view
	}
	result.Readable, err = i.isReadable(*doc, nextStep, userID, role)
	if err != nil {
		return nil, "", err
	}
	return &result, "", nil
}

func (i impl) Cancel(documentID, userID string, role models.UserRole) error {
	logger := i.getLogger(documentID, userID)
	doc, err := i.documentStore.GetByID(documentID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения документа")
	}
	if doc == nil {
		return apperrors.ErrNotFound
	}
	if !i.canEdit(*doc, userID, role) {
		readable, err := i.GetReadable(documentID, userID, role)
		if err != nil {
			return err
		}
		if readable == nil {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrForbidden
	}
	if !doc.RouteActive {
		return apperrors.ErrNotFound
	}
	route, err := i.routeStore.GetLatestByDocument(doc.ID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения маршрута")
	}
	if route == nil {
		return apperrors.ErrNotFound
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		routeStore := routestore.NewInstance(tx)
		stepStore := routestepstore.NewInstance(tx)
		documentStore := documentstore.NewInstance(tx)
		err := stepStore.DeleteByRoute(route.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления шагов маршрута")
		}
		err = routeStore.Delete(route.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления маршрута")
		}
		err = documentStore.SetRouteActive(doc.ID, false)
		if err != nil {
			return errors.Wrap(err, "ошибка снятия признака активного маршрута")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.WithField("route_id", route.ID).Info("маршрут отменён")
	return nil
}

func (i impl) ListByDocument(documentID, userID string, role models.UserRole) ([]routeapimodels.RouteView, error) {
	doc, err := i.GetReadable(documentID, userID, role)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.ErrNotFound
	}
	routes, err := i.routeStore.ListByDocument(doc.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка маршрутов")
	}
	result := make([]routeapimodels.RouteView, 0, len(routes))
	for _, route := range routes {
		steps, err := i.stepStore.ListByRoute(route.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения шагов маршрута")
		}
		result = append(result, routeapimodels.RouteConvert(route, steps))
	}
	return result, nil
}

func (i impl) GetReadable(documentID, userID string, role models.UserRole) (*dbmodels.Document, error) {
	doc, err := i.documentStore.GetByID(documentID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения документа")
	}
	if doc == nil {
		return nil, nil
	}
	if i.canEdit(*doc, userID, role) {
		return doc, nil
	}
	// адресат текущего шага активного маршрута читает документ,
	// пока шаг не завершён
	if !doc.RouteActive {
		return nil, nil
	}
	route, err := i.routeStore.GetLatestByDocument(doc.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения маршрута")
	}
	if route == nil {
		return nil, nil
	}
	step, err := i.stepStore.GetCurrent(route.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения текущего шага")
	}
	if step == nil {
		return nil, nil
	}
	isTarget, err := i.isStepTarget(*step, userID, role)
	if err != nil {
		return nil, err
	}
	if !isTarget {
		return nil, nil
	}
	return doc, nil
}

func (i impl) canEdit(doc dbmodels.Document, userID string, role models.UserRole) bool {
	return role.IsAdmin() || doc.CreatorID == userID
}

func (i impl) isReadable(doc dbmodels.Document, currentStep *dbmodels.RouteStep, userID string, role models.UserRole) (bool, error) {
	if i.canEdit(doc, userID, role) {
		return true, nil
	}
	if currentStep == nil {
		return false, nil
	}
	return i.isStepTarget(*currentStep, userID, role)
}

func (i impl) isStepTarget(step dbmodels.RouteStep, userID string, role models.UserRole) (bool, error) {
	if role.IsAdmin() {
		return true, nil
	}
	if step.TargetType == models.RouteTargetGroup {
		isMember, err := i.groupStore.IsMember(step.TargetName, userID)
		if err != nil {
			return false, errors.Wrap(err, "ошибка проверки участия в группе")
		}
		return isMember, nil
	}
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return false, errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil {
		return false, nil
	}
	return user.Login == step.TargetName, nil
}

// runActions выполняет действия перехода в объявленном порядке.
// Действие с удалённой меткой пропускается.
func (i impl) runActions(tx *gorm.DB, documentID string, actions []dbmodels.RouteAction, logger *log.Entry) error {
	if len(actions) == 0 {
		return nil
	}
	tagStore := tagstore.NewInstance(tx)
	for _, action := range actions {
		tag, err := tagStore.GetByID(action.TagID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения метки")
		}
		if tag == nil {
			logger.WithField("tag_id", action.TagID).Warn("метка действия перехода не найдена")
			continue
		}
		switch action.Type {
		case models.RouteActionAddTag:
			err = tagStore.AddToDocument(documentID, tag.ID)
		case models.RouteActionRemoveTag:
			err = tagStore.RemoveFromDocument(documentID, tag.ID)
		default:
			logger.WithField("action_type", string(action.Type)).Warn("неизвестный тип действия перехода")
			continue
		}
		if err != nil {
			return errors.Wrap(err, "ошибка выполнения действия перехода")
		}
	}
	return nil
}
