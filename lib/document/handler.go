package documenthandler

import (
	"context"

	"doc-flow-backend/db"
	documentstore "doc-flow-backend/lib/document/store"
	filestorage "doc-flow-backend/lib/file-storage"
	groupstore "doc-flow-backend/lib/group/store"
	notificationhandler "doc-flow-backend/lib/notification"
	routehandler "doc-flow-backend/lib/route"
	routestepstore "doc-flow-backend/lib/route/step-store"
	routestore "doc-flow-backend/lib/route/store"
	tagstore "doc-flow-backend/lib/tag/store"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/models"
	docapimodels "doc-flow-backend/models/api/doc"
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(userID string, data docapimodels.DocumentData) (id string, err error)
	Get(id, userID string, role models.UserRole) (view *docapimodels.DocumentView, err error)
	List(userID string, role models.UserRole) (list []docapimodels.DocumentView, err error)
	// Delete удаляет документ вместе с активным маршрутом, если тот есть.
	Delete(id, userID string, role models.UserRole) error
	UploadFile(ctx context.Context, id, userID string, role models.UserRole, fileName, mimeType string, body []byte) (fileID string, err error)
	GetFile(ctx context.Context, id, fileID, userID string, role models.UserRole) (rec *dbmodels.DocumentFile, body []byte, err error)
	ListFiles(id, userID string, role models.UserRole) (list []dbmodels.DocumentFile, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      documentstore.NewInstance(db.DB),
		tagStore:   tagstore.NewInstance(db.DB),
		routeStore: routestore.NewInstance(db.DB),
		stepStore:  routestepstore.NewInstance(db.DB),
		usersStore: usersstore.NewInstance(db.DB),
		groupStore: groupstore.NewInstance(db.DB),
	}
}

type impl struct {
	store      documentstore.Provider
	tagStore   tagstore.Provider
	routeStore routestore.Provider
	stepStore  routestepstore.Provider
	usersStore usersstore.Provider
	groupStore groupstore.Provider
}

func (i impl) getLogger(documentID, userID string) *log.Entry {
	logger := log.
		WithField("document_id", documentID).
		WithField("user_id", userID)
	return logger
}

func (i impl) Create(userID string, data docapimodels.DocumentData) (string, error) {
	rec := dbmodels.Document{
		Title:       data.Title,
		Description: data.Description,
		CreatorID:   userID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания документа")
	}
	i.getLogger(id, userID).Info("документ создан")
	return id, nil
}

func (i impl) Get(id, userID string, role models.UserRole) (*docapimodels.DocumentView, error) {
	doc, err := routehandler.Instance.GetReadable(id, userID, role)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.ErrNotFound
	}
	tags, err := i.tagStore.ListByDocument(doc.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения меток документа")
	}
	view := docapimodels.DocumentConvert(*doc, tags)
	return &view, nil
}

func (i impl) List(userID string, role models.UserRole) ([]docapimodels.DocumentView, error) {
	var list []dbmodels.Document
	var err error
	if role.IsAdmin() {
		list, err = i.store.List()
	} else {
		list, err = i.store.ListByCreator(userID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка документов")
	}
	result := make([]docapimodels.DocumentView, 0, len(list))
	for _, doc := range list {
		tags, err := i.tagStore.ListByDocument(doc.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения меток документа")
		}
		result = append(result, docapimodels.DocumentConvert(doc, tags))
	}
	return result, nil
}

func (i impl) Delete(id, userID string, role models.UserRole) error {
	logger := i.getLogger(id, userID)
	doc, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения документа")
	}
	if doc == nil {
		return apperrors.ErrNotFound
	}
	if !role.IsAdmin() && doc.CreatorID != userID {
		readable, err := routehandler.Instance.GetReadable(id, userID, role)
		if err != nil {
			return err
		}
		if readable == nil {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrForbidden
	}
	var canceledRoute *dbmodels.Route
	var pendingStep *dbmodels.RouteStep
	if doc.RouteActive {
		canceledRoute, err = i.routeStore.GetLatestByDocument(doc.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения маршрута")
		}
		if canceledRoute != nil {
			pendingStep, err = i.stepStore.GetCurrent(canceledRoute.ID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения текущего шага")
			}
		}
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		documentStore := documentstore.NewInstance(tx)
		routeStore := routestore.NewInstance(tx)
		stepStore := routestepstore.NewInstance(tx)
		if canceledRoute != nil {
			err := stepStore.DeleteByRoute(canceledRoute.ID)
			if err != nil {
				return errors.Wrap(err, "ошибка удаления шагов маршрута")
			}
			err = routeStore.Delete(canceledRoute.ID)
			if err != nil {
				return errors.Wrap(err, "ошибка удаления маршрута")
			}
		}
		err := documentStore.Delete(doc.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления документа")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("документ удалён")

	// адресаты незавершённого шага узнают об отмене маршрута
	if canceledRoute != nil && pendingStep != nil && notificationhandler.Instance != nil {
		targets, err := i.resolveStepTargets(*pendingStep)
		if err != nil {
			logger.WithError(err).Error("ошибка получения адресатов шага")
			return nil
		}
		notificationhandler.Instance.RouteCanceled(canceledRoute.Name, doc.Title, targets)
	}
	return nil
}

func (i impl) UploadFile(ctx context.Context, id, userID string, role models.UserRole, fileName, mimeType string, body []byte) (string, error) {
	doc, err := i.store.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения документа")
	}
	if doc == nil {
		return "", apperrors.ErrNotFound
	}
	if !role.IsAdmin() && doc.CreatorID != userID {
		readable, err := routehandler.Instance.GetReadable(id, userID, role)
		if err != nil {
			return "", err
		}
		if readable == nil {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.ErrForbidden
	}
	fileID, err := filestorage.Instance.UploadFile(ctx, doc.ID, fileName, mimeType, body)
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла документа")
	}
	i.getLogger(id, userID).WithField("file_id", fileID).Info("файл документа загружен")
	return fileID, nil
}

func (i impl) GetFile(ctx context.Context, id, fileID, userID string, role models.UserRole) (*dbmodels.DocumentFile, []byte, error) {
	doc, err := routehandler.Instance.GetReadable(id, userID, role)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, apperrors.ErrNotFound
	}
	rec, body, err := filestorage.Instance.GetFile(ctx, fileID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения файла документа")
	}
	if rec == nil || rec.DocumentID != doc.ID {
		return nil, nil, apperrors.ErrNotFound
	}
	return rec, body, nil
}

func (i impl) ListFiles(id, userID string, role models.UserRole) ([]dbmodels.DocumentFile, error) {
	doc, err := routehandler.Instance.GetReadable(id, userID, role)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.ErrNotFound
	}
	list, err := filestorage.Instance.ListByDocument(doc.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка файлов документа")
	}
	return list, nil
}

func (i impl) resolveStepTargets(step dbmodels.RouteStep) ([]string, error) {
	if step.TargetType == models.RouteTargetGroup {
		members, err := i.groupStore.ListMembers(step.TargetName)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(members))
		for _, member := range members {
			ids = append(ids, member.ID)
		}
		return ids, nil
	}
	user, err := i.usersStore.GetByLogin(step.TargetName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []string{}, nil
	}
	return []string{user.ID}, nil
}
