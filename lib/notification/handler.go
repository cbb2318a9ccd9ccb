package notificationhandler

import (
	"time"

	"doc-flow-backend/config"
	"doc-flow-backend/db"
	groupstore "doc-flow-backend/lib/group/store"
	notificationdatastore "doc-flow-backend/lib/notification/data-store"
	"doc-flow-backend/lib/smtp"
	usersstore "doc-flow-backend/lib/users/store"
	connectionhub "doc-flow-backend/lib/ws/hub/connection-hub"
	"doc-flow-backend/models"
	dbmodels "doc-flow-backend/models/db"
	wsmodels "doc-flow-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

// Уведомления отправляются вне транзакции и не влияют на результат
// операции: любая ошибка доставки только логируется.
type Provider interface {
	// StepReady уведомляет адресатов шага о том, что шаг ожидает действия.
	StepReady(documentTitle string, step dbmodels.RouteStep)
	// RouteCanceled уведомляет перечисленных пользователей об отмене маршрута.
	RouteCanceled(routeName, documentTitle string, userIDs []string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
		groupStore: groupstore.NewInstance(db.DB),
		dataStore:  notificationdatastore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
	groupStore groupstore.Provider
	dataStore  notificationdatastore.Provider
}

func (i impl) getLogger(code models.PushCode) *log.Entry {
	logger := log.
		WithField("event_code", string(code))
	return logger
}

func (i impl) StepReady(documentTitle string, step dbmodels.RouteStep) {
	logger := i.getLogger(models.PushRouteStepReady).
		WithField("route_step_id", step.ID)
	recipients, err := i.resolveTarget(step)
	if err != nil {
		logger.WithError(err).Error("ошибка получения адресатов шага")
		return
	}
	if len(recipients) == 0 {
		logger.Warn("у шага нет адресатов, уведомление не отправлено")
		return
	}
	for _, user := range recipients {
		i.notify(user, models.PushRouteStepReady, documentTitle, step.Name)
	}
}

func (i impl) RouteCanceled(routeName, documentTitle string, userIDs []string) {
	logger := i.getLogger(models.PushRouteCanceled)
	seen := map[string]bool{}
	for _, userID := range userIDs {
		if userID == "" || seen[userID] {
			continue
		}
		seen[userID] = true
		user, err := i.usersStore.GetByID(userID)
		if err != nil {
			logger.WithError(err).Error("ошибка получения пользователя")
			continue
		}
		if user == nil {
			continue
		}
		i.notify(*user, models.PushRouteCanceled, routeName, documentTitle)
	}
}

func (i impl) resolveTarget(step dbmodels.RouteStep) ([]dbmodels.User, error) {
	if step.TargetType == models.RouteTargetGroup {
		return i.groupStore.ListMembers(step.TargetName)
	}
	user, err := i.usersStore.GetByLogin(step.TargetName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []dbmodels.User{}, nil
	}
	return []dbmodels.User{*user}, nil
}

func (i impl) notify(user dbmodels.User, code models.PushCode, args ...interface{}) {
	logger := i.getLogger(code).
		WithField("user_id", user.ID)
	title, msg := code.BuildMsg(args...)
	if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(user.ID) {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID: user.ID,
			Time:     time.Now().Format("02.01.2006 15:04:05"),
			Code:     string(code),
			Title:    title,
			Msg:      msg,
		})
	} else {
		err := i.dataStore.Create(dbmodels.NotificationData{
			UserID: user.ID,
			Code:   code,
			Title:  title,
			Msg:    msg,
		})
		if err != nil {
			logger.WithError(err).Error("ошибка сохранения отложенного уведомления")
		}
	}
	if smtp.Instance != nil && user.Email != "" {
		err := smtp.Instance.SendEMail(config.Conf.Smtp.Sender, user.Email, msg, title)
		if err != nil {
			logger.WithError(err).Error("ошибка отправки письма")
		}
	}
}
