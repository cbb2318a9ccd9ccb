package authhandler

import (
	"doc-flow-backend/db"
	usersstore "doc-flow-backend/lib/users/store"
	authutils "doc-flow-backend/lib/utils/auth-utils"
	authapimodels "doc-flow-backend/models/api/auth"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(data authapimodels.LoginRequest) (resp *authapimodels.JWTResponse, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) Login(data authapimodels.LoginRequest) (*authapimodels.JWTResponse, string, error) {
	logger := log.WithField("login", data.Login)
	user, err := i.usersStore.GetByLogin(data.Login)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil || user.Password != authutils.GetMD5Hash(data.Password) {
		return nil, "Неверный логин или пароль", nil
	}
	token, err := authutils.GetToken(user.ID, user.Login, user.Role)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка выпуска токена")
	}
	logger.Info("пользователь вошёл в систему")
	return &authapimodels.JWTResponse{AccessToken: token}, "", nil
}
