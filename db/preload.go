package db

import (
	groupstore "doc-flow-backend/lib/group/store"
	authutils "doc-flow-backend/lib/utils/auth-utils"
	usersstore "doc-flow-backend/lib/users/store"
	"doc-flow-backend/models"
	dbmodels "doc-flow-backend/models/db"

	log "github.com/sirupsen/logrus"
)

const (
	defaultAdminLogin = "admin"
	defaultGroupName  = "administrators"
)

func InitPreload() {
	fillAdminUser()
}

func fillAdminUser() {
	userStore := usersstore.NewInstance(DB)
	grpStore := groupstore.NewInstance(DB)

	admin, err := userStore.GetByLogin(defaultAdminLogin)
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения пользователей")
		return
	}
	if admin == nil {
		rec := dbmodels.User{
			Login:    defaultAdminLogin,
			Password: authutils.GetMD5Hash(defaultAdminLogin),
			Role:     models.UserRoleAdmin,
		}
		id, err := userStore.Create(rec)
		if err != nil {
			log.WithError(err).Error("ошибка создания пользователя по умолчанию")
			return
		}
		rec.ID = id
		admin = &rec
		log.Info("создан пользователь по умолчанию")
	}

	group, err := grpStore.GetByName(defaultGroupName)
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения групп")
		return
	}
	if group == nil {
		rec := dbmodels.Group{Name: defaultGroupName}
		id, err := grpStore.Create(rec)
		if err != nil {
			log.WithError(err).Error("ошибка создания группы по умолчанию")
			return
		}
		rec.ID = id
		group = &rec
		log.Info("создана группа по умолчанию")
	}

	isMember, err := grpStore.IsMember(group.Name, admin.ID)
	if err != nil {
		log.WithError(err).Error("ошибка проверки состава группы")
		return
	}
	if !isMember {
		if err = grpStore.AddMember(group.ID, admin.ID); err != nil {
			log.WithError(err).Error("ошибка добавления пользователя в группу")
		}
	}
}
