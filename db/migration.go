package db

import (
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Group{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Group")
	}
	if err := DB.AutoMigrate(&dbmodels.GroupMember{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры GroupMember")
	}
	if err := DB.AutoMigrate(&dbmodels.Document{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Document")
	}
	if err := DB.AutoMigrate(&dbmodels.DocumentFile{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DocumentFile")
	}
	if err := DB.AutoMigrate(&dbmodels.Tag{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Tag")
	}
	if err := DB.AutoMigrate(&dbmodels.DocumentTag{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DocumentTag")
	}
	if err := DB.AutoMigrate(&dbmodels.RouteModel{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RouteModel")
	}
	if err := DB.AutoMigrate(&dbmodels.Route{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Route")
	}
	if err := DB.AutoMigrate(&dbmodels.RouteStep{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RouteStep")
	}
	if err := DB.AutoMigrate(&dbmodels.Review{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Review")
	}
	if err := DB.AutoMigrate(&dbmodels.NotificationData{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NotificationData")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
