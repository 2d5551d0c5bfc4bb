package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "mail-approval-backend/models/db"
)

func AutoMigrateDB() error {
	return Migrate(DB)
}

func Migrate(tx *gorm.DB) error {
	if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		log.WithError(err).Warn("не удалось создать расширение uuid-ossp, генерация идентификаторов в БД может не работать")
	}
	log.Info("Запуск миграций")
	if err := tx.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := tx.AutoMigrate(&dbmodels.MailRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры MailRequest")
	}
	if err := tx.AutoMigrate(&dbmodels.MailRequestHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры MailRequestHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
