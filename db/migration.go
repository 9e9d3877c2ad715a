package db

import (
	dbmodels "hr-suite-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.AccessAccount{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AccessAccount")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
