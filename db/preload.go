package db

import (
	"hr-suite-backend/config"
	accountstore "hr-suite-backend/lib/approval/store"
	"hr-suite-backend/models"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addBootstrapAdmin()
}

// addBootstrapAdmin первый администратор, иначе некому подтверждать роли остальных пользователей
func addBootstrapAdmin() {
	externalID := config.Conf.Admin.ExternalID
	if externalID == "" {
		log.Warn("администратор не добавлен, отсутствует настройка ADMIN_EXTERNAL_ID")
		return
	}
	store := accountstore.NewInstance(DB)
	existedRec, err := store.GetByExternalID(externalID)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil && existedRec.IsApproved {
		return
	}
	if _, err = store.RequestRole(externalID, models.AdministratorRole); err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if _, err = store.Approve(externalID, models.SystemUser); err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
	}
}
