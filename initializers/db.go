package initializers

import (
	"hr-suite-backend/config"
	"hr-suite-backend/db"

	log "github.com/sirupsen/logrus"
)

func InitDBConnection() {
	conf := config.Conf.Database
	err := db.Connect(conf.Host, conf.Port, conf.Name, conf.User, conf.Password, *conf.DebugMode, *conf.MigrateOnStart)
	if err != nil {
		log.WithError(err).Fatal("ошибка подключения к БД")
	}
	if err = db.PingDB(); err != nil {
		log.WithError(err).Fatal("БД недоступна")
	}

	db.InitPreload()
}
