package config

import (
	"time"

	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr    string `default:"" env:"APP_HOST"`
		Port          int    `default:"8080"  env:"APP_PORT"`
		BodyLimit     int64  `default:"1048576" env:"APP_BODY_LIMIT"`
		ErrNotifyAddr string `default:"" env:"APP_ERR_NOTIFY_ADDR"` // адрес бота для уведомлений об ошибках 5xx
		SwaggerFile   string `default:"./docs/swagger.json" env:"APP_SWAGGER_FILE"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"mail-approval" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec        int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int    `default:"604800" env:"AUTH_JWT_REFRESH_EXPIRE_IN_SEC"`
		BcryptCost            int    `default:"10" env:"AUTH_BCRYPT_COST"`
	}
	Escalation struct {
		ManagerAfterSec  int `default:"60" env:"ESCALATION_MANAGER_AFTER_SEC"`
		HelpDeskAfterSec int `default:"120" env:"ESCALATION_HELP_DESK_AFTER_SEC"`
		MonitorEverySec  int `default:"30" env:"ESCALATION_MONITOR_EVERY_SEC"` // период пересчета просроченных заявок, 0 - не запускать
	}
	Redis struct {
		Addr     string `default:"" env:"REDIS_ADDR"` // пусто - отозванные токены хранятся в памяти
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	Metrics struct {
		Enabled *bool `default:"true" env:"METRICS_ENABLED"`
	}
}

func (c Configuration) ManagerEscalation() time.Duration {
	return time.Duration(c.Escalation.ManagerAfterSec) * time.Second
}

func (c Configuration) HelpDeskEscalation() time.Duration {
	return time.Duration(c.Escalation.HelpDeskAfterSec) * time.Second
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
