package initializers

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"mail-approval-backend/config"
)

var RedisClient *goredis.Client

// InitRedis подключается к redis, если задан адрес. Без адреса RedisClient остается nil
func InitRedis(ctx context.Context) {
	if config.Conf.Redis.Addr == "" {
		log.Info("адрес redis не задан, отозванные токены хранятся в памяти")
		return
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		panic("не удалось подключиться к redis: " + err.Error())
	}
	log.WithField("addr", config.Conf.Redis.Addr).Info("подключение к redis установлено")
	RedisClient = client
}
