package client

import (
	"context"
	"fmt"

	"Foodgram/config"
	"Foodgram/pkg/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(conf *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Redis.Address, conf.Redis.Port),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})
	if _, err := client.Ping(context.TODO()).Result(); err != nil {
		// the relation cache and token revocation degrade to the database
		log.L.Warn("connect redis error", zap.Error(err))
		return client
	}
	log.L.Info("redis client success")
	return client
}
