//go:build wireinject
// +build wireinject

package main

import (
	"Foodgram/config"
	"Foodgram/dao"
	"Foodgram/dao/cache"
	"Foodgram/handler"
	"Foodgram/pkg/client"
	"Foodgram/pkg/database"
	"Foodgram/pkg/server"
	"Foodgram/pkg/storage"
	"Foodgram/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		client.NewRedisClient,
		database.NewDB,
		config.ProvideStorageConfig,
		config.ProvideRecipeConfig,
		storage.New,
		server.NewGinEngine,
		cache.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Recipe), "*"),
		wire.Struct(new(handler.Tag), "*"),
		wire.Struct(new(handler.Ingredient), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
	)
	return nil, nil
}
