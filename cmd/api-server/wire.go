//go:build wireinject
// +build wireinject

package main

import (
	"Pawmate/config"
	"Pawmate/dao"
	"Pawmate/dao/cache"
	"Pawmate/handler"
	"Pawmate/pkg/client"
	"Pawmate/pkg/database"
	"Pawmate/pkg/rocketmq"
	"Pawmate/pkg/server"
	"Pawmate/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideRocketMQConfig,
		rocketmq.InitProducer,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Animal), "*"),
		wire.Struct(new(handler.Post), "*"),
		wire.Struct(new(handler.Reaction), "*"),
		wire.Struct(new(handler.Relationship), "*"),
		wire.Struct(new(handler.Watch), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
