//go:build wireinject

package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHub,
	NewEventBus,

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(AnimalService), "*"),
	wire.Bind(new(IAnimalService), new(*AnimalService)),

	wire.Struct(new(PostService), "*"),
	wire.Bind(new(IPostService), new(*PostService)),

	wire.Struct(new(ReactionService), "*"),
	wire.Bind(new(IReactionService), new(*ReactionService)),

	wire.Struct(new(RelationshipService), "*"),
	wire.Bind(new(IRelationshipService), new(*RelationshipService)),

	wire.Struct(new(WatchService), "Redis", "Hub", "ReactionService", "RelationshipService"),
	wire.Bind(new(IWatchService), new(*WatchService)),
)
