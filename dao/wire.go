//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUserDAO,
	NewAnimalDAO,
	NewPostDAO,
	NewReactionDAO,
	NewReactionStatsDAO,
	NewRelationshipDAO,
)
