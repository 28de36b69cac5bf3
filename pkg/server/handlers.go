package server

import (
	"Pawmate/handler"
)

type Handlers struct {
	Auth         *handler.Auth
	Animal       *handler.Animal
	Post         *handler.Post
	Reaction     *handler.Reaction
	Relationship *handler.Relationship
	Watch        *handler.Watch
}
