package handlers

import (
	"diplomacy_replay/internal/repository"
	"diplomacy_replay/internal/service"
)

// Handler — зависимости всех HTTP обработчиков
type Handler struct {
	Theater     *service.Theater
	Archive     *repository.ArchiveRepository
	Events      *repository.EventRepository
	OperatorKey string
}

func NewHandler(theater *service.Theater, archive *repository.ArchiveRepository, events *repository.EventRepository, operatorKey string) *Handler {
	return &Handler{
		Theater:     theater,
		Archive:     archive,
		Events:      events,
		OperatorKey: operatorKey,
	}
}
