package chat

import (
	"giftbasket_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ChatRoutesManager struct {
	logger         *gecho.Logger
	chatService    *services.ChatService
	contactService *services.ContactService
}

func NewChatRoutesManager(
	logger *gecho.Logger,
	chatService *services.ChatService,
	contactService *services.ContactService,
) *ChatRoutesManager {
	return &ChatRoutesManager{
		logger:         logger,
		chatService:    chatService,
		contactService: contactService,
	}
}

func (crm *ChatRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/chat", crm.Ask)
	r.Post("/contact", crm.Contact)
}
