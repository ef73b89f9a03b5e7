package services

import (
	"context"
	"errors"

	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
)

// ChatService fronts the assistant collaborator. A quota or rate-limit
// signal is not an error to the shopper: it degrades to the alternate
// contact channel instead.
type ChatService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	catalogService *CatalogService
}

func NewChatService(logger *gecho.Logger, cfg *structs.Config, catalogService *CatalogService) *ChatService {
	return &ChatService{
		logger:         logger,
		cfg:            cfg,
		catalogService: catalogService,
	}
}

// Ask forwards the message and returns the assistant's reply.
// ErrServiceBusy means the assistant is quota-limited, not broken.
func (cs *ChatService) Ask(ctx context.Context, req *structs.ChatRequest) (*structs.ChatResponse, error) {
	resp, err := cs.catalogService.Chat(ctx, req)
	if err != nil {
		if errors.Is(err, lib.ErrServiceBusy) {
			cs.logger.Warn("Chat collaborator is quota-limited, degrading to contact channel")
		} else {
			cs.logger.Error("Chat request failed", gecho.Field("error", err))
		}
		return nil, err
	}
	return resp, nil
}
