package chat

import (
	"errors"
	"net/http"

	"giftbasket_server/handling"
	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
)

// Ask handles POST /chat. When the upstream assistant is out of quota
// the response carries a degraded flag so clients can offer the contact
// form instead of retrying.
func (crm *ChatRoutesManager) Ask(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.ChatRequest](r)
	if err != nil {
		crm.logger.Warn("Invalid chat request", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.chat.invalidRequest"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	req.Message = lib.SanitizeString(req.Message, true, false)
	if req.Message == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.chat.emptyMessage"),
			gecho.Send(),
		)
		return
	}

	resp, err := crm.chatService.Ask(r.Context(), req)
	if err != nil {
		if errors.Is(err, lib.ErrServiceBusy) {
			gecho.ServiceUnavailable(w,
				gecho.WithMessage("error.chat.unavailable"),
				gecho.WithData(map[string]any{
					"degraded":     true,
					"contact_path": "/contact",
				}),
				gecho.Send(),
			)
			return
		}

		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(resp),
		gecho.Send(),
	)
}

// Contact handles POST /contact, the fallback channel when chat is
// degraded.
func (crm *ChatRoutesManager) Contact(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.ContactRequest](r)
	if err != nil {
		crm.logger.Warn("Invalid contact request", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.contact.invalidRequest"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	req.Name = lib.SanitizeString(req.Name, true, false)
	req.Message = lib.SanitizeString(req.Message, true, false)

	if err := crm.contactService.Send(req); err != nil {
		crm.logger.Error("Failed to send contact message", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.contact.sendFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.contact.sent"),
		gecho.Send(),
	)
}
