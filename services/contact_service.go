package services

import (
	"fmt"
	"html"
	"sync"

	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	resendClient *resend.Client
	clientOnce   = sync.Once{}
)

// ContactService delivers shopper messages by email. It is the fallback
// channel when the chat assistant is temporarily unavailable.
type ContactService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewContactService(logger *gecho.Logger, cfg *structs.Config) *ContactService {
	return &ContactService{
		logger: logger,
		cfg:    cfg,
		client: getContactClient(cfg.Contact.ApiKey),
	}
}

func getContactClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		resendClient = resend.NewClient(apiKey)
	})
	return resendClient
}

// Send forwards a contact request to the support inbox.
func (cs *ContactService) Send(req *structs.ContactRequest) error {
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Message),
	)

	params := &resend.SendEmailRequest{
		From:    cs.cfg.Contact.From,
		To:      []string{cs.cfg.Contact.To},
		Subject: fmt.Sprintf("Storefront contact from %s", req.Name),
		Html:    body,
	}

	_, err := cs.client.Emails.Send(params)
	if err != nil {
		cs.logger.Error("Failed to send contact email", gecho.Field("error", err), gecho.Field("from", req.Email))
		return err
	}

	return nil
}
