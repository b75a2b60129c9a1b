package notifications

import (
	"scoops/internal/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// WhatsAppSender delivers messages over the Twilio WhatsApp API. Missing
// Twilio credentials put it in no-op mode.
type WhatsAppSender struct {
	client             *twilio.RestClient
	from               string
	defaultCountryCode string
}

// NewWhatsAppSender creates a WhatsApp adapter from the notification config.
func NewWhatsAppSender(cfg config.NotificationConfig) *WhatsAppSender {
	s := &WhatsAppSender{defaultCountryCode: cfg.DefaultCountryCode}
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioWhatsAppFrom == "" {
		return s
	}
	s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	s.from = cfg.TwilioWhatsAppFrom
	return s
}

// Channel identifies this adapter's transport.
func (s *WhatsAppSender) Channel() Channel {
	return ChannelWhatsApp
}

// Send delivers one message. Twilio addresses WhatsApp recipients with a
// "whatsapp:" scheme in front of the E.164 number.
func (s *WhatsAppSender) Send(recipient string, msg Message) SendResult {
	if s.client == nil {
		return SendResult{Channel: ChannelWhatsApp, Success: false, Detail: "not configured"}
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + NormalizePhone(recipient, s.defaultCountryCode))
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(msg.Body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return SendResult{Channel: ChannelWhatsApp, Success: false, Detail: err.Error()}
	}
	return SendResult{Channel: ChannelWhatsApp, Success: true, Detail: "sent"}
}
