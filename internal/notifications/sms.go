package notifications

import (
	"scoops/internal/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers messages over the Twilio SMS API. Missing Twilio
// credentials put it in no-op mode.
type SMSSender struct {
	client             *twilio.RestClient
	from               string
	defaultCountryCode string
}

// NewSMSSender creates an SMS adapter from the notification config.
func NewSMSSender(cfg config.NotificationConfig) *SMSSender {
	s := &SMSSender{defaultCountryCode: cfg.DefaultCountryCode}
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioSMSFrom == "" {
		return s
	}
	s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	s.from = cfg.TwilioSMSFrom
	return s
}

// Channel identifies this adapter's transport.
func (s *SMSSender) Channel() Channel {
	return ChannelSMS
}

// Send delivers one message to the normalized recipient number.
func (s *SMSSender) Send(recipient string, msg Message) SendResult {
	if s.client == nil {
		return SendResult{Channel: ChannelSMS, Success: false, Detail: "not configured"}
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(NormalizePhone(recipient, s.defaultCountryCode))
	params.SetFrom(s.from)
	params.SetBody(msg.Body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return SendResult{Channel: ChannelSMS, Success: false, Detail: err.Error()}
	}
	return SendResult{Channel: ChannelSMS, Success: true, Detail: "sent"}
}
