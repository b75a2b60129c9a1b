package notifications

// Channel identifies one notification transport.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// EventKind is the semantic reason a notification is being sent.
type EventKind string

const (
	EventNewOrderAdmin         EventKind = "new-order-admin"
	EventOrderReceivedCustomer EventKind = "order-received-customer"
	EventStatusChangedCustomer EventKind = "status-changed-customer"
)

// Message is a composed notification body. Subject is only used by the
// email channel.
type Message struct {
	Subject string
	Body    string
}

// SendResult describes one channel send outcome. Results feed diagnostic
// logging only; they are never surfaced to the request that triggered the
// notification.
type SendResult struct {
	Channel Channel `json:"channel"`
	Success bool    `json:"success"`
	Detail  string  `json:"detail"`
}

// Sender is a channel adapter. Send never panics and never returns an
// error; transport failures come back as an unsuccessful SendResult.
type Sender interface {
	Channel() Channel
	Send(recipient string, msg Message) SendResult
}
