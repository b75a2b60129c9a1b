package notifications

import (
	"fmt"
	"sync"

	"scoops/internal/models"

	"github.com/rs/zerolog"
)

// Notifier fans an order event out to its notification channels.
type Notifier interface {
	Dispatch(order *models.Order, event EventKind) []SendResult
}

// Dispatcher resolves recipients and channels for an event and invokes
// the channel adapters concurrently. One channel's failure never affects
// its siblings or the caller; outcomes are aggregated for logging only.
type Dispatcher struct {
	email    Sender
	whatsapp Sender
	sms      Sender

	adminEmail string
	adminPhone string

	log zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given channel adapters.
func NewDispatcher(email, whatsapp, sms Sender, adminEmail, adminPhone string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		email:      email,
		whatsapp:   whatsapp,
		sms:        sms,
		adminEmail: adminEmail,
		adminPhone: adminPhone,
		log:        log.With().Str("component", "notification_dispatcher").Logger(),
	}
}

type send struct {
	sender    Sender
	recipient string
}

// Dispatch fans out one order event. Channel groups whose recipient field
// is absent are skipped entirely; everything else is attempted, and
// unconfigured transports report themselves as such in the results.
func (d *Dispatcher) Dispatch(order *models.Order, event EventKind) []SendResult {
	messages := Compose(order, event)

	var sends []send
	switch event {
	case EventNewOrderAdmin:
		if d.adminEmail != "" {
			sends = append(sends, send{d.email, d.adminEmail})
		}
		if d.adminPhone != "" {
			sends = append(sends, send{d.whatsapp, d.adminPhone})
		}
	case EventOrderReceivedCustomer, EventStatusChangedCustomer:
		if email := order.ShippingAddress.Email; email != "" {
			sends = append(sends, send{d.email, email})
		}
		if phone := order.ShippingAddress.Phone; phone != "" {
			sends = append(sends, send{d.whatsapp, phone})
			sends = append(sends, send{d.sms, phone})
		}
	default:
		d.log.Warn().Str("event", string(event)).Str("order_id", order.ID).Msg("unknown notification event, nothing dispatched")
		return nil
	}

	results := make([]SendResult, len(sends))
	var wg sync.WaitGroup
	for i, s := range sends {
		wg.Add(1)
		go func(i int, s send) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = SendResult{
						Channel: s.sender.Channel(),
						Success: false,
						Detail:  fmt.Sprintf("adapter panic: %v", r),
					}
				}
			}()
			results[i] = s.sender.Send(s.recipient, messages[s.sender.Channel()])
		}(i, s)
	}
	wg.Wait()

	for _, res := range results {
		evt := d.log.Info()
		if !res.Success {
			evt = d.log.Warn()
		}
		evt.Str("order_id", order.ID).
			Str("event", string(event)).
			Str("channel", string(res.Channel)).
			Bool("success", res.Success).
			Str("detail", res.Detail).
			Msg("notification send outcome")
	}

	return results
}
