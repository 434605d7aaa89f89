package notification

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/infrastructure/eventbus"
	log "github.com/sirupsen/logrus"
)

// Mailer sends the new-arrival email
type Mailer interface {
	SendNewArrival(to string, p catalog.Product) error
}

// SubscriberSource lists newsletter subscribers
type SubscriberSource interface {
	Subscribers(ctx context.Context) ([]string, error)
}

// Handler processes catalog events for sending notifications
type Handler struct {
	mailer      Mailer
	subscribers SubscriberSource
}

// NewHandler creates a new notification handler
func NewHandler(mailer Mailer, subscribers SubscriberSource) *Handler {
	return &Handler{
		mailer:      mailer,
		subscribers: subscribers,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	event, err := eventbus.Decode(value)
	if err != nil {
		log.WithError(err).Warn("[Notifier] Failed to unmarshal event")
		return err
	}

	// Only new arrivals are announced
	if event.EventType == catalog.EventProductAdded {
		return h.handleProductAdded(ctx, event)
	}

	return nil
}

func (h *Handler) handleProductAdded(ctx context.Context, event eventbus.Event) error {
	var e catalog.ProductAdded
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.WithError(err).Warn("[Notifier] Failed to unmarshal ProductAdded event")
		return err
	}

	logger := log.WithFields(log.Fields{
		"product_id": e.Product.ID,
		"event_id":   event.ID,
	})
	logger.Info("[Notifier] Processing ProductAdded event")

	recipients, err := h.subscribers.Subscribers(ctx)
	if err != nil {
		logger.WithError(err).Error("[Notifier] Failed to list subscribers")
		return err
	}

	var errs []error
	sent := 0
	for _, to := range recipients {
		if err := h.mailer.SendNewArrival(to, e.Product); err != nil {
			logger.WithError(err).WithField("to", to).Warn("[Notifier] Failed to send email")
			errs = append(errs, err)
			continue
		}
		sent++
	}

	logger.WithFields(log.Fields{"sent": sent, "failed": len(errs)}).Info("[Notifier] New arrival emails sent")
	return errors.Join(errs...)
}
