package metrics

import (
	"context"

	"github.com/sunhollow/farmstead/internal/domain"
	"github.com/sunhollow/farmstead/internal/event"
	"github.com/sunhollow/farmstead/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events the collector cares about.
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ItemBought,
		event.ItemSold,
		event.TransactionFailed,
		event.ShopOpened,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case domain.ItemBoughtPayload:
		ItemsBought.WithLabelValues(payload.ItemName).Add(float64(payload.Quantity))
		GoldSpent.Add(float64(payload.TotalCost))
		if payload.Overflowed > 0 {
			InventoryOverflow.Add(float64(payload.Overflowed))
		}

	case domain.ItemSoldPayload:
		ItemsSold.WithLabelValues(payload.ItemName).Add(float64(payload.Quantity))
		GoldEarned.Add(float64(payload.TotalPayout))

	case domain.TransactionFailedPayload:
		TransactionsFailed.WithLabelValues(string(payload.Reason)).Inc()

	case domain.ShopOpenedPayload:
		ShopSessions.WithLabelValues(payload.ShopName).Inc()
	}

	log.Debug("Metrics recorded for event", "type", evt.Type)
	return nil
}
