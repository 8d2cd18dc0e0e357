package telemetry

import (
	"context"
	"fmt"

	"github.com/fliamecomm/storefront/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// StorefrontMetrics counts published domain events and login outcomes.
// It subscribes to the event bus as a wildcard handler.
type StorefrontMetrics struct {
	events *Counter
	logins *Counter
}

// Ensure StorefrontMetrics implements EventHandler
var _ shared.EventHandler = (*StorefrontMetrics)(nil)

// NewStorefrontMetrics creates the instruments on meter
func NewStorefrontMetrics(meter metric.Meter) (*StorefrontMetrics, error) {
	events, err := NewCounter(meter, "storefront.events", "Domain events published", "{event}")
	if err != nil {
		return nil, err
	}
	logins, err := NewCounter(meter, "storefront.logins", "Login attempts by outcome", "{login}")
	if err != nil {
		return nil, err
	}
	return &StorefrontMetrics{events: events, logins: logins}, nil
}

// Handle counts the event by type
func (m *StorefrontMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	if event == nil {
		return fmt.Errorf("nil event")
	}
	m.events.Inc(ctx, AttrEventType.String(event.EventType()))
	return nil
}

// EventTypes returns nil to receive every event
func (m *StorefrontMetrics) EventTypes() []string {
	return nil
}

// RecordLogin counts a login attempt with its result (success, invalid, mismatch)
func (m *StorefrontMetrics) RecordLogin(ctx context.Context, result string) {
	m.logins.Inc(ctx, AttrLoginResult.String(result))
}
