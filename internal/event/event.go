// Package event forwards store mutations to Kafka as analytics events.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/internal/store"
	"github.com/souhail747/luxe/pkg/kafka"
	"github.com/souhail747/luxe/pkg/logger"
)

// Source is stamped on every event envelope.
const Source = "storefront"

const publishTimeout = 2 * time.Second

var publishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_events_published_total",
		Help: "Analytics events handed to the publisher, by type and result",
	},
	[]string{"event_type", "result"},
)

// Publisher writes one event to a topic. *kafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *kafka.Event) error { return nil }

// Forwarder turns store changes into events on one topic.
type Forwarder struct {
	pub     Publisher
	topic   string
	session string
	logger  *slog.Logger
}

// NewForwarder builds a Forwarder tagging events with the session id.
func NewForwarder(pub Publisher, topic, session string, logger *slog.Logger) *Forwarder {
	return &Forwarder{pub: pub, topic: topic, session: session, logger: logger}
}

// Payloads sent with each event type.
type (
	CartPayload struct {
		TotalItems int     `json:"totalItems"`
		TotalPrice float64 `json:"totalPrice"`
		Lines      int     `json:"lines"`
	}
	WishlistPayload struct {
		Count int `json:"count"`
	}
	ThemePayload struct {
		IsDark bool `json:"isDark"`
	}
)

// Attach subscribes to src and publishes one event per change, with the
// payload built by payload. The returned func detaches.
func Attach[T any](f *Forwarder, src store.Observable[T], payload func(T) any) func() {
	return src.Subscribe(func(ctx context.Context, c store.Change[T]) {
		f.forward(ctx, string(c.Action), c.Subject, payload(c.State))
	})
}

// AttachAll wires the three session stores.
func (f *Forwarder) AttachAll(cart *store.CartStore, wishlist *store.WishlistStore, theme *store.ThemeStore) func() {
	detach := []func(){
		Attach[domain.Cart](f, cart, func(c domain.Cart) any {
			return CartPayload{TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice(), Lines: len(c.Items)}
		}),
		Attach[domain.Wishlist](f, wishlist, func(w domain.Wishlist) any {
			return WishlistPayload{Count: len(w.Items)}
		}),
		Attach[store.Theme](f, theme, func(t store.Theme) any {
			return ThemePayload{IsDark: t.IsDark}
		}),
	}
	return func() {
		for _, d := range detach {
			d()
		}
	}
}

// forward never fails the mutation that triggered it; errors are logged.
func (f *Forwarder) forward(ctx context.Context, eventType, subject string, data any) {
	evt, err := kafka.NewEvent(eventType, subject, f.session, Source, data)
	if err != nil {
		f.logger.ErrorContext(ctx, "build event", slog.String("event_type", eventType), slog.String("error", err.Error()))
		publishedTotal.WithLabelValues(eventType, "error").Inc()
		return
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := f.pub.Publish(pubCtx, f.topic, evt); err != nil {
		f.logger.WarnContext(ctx, "publish analytics event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		publishedTotal.WithLabelValues(eventType, "error").Inc()
		return
	}
	publishedTotal.WithLabelValues(eventType, "ok").Inc()
}
