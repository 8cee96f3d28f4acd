package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"services-backend/models"
)

// Publisher emits service lifecycle events on the service topic exchange.
// Publication is fire-and-forget: it runs strictly after the local
// transaction committed, and a broker failure is logged, never propagated
// back into the workflow that caused it.
type Publisher struct {
	ch     *amqp.Channel
	logger *zap.Logger
}

func NewPublisher(conn *amqp.Connection, logger *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(ServiceExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, logger: logger}, nil
}

func (p *Publisher) ServiceCreated(s *models.Service, barberIDs []string) {
	p.publish(RoutingServiceCreated, toServiceEvent(s, barberIDs))
}

func (p *Publisher) ServiceUpdated(s *models.Service, barberIDs []string) {
	p.publish(RoutingServiceUpdated, toServiceEvent(s, barberIDs))
}

func (p *Publisher) ServiceInactivated(id uuid.UUID) {
	p.publish(RoutingServiceInactivated, ServiceInactivatedEvent{
		ID:                 id,
		AvailabilityStatus: models.AvailabilityUnavailable.Display(),
		SystemStatus:       models.SystemInactive.Display(),
	})
}

func (p *Publisher) publish(routingKey string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal outbound event", zap.String("routingKey", routingKey), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, ServiceExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error("publish event failed", zap.String("routingKey", routingKey), zap.Error(err))
		return
	}
	p.logger.Info("event published", zap.String("routingKey", routingKey))
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func toServiceEvent(s *models.Service, barberIDs []string) ServiceEvent {
	if barberIDs == nil {
		barberIDs = []string{}
	}
	return ServiceEvent{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		Price:              s.Price,
		Duration:           s.Duration,
		RelatedBarberIDs:   barberIDs,
		AvailabilityStatus: s.AvailabilityStatus.Display(),
		SystemStatus:       s.SystemStatus.Display(),
	}
}
