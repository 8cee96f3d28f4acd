package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"services-backend/services"
)

// Consumer subscribes to the barber and reservation exchanges and feeds
// decoded events into the sync handlers. Every delivery is acked exactly
// once, whether handling succeeded or not: redelivering a failed event would
// risk a poison-message loop, so failures are surfaced in the log instead.
type Consumer struct {
	conn   *amqp.Connection
	sync   *services.SyncService
	logger *zap.Logger
}

func NewConsumer(conn *amqp.Connection, sync *services.SyncService, logger *zap.Logger) *Consumer {
	return &Consumer{conn: conn, sync: sync, logger: logger}
}

// Start declares the listening topology, spawns one consume goroutine per
// queue and returns; an error here means the topology could not be set up.
// The goroutines run until ctx is cancelled, at which point the channels are
// closed. Each queue gets its own channel; AMQP channels are not safe for
// concurrent use.
func (c *Consumer) Start(ctx context.Context) error {
	barberCh, err := c.setupQueue(BarberExchange, BarberListenerQueue, barberBindingKey)
	if err != nil {
		return err
	}
	reservationCh, err := c.setupQueue(ReservationExchange, ReservationListenerQueue, reservationBindingKey)
	if err != nil {
		return err
	}

	go c.consume(ctx, barberCh, BarberListenerQueue, c.handleBarberDelivery)
	go c.consume(ctx, reservationCh, ReservationListenerQueue, c.handleReservationDelivery)

	go func() {
		<-ctx.Done()
		_ = barberCh.Close()
		_ = reservationCh.Close()
	}()
	return nil
}

func (c *Consumer) setupQueue(exchange, queue, bindingKey string) (*amqp.Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, err
	}
	if err := ch.QueueBind(queue, bindingKey, exchange, false, nil); err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *Consumer) consume(ctx context.Context, ch *amqp.Channel, queue string, handle func(amqp.Delivery)) {
	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		c.logger.Error("start consuming failed", zap.String("queue", queue), zap.Error(err))
		return
	}
	c.logger.Info("consumer started", zap.String("queue", queue))
	c.drain(ctx, deliveries, queue, handle)
}

// drain dispatches deliveries until ctx is cancelled or the delivery channel
// closes. Every dispatched delivery is acked exactly once.
func (c *Consumer) drain(ctx context.Context, deliveries <-chan amqp.Delivery, queue string, handle func(amqp.Delivery)) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopping", zap.String("queue", queue))
			return
		case d, ok := <-deliveries:
			if !ok {
				c.logger.Warn("delivery channel closed", zap.String("queue", queue))
				return
			}
			handle(d)
			if err := d.Ack(false); err != nil {
				c.logger.Error("ack failed", zap.String("queue", queue), zap.Error(err))
			}
		}
	}
}

func (c *Consumer) handleBarberDelivery(d amqp.Delivery) {
	var evt BarberEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		c.logger.Error("malformed barber event", zap.String("routingKey", d.RoutingKey), zap.Error(err))
		return
	}

	in := services.BarberEventInput{
		ID:     evt.ID,
		Name:   evt.Name,
		Active: evt.Active,
	}
	if evt.RelatedServiceIDs != nil {
		in.RelationsProvided = true
		in.RelatedServiceIDs = *evt.RelatedServiceIDs
	}

	c.logger.Info("barber event received",
		zap.String("barberId", evt.ID),
		zap.String("routingKey", d.RoutingKey),
		zap.Bool("relationsProvided", in.RelationsProvided))

	if err := c.sync.HandleBarberEvent(in); err != nil {
		// Consumed without effect; see the no-redelivery policy above.
		c.logger.Error("barber event failed",
			zap.String("barberId", evt.ID),
			zap.Error(err))
	}
}

func (c *Consumer) handleReservationDelivery(d amqp.Delivery) {
	var evt ReservationEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		c.logger.Error("malformed reservation event", zap.String("routingKey", d.RoutingKey), zap.Error(err))
		return
	}
	if evt.ServiceID == uuid.Nil {
		c.logger.Warn("reservation event without serviceId", zap.String("reservationId", evt.ID))
		return
	}

	reason, err := c.sync.HandleReservationEvent(services.ReservationEventInput{
		ID:        evt.ID,
		ServiceID: evt.ServiceID,
		BarberID:  evt.BarberID,
		Start:     evt.Start,
		Status:    evt.Status,
		Version:   evt.Version,
	})
	if err != nil {
		c.logger.Error("reservation event failed", zap.String("reservationId", evt.ID), zap.Error(err))
		return
	}

	switch reason {
	case services.DropOrphanService:
		// Timing artifact of eventual consistency, not an operator problem.
		c.logger.Warn("reservation references unknown local service, dropped",
			zap.String("reservationId", evt.ID),
			zap.String("serviceId", evt.ServiceID.String()))
	case services.DropUnknownStatus:
		// Unknown status means the reservation contract drifted.
		c.logger.Error("reservation status not recognized, dropped",
			zap.String("reservationId", evt.ID),
			zap.String("status", evt.Status))
	case services.DropStaleVersion:
		c.logger.Warn("stale reservation event dropped",
			zap.String("reservationId", evt.ID),
			zap.Int64("version", evt.Version))
	}
}
