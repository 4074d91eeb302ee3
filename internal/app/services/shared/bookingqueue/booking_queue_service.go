package bookingqueue

import (
	"context"
	"fmt"
	"sync"

	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "booking_events_queue"
	DeadLetterQueueName = "booking_events_dlq"
)

// Event kinds carried on the queue.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload stored in RabbitMQ. Downstream consumers fan it
// out to notifications and reporting.
type BookingEvent struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	BookingID       string `json:"booking_id"`
	TherapistID     string `json:"therapist_id"`
	ClientID        string `json:"client_id"`
	Date            string `json:"date"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	FailedCount     int    `json:"failed_count"`
}

// amqpChannel is the slice of *amqp.Channel the service uses.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Get(queue string, autoAck bool) (msg amqp.Delivery, ok bool, err error)
	Ack(tag uint64, multiple bool) error
	Nack(tag uint64, multiple bool, requeue bool) error
	Close() error
}

// Service manages the durable booking event queues.
type Service struct {
	ch       amqpChannel
	log      *zap.Logger
	prefetch int
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService opens a channel, declares both durable queues, sets QoS and
// enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, name := range []string{StandardQueueName, DeadLetterQueueName} {
		_, err = ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			return nil, exceptions.ErrRabbitMQDeclareQueue(err)
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		prefetch: prefetch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

var _ contracts.BookingEventPublisher = (*Service)(nil)

func (s *Service) PublishBookingCreated(ctx context.Context, appointment *models.Appointment) error {
	return s.publish(ctx, StandardQueueName, eventFrom(EventBookingCreated, appointment))
}

func (s *Service) PublishBookingCancelled(ctx context.Context, appointment *models.Appointment) error {
	return s.publish(ctx, StandardQueueName, eventFrom(EventBookingCancelled, appointment))
}

// EnqueueToDeadQueue parks an event that kept failing downstream.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, event BookingEvent) error {
	return s.publish(ctx, DeadLetterQueueName, event)
}

// Reenqueue puts a modified event back at the tail of the standard queue.
func (s *Service) Reenqueue(ctx context.Context, event BookingEvent) error {
	return s.publish(ctx, StandardQueueName, event)
}

func (s *Service) publish(ctx context.Context, queueName string, event BookingEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("BookingQueue.publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, event.BookingID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queueName)
	}
	return nil
}

// publishRaw publishes an already-encoded body, used to park poison messages.
// The caller must hold s.mu.
func (s *Service) publishRaw(ctx context.Context, queueName string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queueName)
	}
	return nil
}

// QueuedItem is a fetched delivery and its decoded payload.
type QueuedItem struct {
	DeliveryTag uint64
	Event       BookingEvent
}

// FetchN retrieves up to n events using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, n int) ([]QueuedItem, error) {
	if n <= 0 {
		n = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]QueuedItem, 0, n)
	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(StandardQueueName, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var event BookingEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			// Poison message: ack it off the queue head and park the raw
			// body on the DLQ. Nacking would discard it; the queues carry
			// no dead-letter exchange.
			s.log.Error("BookingQueue.FetchN parking undecodable message", zap.Error(err))
			_ = s.ch.Ack(d.DeliveryTag, false)
			_ = s.publishRaw(ctx, DeadLetterQueueName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Event: event})
	}
	return items, nil
}

// Ack removes a delivered event from the queue.
func (s *Service) Ack(deliveryTag uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.Ack(deliveryTag, false)
}

// Nack requeues a delivered event for another attempt.
func (s *Service) Nack(deliveryTag uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.Nack(deliveryTag, false, true)
}

func (s *Service) Close() error {
	return s.ch.Close()
}

func eventFrom(kind string, a *models.Appointment) BookingEvent {
	return BookingEvent{
		ID:              a.ID + ":" + kind,
		Kind:            kind,
		BookingID:       a.ID,
		TherapistID:     a.TherapistID,
		ClientID:        a.ClientID,
		Date:            a.Date.Format("2006-01-02"),
		Start:           a.Start.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
	}
}
