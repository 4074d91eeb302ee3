package bookingqueue

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type publishedMessage struct {
	Queue string
	Body  []byte
}

// fakeChannel feeds FetchN scripted deliveries and records acks, nacks and
// publishes.
type fakeChannel struct {
	deliveries []amqp.Delivery
	acked      []uint64
	nacked     []uint64
	published  []publishedMessage
	confirms   chan amqp.Confirmation
}

func newFakeChannel(deliveries ...amqp.Delivery) *fakeChannel {
	confirms := make(chan amqp.Confirmation, len(deliveries)+1)
	for i := 0; i < cap(confirms); i++ {
		confirms <- amqp.Confirmation{Ack: true, DeliveryTag: uint64(i + 1)}
	}
	return &fakeChannel{deliveries: deliveries, confirms: confirms}
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Qos(prefetchCount, prefetchSize int, global bool) error { return nil }

func (f *fakeChannel) Confirm(noWait bool) error { return nil }

func (f *fakeChannel) NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation {
	return f.confirms
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.published = append(f.published, publishedMessage{Queue: key, Body: msg.Body})
	return nil
}

func (f *fakeChannel) Get(queue string, autoAck bool) (amqp.Delivery, bool, error) {
	if len(f.deliveries) == 0 {
		return amqp.Delivery{}, false, nil
	}
	d := f.deliveries[0]
	f.deliveries = f.deliveries[1:]
	return d, true, nil
}

func (f *fakeChannel) Ack(tag uint64, multiple bool) error {
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeChannel) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = append(f.nacked, tag)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func newTestService(ch *fakeChannel) *Service {
	return &Service{
		ch:       ch,
		log:      zap.NewNop(),
		prefetch: 1,
		confirms: ch.confirms,
	}
}

func TestFetchNParksPoisonMessagesOnDLQ(t *testing.T) {
	goodBody, err := json.Marshal(BookingEvent{
		ID:        "booking-1:booking.created",
		Kind:      EventBookingCreated,
		BookingID: "booking-1",
	})
	require.NoError(t, err)

	poisonBody := []byte("{not json")
	ch := newFakeChannel(
		amqp.Delivery{DeliveryTag: 1, Body: poisonBody},
		amqp.Delivery{DeliveryTag: 2, Body: goodBody},
	)
	svc := newTestService(ch)

	items, err := svc.FetchN(context.Background(), 5)
	require.NoError(t, err)

	// Only the decodable event is handed to the caller.
	require.Len(t, items, 1)
	assert.Equal(t, uint64(2), items[0].DeliveryTag)
	assert.Equal(t, "booking-1", items[0].Event.BookingID)

	// The poison delivery is acked off the queue head and its raw body is
	// parked on the DLQ, never nacked into the void.
	assert.Equal(t, []uint64{1}, ch.acked)
	assert.Empty(t, ch.nacked)
	require.Len(t, ch.published, 1)
	assert.Equal(t, DeadLetterQueueName, ch.published[0].Queue)
	assert.Equal(t, poisonBody, ch.published[0].Body)
}

func TestFetchNStopsWhenQueueIsEmpty(t *testing.T) {
	ch := newFakeChannel()
	svc := newTestService(ch)

	items, err := svc.FetchN(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, ch.published)
}
