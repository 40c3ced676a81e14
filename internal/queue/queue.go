package queue

import (
	"encoding/json"

	"github.com/IBM/sarama"
)

const RentalEventsTopic = "rental-events"

// Enqueuer publishes domain events to the message broker. Publishing happens
// after the owning transaction commits and is best effort.
type Enqueuer interface {
	Enqueue(topic string, v any) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
}

func (q *enqueuerImpl) Enqueue(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// NewNoop is used when no broker is configured.
func NewNoop() Enqueuer {
	return noopEnqueuer{}
}

type noopEnqueuer struct{}

func (noopEnqueuer) Enqueue(string, any) error { return nil }
