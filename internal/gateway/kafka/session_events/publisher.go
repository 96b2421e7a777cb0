package session_events

import (
	"context"
	"encoding/json"
	"fmt"

	"courier-agent/internal/entities"
	"github.com/IBM/sarama"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Publisher отправляет изменения состояния сессии в Kafka.
// Ключ сообщения - id курьера, без курьера - id устройства,
// так события одного курьера попадают в одну партицию.
type Publisher struct {
	producer producer
	topic    string
	deviceID string
}

func NewPublisher(producer producer, topic, deviceID string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		deviceID: deviceID,
	}
}

func (p *Publisher) OnStateChange(ctx context.Context, change entities.StateChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(toEvent(p.deviceID, change))
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}

	key := change.CourierID
	if key == "" {
		key = p.deviceID
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		SessionEventsPublishedTotal.WithLabelValues(change.Trigger.String(), resultError).Inc()
		return fmt.Errorf("send session event %q: %w", change.Trigger, err)
	}

	SessionEventsPublishedTotal.WithLabelValues(change.Trigger.String(), resultOK).Inc()
	return nil
}

func toEvent(deviceID string, change entities.StateChange) stateChangedEvent {
	return stateChangedEvent{
		DeviceID:   deviceID,
		Trigger:    change.Trigger.String(),
		HasCourier: change.State.HasCourier,
		HasOrder:   change.State.HasOrder,
		Tracking:   change.State.Tracking,
		CourierID:  change.CourierID,
		OrderID:    change.OrderID,
		At:         change.At.Unix(),
	}
}
