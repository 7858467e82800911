package events

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"registration-backend/entity"
	"registration-backend/errs"
	"registration-backend/log"
)

type RegistrationEvent struct {
	ID             uuid.UUID
	RegistrationID string
	FullName       string
	Email          string
	CurrentYear    string
	Branch         string
	CreatedAt      time.Time
}

func NewRegistrationEvent(r *entity.Registration) *RegistrationEvent {
	return &RegistrationEvent{
		ID:             uuid.New(),
		RegistrationID: r.ID.Hex(),
		FullName:       r.FullName,
		Email:          r.Email,
		CurrentYear:    string(r.CurrentYear),
		Branch:         string(r.Branch),
		CreatedAt:      r.CreatedAt,
	}
}

func Encode(event *RegistrationEvent) ([]byte, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(event); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func Decode(body []byte) (*RegistrationEvent, error) {
	var p *RegistrationEvent
	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(&p); err != nil {
		return nil, err
	}

	return p, nil
}

func (e *Events) PublishRegistration(_ context.Context, event *RegistrationEvent) error {
	body, err := Encode(event)
	if err != nil {
		log.Logger.Error("unable to encode event", zap.Error(err))
		return errs.ErrQueue
	}

	rch, err := e.Conn.Channel()
	if err != nil {
		log.Logger.Error("unable to open channel", zap.Error(err))
		return errs.ErrQueue
	}
	defer rch.Close()

	err = rch.Publish(RegistrationsExchange, "", false, false, amqp.Publishing{
		ContentType:  "application/x-gob",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.CreatedAt,
		Body:         body,
	})
	if err != nil {
		log.Logger.Error("unable to publish event", zap.Error(err), zap.String("event_id", event.ID.String()))
		return errs.ErrQueue
	}

	return nil
}

// ConsumeRegistrations binds a durable queue to the registrations exchange.
// Deliveries are acked only after handle returns nil; a failed delivery is
// requeued once and dropped on the second failure.
func (e *Events) ConsumeRegistrations(ctx context.Context, queue string, handle func(context.Context, *RegistrationEvent) error) error {
	rch, err := e.Conn.Channel()
	if err != nil {
		return err
	}
	defer rch.Close()

	q, err := rch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = rch.QueueBind(
		q.Name,
		"",
		RegistrationsExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := rch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return amqp.ErrClosed
			}

			handleDelivery(ctx, d, handle)
		}
	}
}

// handleDelivery acks d once handle succeeds. Undecodable bodies are dropped;
// a failed handle is requeued unless d is already a redelivery.
func handleDelivery(ctx context.Context, d amqp.Delivery, handle func(context.Context, *RegistrationEvent) error) {
	p, err := Decode(d.Body)
	if err != nil {
		log.Logger.Error("unable to decode event", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if err := handle(ctx, p); err != nil {
		log.Logger.Error("unable to handle event", zap.Error(err), zap.String("event_id", p.ID.String()))
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
}
