package events

import (
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"registration-backend/errs"
	"registration-backend/log"
)

const (
	RegistrationsExchange = "registrations"

	dialAttempts = 6
)

type Events struct {
	Conn *amqp.Connection
}

// Connect dials RabbitMQ, doubling the wait between attempts, and declares
// the registrations exchange.
func Connect(url string) (*Events, error) {
	log.Logger.Info("Trying to connect to rabbitmq...")

	var conn *amqp.Connection
	t := time.Second
	for i := 0; i < dialAttempts; i++ {
		var err error
		conn, err = amqp.Dial(url)
		if err != nil {
			if i == dialAttempts-1 {
				log.Logger.Error("unable to connect to rabbitmq", zap.Error(err))
				return nil, errs.ErrQueue
			}
			log.Logger.Warn("rabbitmq dial failed", zap.Error(err), zap.Duration("retry_in", t))
			time.Sleep(t)
			t *= 2

			continue
		}

		break
	}
	log.Logger.Info("Connected to rabbitmq")

	ch, err := conn.Channel()
	if err != nil {
		log.Logger.Error("unable to open channel", zap.Error(err))
		conn.Close()
		return nil, errs.ErrQueue
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		RegistrationsExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Logger.Error("unable to declare exchange", zap.Error(err), zap.String("exchange", RegistrationsExchange))
		conn.Close()
		return nil, errs.ErrQueue
	}

	return &Events{Conn: conn}, nil
}

func (e *Events) Close() error {
	return e.Conn.Close()
}
