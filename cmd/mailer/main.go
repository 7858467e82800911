package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"registration-backend/errs"
	"registration-backend/events"
	"registration-backend/jwt"
	"registration-backend/log"
	"registration-backend/mail"
)

const queueName = "registration-confirmations"

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok {
		return val
	}

	return def
}

func mustEnv(env string) string {
	val := os.Getenv(env)
	if val == "" {
		log.Logger.Fatal("missing required environment variable", zap.String("name", env))
	}

	return val
}

func main() {
	_ = godotenv.Load()
	log.EnsureLogger()
	defer log.Logger.Sync()

	amqpURL := mustEnv("RABBITMQ_CONNSTRING")
	domain := mustEnv("MAILGUN_DOMAIN")
	apiKey := mustEnv("MAILGUN_API_KEY")
	from := envOrDefaultString("MAIL_FROM", "Event Registration <noreply@"+domain+">")
	key := []byte(mustEnv("TICKET_KEY"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ev, err := events.Connect(amqpURL)
	if err != nil {
		log.Logger.Fatal("failed connecting to rabbitmq", zap.Error(err))
	}
	defer ev.Close()

	n := mail.NewNotifier(domain, apiKey, from)

	log.Logger.Info("mailer consuming", zap.String("queue", queueName))
	err = ev.ConsumeRegistrations(ctx, queueName, func(ctx context.Context, e *events.RegistrationEvent) error {
		ticket, err := jwt.NewTicket(e.RegistrationID, e.FullName, e.Email, e.Branch, key, time.Now())
		if err != nil {
			return errs.ErrJWT
		}

		return n.SendConfirmation(ctx, e, ticket)
	})
	if err != nil {
		log.Logger.Fatal("consumer stopped", zap.Error(err))
	}
	log.Logger.Info("mailer stopped")
}
