package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"registration-backend/events"
	"registration-backend/handler"
	"registration-backend/health"
	"registration-backend/log"
	"registration-backend/store"
)

const shutdownTimeout = 10 * time.Second

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok {
		return val
	}

	return def
}

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	envFile := flag.String("env", ".env", "optional env file loaded before reading the environment")
	flag.Parse()
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed loading env file:", err)
		os.Exit(1)
	}
	log.EnsureLogger()
	defer log.Logger.Sync()

	httpListenAddr := envOrDefaultString("PORT", "8000")
	healthListenAddr := envOrDefaultString("HEALTH_PORT", "")
	mongoAddr := envOrDefaultString("MONGO_URI", "mongodb://localhost:27017")
	mongoDatabase := envOrDefaultString("MONGO_DATABASE", "event")
	amqpAddr := envOrDefaultString("RABBITMQ_CONNSTRING", "")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoAddr))
	if err != nil {
		log.Logger.Fatal("failed connecting to database", zap.Error(err))
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer dcancel()
		_ = client.Disconnect(dctx)
	}()

	registrations, err := store.NewRegistrations(connectCtx, client.Database(mongoDatabase))
	if err != nil {
		log.Logger.Fatal("failed preparing registrations collection", zap.Error(err))
	}
	log.Logger.Info("Successfully connected to MongoDB", zap.String("database", mongoDatabase))

	deps := handler.Deps{Store: registrations, Ready: registrations}
	if amqpAddr != "" {
		ev, err := events.Connect(amqpAddr)
		if err != nil {
			log.Logger.Fatal("failed connecting to rabbitmq", zap.Error(err))
		}
		defer ev.Close()
		deps.Publisher = ev
	}

	if healthListenAddr != "" {
		lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%s", healthListenAddr))
		if err != nil {
			log.Logger.Fatal("failed to listen", zap.Error(err))
		}
		hs := health.NewServer(registrations)
		go func() {
			if err := hs.Serve(ctx, lis); err != nil {
				log.Logger.Error("couldn't serve grpc health", zap.Error(err))
			}
		}()
		log.Logger.Info(fmt.Sprintf("gRPC health listening on port: %s", healthListenAddr))
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%s", httpListenAddr))
	if err != nil {
		log.Logger.Error("failed to listen", zap.Error(err))
		exitCode = 1
		return
	}

	srv := &http.Server{
		Handler:           handler.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Logger.Info(fmt.Sprintf("Backend server is running on http://localhost:%s", httpListenAddr))
	if err := serve(ctx, srv, lis); err != nil {
		log.Logger.Error("couldn't serve http", zap.Error(err))
		exitCode = 1
	}
}

// serve runs srv on lis until ctx is done or the server fails. On ctx it
// shuts srv down gracefully.
func serve(ctx context.Context, srv *http.Server, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
