package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"registration-backend/log"
)

const readyTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type statusResponse struct {
	Status string `json:"status"`
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &statusResponse{Status: "ok"})
}

func readyz(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			log.Logger.Warn("database not reachable", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, &statusResponse{Status: "not ready"})
			return
		}

		writeJSON(w, http.StatusOK, &statusResponse{Status: "ready"})
	}
}
