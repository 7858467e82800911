package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"registration-backend/entity"
	"registration-backend/errs"
	"registration-backend/events"
	"registration-backend/log"
)

const (
	maxBodyBytes = 1 << 20

	msgRegistered = "Registration successful!"
	msgFailed     = "Registration failed."
)

type RegistrationStore interface {
	Insert(ctx context.Context, r *entity.Registration) error
}

type Publisher interface {
	PublishRegistration(ctx context.Context, event *events.RegistrationEvent) error
}

type registrationHandler struct {
	store  RegistrationStore
	events Publisher
	now    func() time.Time
}

type registerResponse struct {
	Message string               `json:"message"`
	Data    *entity.Registration `json:"data"`
}

type failureResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewRegistrationHandler serves the registration endpoint. p may be nil, in
// which case no events are published.
func NewRegistrationHandler(s RegistrationStore, p Publisher) *registrationHandler {
	return &registrationHandler{
		store:  s,
		events: p,
		now:    time.Now,
	}
}

func (h *registrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req := &entity.RegisterRequest{}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(req); err != nil {
		log.Logger.Debug("invalid body", zap.Error(err))
		fail(w, errs.ErrInvalidBody)
		return
	}

	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		log.Logger.Debug("trailing data after body", zap.Error(err))
		fail(w, errs.ErrInvalidBody)
		return
	}

	if err := req.Validate(); err != nil {
		fail(w, err)
		return
	}

	reg := entity.NewRegistration(req, h.now())
	if err := h.store.Insert(r.Context(), reg); err != nil {
		fail(w, err)
		return
	}

	if h.events != nil {
		if err := h.events.PublishRegistration(r.Context(), events.NewRegistrationEvent(reg)); err != nil {
			log.Logger.Error("failed publishing registration", zap.Error(err), zap.String("id", reg.ID.Hex()))
		}
	}

	writeJSON(w, http.StatusCreated, &registerResponse{Message: msgRegistered, Data: reg})
}

func fail(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, &failureResponse{Message: msgFailed, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Logger.Warn("failed writing response", zap.Error(err))
	}
}
