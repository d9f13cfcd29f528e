// Package httpapi exposes the dispatch core to the transport binding over a
// small JSON surface. It is an internal seam, not a public API: the chat
// transport posts normalized messages and renders the returned responses.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/chatvault/internal/logging"
	"github.com/dmitrijs2005/chatvault/internal/server/dispatch"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address    string
	dispatcher *dispatch.Dispatcher
	logger     logging.Logger
}

func NewServer(address string, d *dispatch.Dispatcher, l logging.Logger) *Server {
	return &Server{
		address:    address,
		dispatcher: d,
		logger:     l.With("module", "http_server"),
	}
}

// Handler builds the route table. Split out from Run so tests can drive the
// handlers through httptest.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/messages", s.handleMessage).Methods(http.MethodPost)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("request_id", uuid.NewString())

	var msg models.IncomingMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "invalid message", http.StatusBadRequest)
		return
	}
	if msg.SenderID == "" {
		http.Error(w, "sender_id is required", http.StatusBadRequest)
		return
	}

	resp, err := s.dispatcher.Handle(r.Context(), &msg)
	if err != nil {
		// the unit of work failed; the response still carries the generic
		// error reply for the user
		log.Error(r.Context(), "dispatch failed", "sender_id", msg.SenderID, "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error(r.Context(), "response encoding failed", "error", err.Error())
	}
}
