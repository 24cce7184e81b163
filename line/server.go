package line

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/louisuxu-sys/BC-LINE/bot"
	"github.com/louisuxu-sys/BC-LINE/bot/common"

	log "github.com/sirupsen/logrus"
)

// Platform tags messages that arrived through LINE
const Platform = "line"

const maxWebhookBody = 1 << 20

// MessageHandler runs one conversation turn
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg bot.Message) []common.Reply
}

// Server receives LINE webhooks and answers through the reply API
type Server struct {
	channelSecret string
	handler       MessageHandler
	renderer      *Renderer
	replier       Replier
	router        chi.Router
}

func NewServer(channelSecret string, handler MessageHandler, renderer *Renderer, replier Replier) *Server {
	s := &Server{
		channelSecret: channelSecret,
		handler:       handler,
		renderer:      renderer,
		replier:       replier,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/", s.health)
	r.Get("/health", s.health)
	r.Post("/webhook", s.webhook)
	s.router = r

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("LINE webhook server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve webhook: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down webhook server: %w", err)
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	if !ValidateSignature(s.channelSecret, body, r.Header.Get("X-Line-Signature")) {
		log.WithField("remote_addr", r.RemoteAddr).Warn("Rejected webhook with invalid signature")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid signature"})
		return
	}

	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	for _, event := range req.Events {
		s.handleEvent(r.Context(), event)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvent(ctx context.Context, event WebhookEvent) {
	if event.Type != "message" || event.Message == nil || event.Message.Type != "text" {
		return
	}
	if event.Source.UserID == "" || event.ReplyToken == "" {
		return
	}

	requestID := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"request_id": requestID,
		"user_id":    event.Source.UserID,
	})

	replies := s.handler.HandleMessage(ctx, bot.Message{
		UserID:   event.Source.UserID,
		Text:     event.Message.Text,
		Platform: Platform,
	})
	messages := s.renderer.Render(replies)
	if len(messages) == 0 {
		return
	}

	if err := s.replier.Reply(ctx, event.ReplyToken, messages); err != nil {
		logger.WithError(err).Error("Failed to send LINE reply")
		return
	}
	logger.WithField("messages", len(messages)).Debug("Sent LINE reply")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to write response")
	}
}
