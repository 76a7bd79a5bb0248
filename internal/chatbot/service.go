package chatbot

import (
	"context"
	"strings"
	"time"

	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 100

// Reply is the chat response envelope.
type Reply struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// Service dispatches chat turns and records them. Persistence is best effort:
// a store failure is logged and never fails the chat.
type Service struct {
	router *Router
	store  repository.Collection[models.ChatMessage]
	now    func() time.Time
}

func NewService(router *Router, store repository.Collection[models.ChatMessage]) *Service {
	return &Service{router: router, store: store, now: time.Now}
}

func (s *Service) Chat(ctx context.Context, req Request) (*Reply, error) {
	d, err := s.router.Validate(req)
	if err != nil {
		return nil, err
	}
	req.Domain = string(d)
	if strings.TrimSpace(req.SessionID) == "" {
		req.SessionID = uuid.NewString()
	}

	s.record(ctx, &models.ChatMessage{
		Text:      strings.TrimSpace(req.Message),
		Sender:    models.SenderUser,
		SessionID: req.SessionID,
		Domain:    req.Domain,
		Intent:    DetectIntent(d, req.Message),
	})

	text, err := s.router.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &models.ChatMessage{
		Text:      text,
		Sender:    models.SenderBot,
		SessionID: req.SessionID,
		Domain:    req.Domain,
	})
	return &Reply{Reply: text, SessionID: req.SessionID}, nil
}

func (s *Service) record(ctx context.Context, m *models.ChatMessage) {
	if s.store == nil {
		return
	}
	m.Timestamp = s.now().UTC()
	if err := s.store.Insert(ctx, m); err != nil {
		logger.Warnf("chat message not saved (session=%s sender=%s): %v", m.SessionID, m.Sender, err)
	}
}

// History returns a conversation oldest first. Empty filters match everything.
func (s *Service) History(ctx context.Context, sessionID, domain string, limit int64) ([]models.ChatMessage, error) {
	if s.store == nil {
		return []models.ChatMessage{}, nil
	}
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	q := repository.Query{SortBy: "timestamp", Limit: limit}
	if sessionID != "" {
		q.Filters = append(q.Filters, repository.Where("sessionId", repository.Eq, sessionID))
	}
	if domain != "" {
		d, err := ParseDomain(domain)
		if err != nil {
			return nil, err
		}
		q.Filters = append(q.Filters, repository.Where("domain", repository.Eq, string(d)))
	}
	return s.store.Find(ctx, q)
}
